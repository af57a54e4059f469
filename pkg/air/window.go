// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package air

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/go-curta/pkg/chip/register"
)

// Failure records one constraint which did not vanish when evaluated
// over a concrete trace window.
type Failure struct {
	// Row on which the constraint was evaluated.
	Row int
	// Scope under which the constraint was asserted.
	Scope Scope
	// Value the constraint evaluated to.
	Value goldilocks.Element
}

// Error implements the error interface.
func (f Failure) Error() string {
	return fmt.Sprintf("constraint (%s) evaluated to %s on row %d", f.Scope, f.Value.String(), f.Row)
}

// Window is a parser backend which evaluates constraints over one
// concrete window of a trace, i.e. a given row together with the row
// following it.  Variables are field elements, and failed assertions
// are collected rather than reported eagerly so that a single pass can
// surface every violation.
type Window struct {
	// Local holds the columns of the current row.
	Local []goldilocks.Element
	// Following holds the columns of the next row.  On the last row
	// this wraps around to the first, though transition assertions
	// are inactive there.
	Following []goldilocks.Element
	// Public holds the public input vector.
	Public []goldilocks.Element
	// Global holds the global value vector.
	Global []goldilocks.Element
	// Challenges holds the verifier challenge coefficients.
	Challenges []goldilocks.Element
	// Row index of the current row.
	Row int
	// NumRows in the whole trace.
	NumRows int
	//
	failures []Failure
}

var _ Parser = (*Window)(nil)

// Read implementation for the Parser interface.
func (p *Window) Read(slice register.Slice) []Variable {
	var segment []goldilocks.Element
	//
	switch slice.Segment {
	case register.LOCAL:
		segment = p.Local
	case register.NEXT:
		segment = p.Following
	case register.PUBLIC:
		segment = p.Public
	case register.GLOBAL:
		segment = p.Global
	case register.CHALLENGE:
		segment = p.Challenges
	}
	//
	cells := make([]Variable, slice.Length)
	//
	for i := 0; i < slice.Length; i++ {
		cells[i] = segment[slice.Offset+i]
	}
	//
	return cells
}

// Constant implementation for the Parser interface.
func (p *Window) Constant(value goldilocks.Element) Variable {
	return value
}

// Zero implementation for the Parser interface.
func (p *Window) Zero() Variable {
	var zero goldilocks.Element
	return zero
}

// One implementation for the Parser interface.
func (p *Window) One() Variable {
	return goldilocks.One()
}

// Add implementation for the Parser interface.
func (p *Window) Add(x, y Variable) Variable {
	var z goldilocks.Element
	xe, ye := x.(goldilocks.Element), y.(goldilocks.Element)
	z.Add(&xe, &ye)
	//
	return z
}

// Sub implementation for the Parser interface.
func (p *Window) Sub(x, y Variable) Variable {
	var z goldilocks.Element
	xe, ye := x.(goldilocks.Element), y.(goldilocks.Element)
	z.Sub(&xe, &ye)
	//
	return z
}

// Mul implementation for the Parser interface.
func (p *Window) Mul(x, y Variable) Variable {
	var z goldilocks.Element
	xe, ye := x.(goldilocks.Element), y.(goldilocks.Element)
	z.Mul(&xe, &ye)
	//
	return z
}

// Neg implementation for the Parser interface.
func (p *Window) Neg(x Variable) Variable {
	var z goldilocks.Element
	xe := x.(goldilocks.Element)
	z.Neg(&xe)
	//
	return z
}

// Assert implementation for the Parser interface.
func (p *Window) Assert(x Variable) {
	p.assert(x, ALL)
}

// AssertFirst implementation for the Parser interface.
func (p *Window) AssertFirst(x Variable) {
	if p.Row == 0 {
		p.assert(x, FIRST)
	}
}

// AssertLast implementation for the Parser interface.
func (p *Window) AssertLast(x Variable) {
	if p.Row == p.NumRows-1 {
		p.assert(x, LAST)
	}
}

// AssertTransition implementation for the Parser interface.
func (p *Window) AssertTransition(x Variable) {
	if p.Row < p.NumRows-1 {
		p.assert(x, TRANSITION)
	}
}

// Failures returns all assertions which did not vanish.
func (p *Window) Failures() []Failure {
	return p.failures
}

func (p *Window) assert(x Variable, scope Scope) {
	value := x.(goldilocks.Element)
	//
	if !value.IsZero() {
		p.failures = append(p.failures, Failure{p.Row, scope, value})
	}
}
