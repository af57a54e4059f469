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

// Package air provides the parser abstraction through which AIR
// constraints are both defined and evaluated.  A constraint is written
// once, as code against the Parser interface, and can then be run
// against different backends: a window parser evaluating concrete rows
// of a trace, a symbolic parser building expression trees, or a filter
// parser which guards another parser's assertions behind a selector.
package air

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/go-curta/pkg/chip/register"
)

// Variable is an opaque value flowing through a parser.  Its concrete
// type is determined by the backend, e.g. a field element for the
// window parser or an expression tree for the symbolic parser.
type Variable = any

// Parser is the evaluation context against which constraints are
// written.  Reads pull trace cells into variables, arithmetic combines
// them, and the assertion methods register vanishing requirements over
// a given row scope.
type Parser interface {
	// Read pulls the cells referenced by a slice into variables.
	Read(slice register.Slice) []Variable
	// Constant lifts a field element into a variable.
	Constant(value goldilocks.Element) Variable
	// Zero returns the variable with value zero.
	Zero() Variable
	// One returns the variable with value one.
	One() Variable
	// Add computes x + y.
	Add(x, y Variable) Variable
	// Sub computes x - y.
	Sub(x, y Variable) Variable
	// Mul computes x * y.
	Mul(x, y Variable) Variable
	// Neg computes -x.
	Neg(x Variable) Variable
	// Assert requires x to vanish on every row.
	Assert(x Variable)
	// AssertFirst requires x to vanish on the first row.
	AssertFirst(x Variable)
	// AssertLast requires x to vanish on the last row.
	AssertLast(x Variable)
	// AssertTransition requires x to vanish on every row except the
	// last.
	AssertTransition(x Variable)
}

// ConstantUint64 lifts a small constant into a variable.
func ConstantUint64(p Parser, value uint64) Variable {
	return p.Constant(goldilocks.NewElement(value))
}

// ReadElement reads a single-cell register.
func ReadElement(p Parser, r register.Element) Variable {
	return p.Read(r.Slice())[0]
}

// ReadBit reads a bit register.
func ReadBit(p Parser, r register.Bit) Variable {
	return p.Read(r.Slice())[0]
}

// Scope identifies the rows over which a constraint must vanish.
type Scope uint8

const (
	// ALL rows of the trace.
	ALL Scope = iota
	// FIRST row only.
	FIRST
	// LAST row only.
	LAST
	// TRANSITION covers every row except the last, where the
	// constraint may also reference the following row.
	TRANSITION
)

// String returns a short human-readable tag for this scope.
func (s Scope) String() string {
	switch s {
	case ALL:
		return "all"
	case FIRST:
		return "first"
	case LAST:
		return "last"
	case TRANSITION:
		return "transition"
	}
	//
	return "???"
}

// AssertScoped registers a vanishing requirement under a dynamically
// chosen scope.
func AssertScoped(p Parser, x Variable, scope Scope) {
	switch scope {
	case ALL:
		p.Assert(x)
	case FIRST:
		p.AssertFirst(x)
	case LAST:
		p.AssertLast(x)
	case TRANSITION:
		p.AssertTransition(x)
	}
}
