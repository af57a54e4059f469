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
	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/go-curta/pkg/chip/register"
)

// Filtered wraps another parser such that every assertion is
// multiplied by a selector first.  Rows on which the selector
// vanishes are thereby exempted from the wrapped constraints, which
// is how one constraint set is restricted to the rows of a particular
// gadget.
type Filtered struct {
	inner  Parser
	filter Variable
}

var _ Parser = (*Filtered)(nil)

// Filter wraps a parser behind a selector.
func Filter(inner Parser, filter Variable) *Filtered {
	return &Filtered{inner, filter}
}

// Read implementation for the Parser interface.
func (p *Filtered) Read(slice register.Slice) []Variable {
	return p.inner.Read(slice)
}

// Constant implementation for the Parser interface.
func (p *Filtered) Constant(value goldilocks.Element) Variable {
	return p.inner.Constant(value)
}

// Zero implementation for the Parser interface.
func (p *Filtered) Zero() Variable {
	return p.inner.Zero()
}

// One implementation for the Parser interface.
func (p *Filtered) One() Variable {
	return p.inner.One()
}

// Add implementation for the Parser interface.
func (p *Filtered) Add(x, y Variable) Variable {
	return p.inner.Add(x, y)
}

// Sub implementation for the Parser interface.
func (p *Filtered) Sub(x, y Variable) Variable {
	return p.inner.Sub(x, y)
}

// Mul implementation for the Parser interface.
func (p *Filtered) Mul(x, y Variable) Variable {
	return p.inner.Mul(x, y)
}

// Neg implementation for the Parser interface.
func (p *Filtered) Neg(x Variable) Variable {
	return p.inner.Neg(x)
}

// Assert implementation for the Parser interface.
func (p *Filtered) Assert(x Variable) {
	p.inner.Assert(p.inner.Mul(p.filter, x))
}

// AssertFirst implementation for the Parser interface.
func (p *Filtered) AssertFirst(x Variable) {
	p.inner.AssertFirst(p.inner.Mul(p.filter, x))
}

// AssertLast implementation for the Parser interface.
func (p *Filtered) AssertLast(x Variable) {
	p.inner.AssertLast(p.inner.Mul(p.filter, x))
}

// AssertTransition implementation for the Parser interface.
func (p *Filtered) AssertTransition(x Variable) {
	p.inner.AssertTransition(p.inner.Mul(p.filter, x))
}
