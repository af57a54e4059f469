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

// Term is a node in a symbolic constraint expression, as produced by
// the symbolic parser backend.
type Term interface {
	// Degree of this term as a polynomial in the trace columns.
	// Challenges, public inputs and global values count as
	// constants.
	Degree() int
	// String returns an s-expression rendering of this term.
	String() string
}

// Const is a constant term.
type Const struct {
	Value goldilocks.Element
}

// Degree implementation for the Term interface.
func (t *Const) Degree() int { return 0 }

// String implementation for the Term interface.
func (t *Const) String() string { return t.Value.String() }

// Cell is a reference to a single trace cell.
type Cell struct {
	Segment register.Segment
	Offset  int
}

// Degree implementation for the Term interface.
func (t *Cell) Degree() int {
	if t.Segment == register.LOCAL || t.Segment == register.NEXT {
		return 1
	}
	//
	return 0
}

// String implementation for the Term interface.
func (t *Cell) String() string {
	return fmt.Sprintf("%s[%d]", t.Segment, t.Offset)
}

// Sum is the sum of two terms.  Its degree is fixed at construction,
// since terms are shared aggressively and recomputing degrees over a
// shared tree recurses once per path rather than once per node.
type Sum struct {
	X, Y Term
	//
	degree int
}

// NewSum constructs the sum of two terms.
func NewSum(x, y Term) *Sum {
	return &Sum{x, y, max(x.Degree(), y.Degree())}
}

// Degree implementation for the Term interface.
func (t *Sum) Degree() int { return t.degree }

// String implementation for the Term interface.
func (t *Sum) String() string {
	return fmt.Sprintf("(+ %s %s)", t.X, t.Y)
}

// Product is the product of two terms.
type Product struct {
	X, Y Term
	//
	degree int
}

// NewProduct constructs the product of two terms.
func NewProduct(x, y Term) *Product {
	return &Product{x, y, x.Degree() + y.Degree()}
}

// Degree implementation for the Term interface.
func (t *Product) Degree() int { return t.degree }

// String implementation for the Term interface.
func (t *Product) String() string {
	return fmt.Sprintf("(* %s %s)", t.X, t.Y)
}

// Negation is the negation of a term.
type Negation struct {
	X Term
}

// Degree implementation for the Term interface.
func (t *Negation) Degree() int { return t.X.Degree() }

// String implementation for the Term interface.
func (t *Negation) String() string {
	return fmt.Sprintf("(- %s)", t.X)
}

// Constraint pairs a symbolic term with the scope under which it must
// vanish.
type Constraint struct {
	Term  Term
	Scope Scope
}

// Symbolic is a parser backend which records constraints as
// expression trees instead of evaluating them.  It is used to inspect
// the constraint set of a chip, most notably to determine its maximum
// degree.
type Symbolic struct {
	constraints []Constraint
}

var _ Parser = (*Symbolic)(nil)

// Read implementation for the Parser interface.
func (p *Symbolic) Read(slice register.Slice) []Variable {
	cells := make([]Variable, slice.Length)
	//
	for i := 0; i < slice.Length; i++ {
		cells[i] = Term(&Cell{slice.Segment, slice.Offset + i})
	}
	//
	return cells
}

// Constant implementation for the Parser interface.
func (p *Symbolic) Constant(value goldilocks.Element) Variable {
	return Term(&Const{value})
}

// Zero implementation for the Parser interface.
func (p *Symbolic) Zero() Variable {
	var zero goldilocks.Element
	return Term(&Const{zero})
}

// One implementation for the Parser interface.
func (p *Symbolic) One() Variable {
	return Term(&Const{goldilocks.One()})
}

// Add implementation for the Parser interface.
func (p *Symbolic) Add(x, y Variable) Variable {
	return Term(NewSum(x.(Term), y.(Term)))
}

// Sub implementation for the Parser interface.
func (p *Symbolic) Sub(x, y Variable) Variable {
	return Term(NewSum(x.(Term), &Negation{y.(Term)}))
}

// Mul implementation for the Parser interface.
func (p *Symbolic) Mul(x, y Variable) Variable {
	return Term(NewProduct(x.(Term), y.(Term)))
}

// Neg implementation for the Parser interface.
func (p *Symbolic) Neg(x Variable) Variable {
	return Term(&Negation{x.(Term)})
}

// Assert implementation for the Parser interface.
func (p *Symbolic) Assert(x Variable) {
	p.record(x, ALL)
}

// AssertFirst implementation for the Parser interface.
func (p *Symbolic) AssertFirst(x Variable) {
	p.record(x, FIRST)
}

// AssertLast implementation for the Parser interface.
func (p *Symbolic) AssertLast(x Variable) {
	p.record(x, LAST)
}

// AssertTransition implementation for the Parser interface.
func (p *Symbolic) AssertTransition(x Variable) {
	p.record(x, TRANSITION)
}

// Constraints returns all recorded constraints.
func (p *Symbolic) Constraints() []Constraint {
	return p.constraints
}

// MaxDegree returns the maximum degree over all recorded constraints,
// or zero if none were recorded.
func (p *Symbolic) MaxDegree() int {
	degree := 0
	//
	for _, c := range p.constraints {
		degree = max(degree, c.Term.Degree())
	}
	//
	return degree
}

func (p *Symbolic) record(x Variable, scope Scope) {
	p.constraints = append(p.constraints, Constraint{x.(Term), scope})
}
