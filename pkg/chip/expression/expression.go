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

// Package expression provides vector-valued arithmetic expressions
// over trace registers.  An expression denotes a fixed-length vector
// of values, evaluated cell by cell through a parser, and is the form
// in which instruction inputs are passed around: an instruction
// accepting an expression rather than a register can transparently
// consume sums or differences of registers as well.
package expression

import (
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip/register"
)

// Expression is a fixed-size vector of values over trace registers.
// The set of implementations is closed.
type Expression interface {
	// Size returns the length of the vector this expression
	// evaluates to.
	Size() int
	// Eval evaluates every cell of this expression under the given
	// parser.
	Eval(p air.Parser) []air.Variable
}

// Input reads the cells of a slice verbatim.
func Input(slice register.Slice) Expression {
	return &input{slice}
}

// FromRegister reads the cells of a register verbatim.
func FromRegister(r register.Register) Expression {
	return Input(r.Slice())
}

// Constant denotes a vector of constants.
func Constant(values []goldilocks.Element) Expression {
	return &constant{values}
}

// ConstantUint64 denotes a vector of small constants.
func ConstantUint64(values []uint64) Expression {
	elements := make([]goldilocks.Element, len(values))
	//
	for i, v := range values {
		elements[i] = goldilocks.NewElement(v)
	}
	//
	return Constant(elements)
}

// Add computes the cell-wise sum of two equal-size expressions.
func Add(x, y Expression) Expression {
	checkSizes("add", x, y)
	return &sum{x, y}
}

// Sub computes the cell-wise difference of two equal-size expressions.
func Sub(x, y Expression) Expression {
	checkSizes("sub", x, y)
	return &difference{x, y}
}

// Neg computes the cell-wise negation of an expression.
func Neg(x Expression) Expression {
	return &negation{x}
}

// Mul computes the product of two expressions, at least one of which
// must be a scalar (i.e. have size one).  The scalar is broadcast
// across the cells of the other operand.
func Mul(x, y Expression) Expression {
	if x.Size() != 1 && y.Size() != 1 {
		panic(fmt.Sprintf("cannot multiply expressions of sizes %d and %d", x.Size(), y.Size()))
	}
	//
	return &product{x, y}
}

// Next shifts every local read of an expression to the following row.
func Next(x Expression) Expression {
	switch e := x.(type) {
	case *input:
		return &input{e.slice.Next()}
	case *constant:
		return e
	case *sum:
		return &sum{Next(e.x), Next(e.y)}
	case *difference:
		return &difference{Next(e.x), Next(e.y)}
	case *negation:
		return &negation{Next(e.x)}
	case *product:
		return &product{Next(e.x), Next(e.y)}
	}
	//
	panic("unreachable")
}

func checkSizes(op string, x, y Expression) {
	if x.Size() != y.Size() {
		panic(fmt.Sprintf("cannot %s expressions of sizes %d and %d", op, x.Size(), y.Size()))
	}
}

// ============================================================================
// Implementations
// ============================================================================

type input struct {
	slice register.Slice
}

func (e *input) Size() int {
	return e.slice.Length
}

func (e *input) Eval(p air.Parser) []air.Variable {
	return p.Read(e.slice)
}

type constant struct {
	values []goldilocks.Element
}

func (e *constant) Size() int {
	return len(e.values)
}

func (e *constant) Eval(p air.Parser) []air.Variable {
	cells := make([]air.Variable, len(e.values))
	//
	for i, v := range e.values {
		cells[i] = p.Constant(v)
	}
	//
	return cells
}

type sum struct {
	x, y Expression
}

func (e *sum) Size() int {
	return e.x.Size()
}

func (e *sum) Eval(p air.Parser) []air.Variable {
	var (
		xs = e.x.Eval(p)
		ys = e.y.Eval(p)
		zs = make([]air.Variable, len(xs))
	)
	//
	for i := range xs {
		zs[i] = p.Add(xs[i], ys[i])
	}
	//
	return zs
}

type difference struct {
	x, y Expression
}

func (e *difference) Size() int {
	return e.x.Size()
}

func (e *difference) Eval(p air.Parser) []air.Variable {
	var (
		xs = e.x.Eval(p)
		ys = e.y.Eval(p)
		zs = make([]air.Variable, len(xs))
	)
	//
	for i := range xs {
		zs[i] = p.Sub(xs[i], ys[i])
	}
	//
	return zs
}

type negation struct {
	x Expression
}

func (e *negation) Size() int {
	return e.x.Size()
}

func (e *negation) Eval(p air.Parser) []air.Variable {
	var (
		xs = e.x.Eval(p)
		zs = make([]air.Variable, len(xs))
	)
	//
	for i := range xs {
		zs[i] = p.Neg(xs[i])
	}
	//
	return zs
}

type product struct {
	x, y Expression
}

func (e *product) Size() int {
	return max(e.x.Size(), e.y.Size())
}

func (e *product) Eval(p air.Parser) []air.Variable {
	var (
		xs = e.x.Eval(p)
		ys = e.y.Eval(p)
	)
	// Broadcast the scalar side.
	if len(xs) == 1 {
		xs, ys = ys, xs
	}
	//
	zs := make([]air.Variable, len(xs))
	//
	for i := range xs {
		zs[i] = p.Mul(xs[i], ys[0])
	}
	//
	return zs
}
