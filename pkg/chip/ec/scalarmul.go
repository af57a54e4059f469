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
package ec

import (
	"fmt"
	"math/big"

	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip"
	"github.com/consensys/go-curta/pkg/chip/expression"
	"github.com/consensys/go-curta/pkg/chip/instruction"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/util"
)

// ScalarMul multiplies curve points by scalars using one double-and
// -add step per row.  Each scalar occupies one cycle of rows, equal
// in length to the scalar bit width: the temporary point doubles every
// row while the accumulator conditionally absorbs it, so the
// accumulator selected on the last cycle row is the product.  Inputs
// and outputs cross the chip boundary through evaluation digests: the
// scalar bits on every row, the input point on cycle starts and the
// selected point on cycle ends.
type ScalarMul struct {
	curve *Curve
	cycle *instruction.Cycle
	// Bit holds the current scalar bit.
	Bit register.Bit
	// Temp is the running doubled point, loaded with the input
	// point on the first row of each cycle.
	Temp PointRegister
	// Acc is the running accumulator, pinned to the neutral point
	// on cycle starts.
	Acc PointRegister
	// Selected is bit ? Acc + Temp : Acc.
	Selected PointRegister
	//
	doubled *AddGadget
	added   *AddGadget
	// Digests binding the gadget to its callers.
	bits   *chip.Evaluation
	input  *chip.Evaluation
	output *chip.Evaluation
}

// NewScalarMul builds and registers a scalar multiplication gadget.
// The chip's traces must consist of whole cycles of curve.ScalarBits
// rows each, one scalar per cycle.
func NewScalarMul(b *chip.Builder, curve *Curve) *ScalarMul {
	logBits := 0
	//
	for 1<<logBits < curve.ScalarBits {
		logBits++
	}
	//
	if 1<<logBits != curve.ScalarBits {
		panic(fmt.Sprintf("scalar width %d is not a power of two", curve.ScalarBits))
	}
	//
	s := &ScalarMul{
		curve: curve,
		cycle: instruction.NewCycle(b, logBits),
		Bit:   b.Bit(),
		Temp:  NewPointRegister(b, curve.Params),
		Acc:   NewPointRegister(b, curve.Params),
	}
	//
	s.doubled = NewAdd(b, curve, s.Temp, s.Temp)
	s.added = NewAdd(b, curve, s.Acc, s.Temp)
	s.Selected = NewPointRegister(b, curve.Params)
	//
	instruction.NewSelect(b, s.Selected.X.Slice(), s.Bit,
		expression.FromRegister(s.added.Out.X), expression.FromRegister(s.Acc.X))
	instruction.NewSelect(b, s.Selected.Y.Slice(), s.Bit,
		expression.FromRegister(s.added.Out.Y), expression.FromRegister(s.Acc.Y))
	//
	b.Register(s)
	// Bus digests for the public bindings.
	s.bits = chip.NewEvaluation(b, expression.ConstantUint64([]uint64{1}),
		s.Bit.Slice())
	s.input = chip.NewEvaluation(b, expression.FromRegister(s.cycle.StartBit),
		s.Temp.Slice())
	s.output = chip.NewEvaluation(b, expression.FromRegister(s.cycle.EndBit),
		s.Selected.Slice())
	//
	return s
}

// BitsDigest returns the evaluation digesting every scalar bit.
func (s *ScalarMul) BitsDigest() *chip.Evaluation { return s.bits }

// InputDigest returns the evaluation digesting the input points.
func (s *ScalarMul) InputDigest() *chip.Evaluation { return s.input }

// OutputDigest returns the evaluation digesting the result points.
func (s *ScalarMul) OutputDigest() *chip.Evaluation { return s.output }

// Eval implementation for the Instruction interface.
func (s *ScalarMul) Eval(p air.Parser) {
	var (
		endBit   = air.ReadBit(p, s.cycle.EndBit)
		startBit = air.ReadBit(p, s.cycle.StartBit)
		// interior guards transitions within one cycle; crossing a
		// cycle boundary loads a fresh input instead.
		interior = air.Filter(p, p.Sub(p.One(), endBit))
		start    = air.Filter(p, startBit)
	)
	// Temp doubles along the cycle.
	assertSliceEq(interior, s.Temp.X.Slice().Next(), s.doubled.Out.X.Slice(), air.TRANSITION)
	assertSliceEq(interior, s.Temp.Y.Slice().Next(), s.doubled.Out.Y.Slice(), air.TRANSITION)
	// Acc carries the selected point forward.
	assertSliceEq(interior, s.Acc.X.Slice().Next(), s.Selected.X.Slice(), air.TRANSITION)
	assertSliceEq(interior, s.Acc.Y.Slice().Next(), s.Selected.Y.Slice(), air.TRANSITION)
	// Acc is the neutral point (0, 1) on cycle starts.
	for _, cell := range start.Read(s.Acc.X.Slice()) {
		start.Assert(cell)
	}
	//
	yCells := start.Read(s.Acc.Y.Slice())
	start.Assert(start.Sub(yCells[0], start.One()))
	//
	for _, cell := range yCells[1:] {
		start.Assert(cell)
	}
}

// assertSliceEq asserts cell-wise equality of two slices under the
// given scope.
func assertSliceEq(p air.Parser, a, b register.Slice, scope air.Scope) {
	var (
		as = p.Read(a)
		bs = p.Read(b)
	)
	//
	for i := range as {
		air.AssertScoped(p, p.Sub(as[i], bs[i]), scope)
	}
}

// Write fills whole cycles of the trace, one scalar-point pair per
// cycle, returning the products.  Cycles are independent and written
// in parallel; rows within a cycle are chained and written in order.
func (s *ScalarMul) Write(g *chip.Generator, points []Point, scalars []*big.Int) ([]Point, error) {
	var (
		w        = g.Writer()
		numRows  = w.Trace.NumRows()
		numBits  = s.curve.ScalarBits
		expected = len(scalars) * numBits
	)
	//
	if len(points) != len(scalars) {
		return nil, fmt.Errorf("%d points for %d scalars", len(points), len(scalars))
	}
	//
	if numRows != expected {
		return nil, fmt.Errorf("trace has %d rows but %d scalars need %d", numRows, len(scalars), expected)
	}
	//
	results := make([]Point, len(scalars))
	//
	err := util.ParallelRange(len(scalars), 1, func(k int) error {
		var (
			temp = points[k]
			acc  = s.curve.Neutral()
		)
		//
		for i := 0; i < numBits; i++ {
			var (
				row = k*numBits + i
				bit = scalars[k].Bit(i) == 1
			)
			//
			w.WriteBit(s.Bit, row, bit)
			s.Temp.Write(w, row, temp)
			s.Acc.Write(w, row, acc)
			g.WriteRowInstructions(row)
			//
			if bit {
				acc = s.curve.Add(acc, temp)
			}
			//
			temp = s.curve.Double(temp)
		}
		//
		results[k] = acc
		return nil
	})
	//
	return results, err
}
