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
package instruction

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/field/goldilocks"

	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/chip/trace"
)

// twoAdicGenerator generates the multiplicative subgroup of order
// 2^32 in the Goldilocks field.
const twoAdicGenerator = 1753635133440165772

// twoAdicity of the Goldilocks field: its multiplicative group has a
// subgroup of order 2^32.
const twoAdicity = 32

// Cycle marks the boundaries of fixed-length row windows.  A phase
// column steps through the powers of an order-2^logLength root of
// unity, so it returns to one precisely every 2^logLength rows; the
// start and end bit columns flag the first and last row of each
// window.  Gadgets spanning several rows, such as scalar
// multiplication, use these bits to reset and export their state.
type Cycle struct {
	// Length of one cycle in rows.
	Length int
	// StartBit is set on the first row of every cycle.
	StartBit register.Bit
	// EndBit is set on the last row of every cycle.
	EndBit register.Bit
	//
	generator    goldilocks.Element
	generatorInv goldilocks.Element
	phase        register.Element
	// Inverse witnesses pinning the bits to the phase.
	startInv register.Element
	endInv   register.Element
}

// NewCycle builds and registers a cycle of length 2^logLength.
func NewCycle(b *chip.Builder, logLength int) *Cycle {
	if logLength <= 0 || logLength > twoAdicity {
		panic(fmt.Sprintf("cycle length 2^%d outside supported range", logLength))
	}
	//
	var generator, generatorInv goldilocks.Element
	// generator = t^(2^(32-logLength)) has order 2^logLength.
	generator.SetUint64(twoAdicGenerator)
	generator.Exp(generator, new(big.Int).Lsh(big.NewInt(1), uint(twoAdicity-logLength)))
	generatorInv.Inverse(&generator)
	//
	c := &Cycle{
		Length:       1 << logLength,
		StartBit:     b.Bit(),
		EndBit:       b.Bit(),
		generator:    generator,
		generatorInv: generatorInv,
		phase:        b.Element(),
		startInv:     b.Element(),
		endInv:       b.Element(),
	}
	//
	b.Register(c)
	//
	return c
}

// Eval implementation for the Instruction interface.
func (c *Cycle) Eval(p air.Parser) {
	var (
		phase     = air.ReadElement(p, c.phase)
		phaseNext = air.ReadElement(p, c.phase.Next())
		one       = p.One()
	)
	// Phase starts at one and steps through the subgroup.
	p.AssertFirst(p.Sub(phase, one))
	p.AssertTransition(p.Sub(phaseNext, p.Mul(phase, p.Constant(c.generator))))
	// The bits are pinned to the phase by an inverse witness: for
	// distinguished value v, (phase - v) * inv == 1 - bit together
	// with bit * (phase - v) == 0 forces bit == (phase == v).
	c.pin(p, air.ReadBit(p, c.StartBit), air.ReadElement(p, c.startInv), phase, goldilocks.One())
	c.pin(p, air.ReadBit(p, c.EndBit), air.ReadElement(p, c.endInv), phase, c.generatorInv)
}

func (c *Cycle) pin(p air.Parser, bit, inv, phase air.Variable, value goldilocks.Element) {
	delta := p.Sub(phase, p.Constant(value))
	p.Assert(p.Sub(p.Mul(delta, inv), p.Sub(p.One(), bit)))
	p.Assert(p.Mul(bit, delta))
}

// WriteRow implementation for the RowWriter interface.
func (c *Cycle) WriteRow(w *trace.Writer, row int) {
	var (
		index = row % c.Length
		phase goldilocks.Element
	)
	//
	phase.Exp(c.generator, big.NewInt(int64(index)))
	w.WriteElement(c.phase, row, phase)
	//
	w.WriteBit(c.StartBit, row, index == 0)
	w.WriteBit(c.EndBit, row, index == c.Length-1)
	//
	w.WriteElement(c.startInv, row, inverseOrZero(phase, goldilocks.One()))
	w.WriteElement(c.endInv, row, inverseOrZero(phase, c.generatorInv))
}

func inverseOrZero(phase, value goldilocks.Element) goldilocks.Element {
	var delta goldilocks.Element
	delta.Sub(&phase, &value)
	//
	if delta.IsZero() {
		return delta
	}
	//
	return *delta.Inverse(&delta)
}
