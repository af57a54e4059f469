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
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/go-curta/pkg/chip"
	"github.com/consensys/go-curta/pkg/chip/expression"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cycle_01(t *testing.T) {
	// Start and end bits flag exactly the boundary rows of each
	// length-4 window.
	const numRows = 8
	//
	b := chip.NewBuilder(chip.Options{
		NumFreeColumns: 5,
		SkipRangeCheck: true,
	})
	//
	var (
		cycle = NewCycle(b, 2)
		c     = b.Build()
		g     = chip.NewGenerator(c, numRows)
	)
	//
	require.Equal(t, 4, cycle.Length)
	//
	for row := 0; row < numRows; row++ {
		g.WriteRowInstructions(row)
	}
	//
	require.Equal(t, 0, len(g.Check()))
	//
	for row := 0; row < numRows; row++ {
		assert.Equal(t, row%4 == 0, g.Writer().ReadBit(cycle.StartBit, row))
		assert.Equal(t, row%4 == 3, g.Writer().ReadBit(cycle.EndBit, row))
	}
}

func Test_Cycle_02(t *testing.T) {
	// A misplaced end bit breaks the pinning constraints.
	const numRows = 8
	//
	b := chip.NewBuilder(chip.Options{
		NumFreeColumns: 5,
		SkipRangeCheck: true,
	})
	//
	var (
		cycle = NewCycle(b, 2)
		c     = b.Build()
		g     = chip.NewGenerator(c, numRows)
	)
	//
	for row := 0; row < numRows; row++ {
		g.WriteRowInstructions(row)
	}
	//
	g.Writer().WriteBit(cycle.EndBit, 1, true)
	assert.NotEqual(t, 0, len(g.Check()))
}

func Test_Decompose_01(t *testing.T) {
	// Bits recompose to the decomposed value, least significant
	// first.
	const numRows = 4
	//
	b := chip.NewBuilder(chip.Options{
		NumFreeColumns: 5,
		SkipRangeCheck: true,
	})
	//
	var (
		value = b.Element()
		d     = NewDecompose(b, value, 4)
		c     = b.Build()
		g     = chip.NewGenerator(c, numRows)
	)
	//
	for row := 0; row < numRows; row++ {
		g.Writer().WriteElement(value, row, goldilocks.NewElement(uint64(13)))
		g.WriteRowInstructions(row)
	}
	//
	require.Equal(t, 0, len(g.Check()))
	// 13 = 0b1101.
	expected := []bool{true, false, true, true}
	//
	for i, bit := range d.Bits() {
		assert.Equal(t, expected[i], g.Writer().ReadBit(bit, 0))
	}
	// Flipping a bit breaks the recomposition.
	g.Writer().WriteBit(d.Bits()[0], 2, false)
	assert.NotEqual(t, 0, len(g.Check()))
}

func Test_Decompose_02(t *testing.T) {
	// Values outside the width are rejected at write time.
	b := chip.NewBuilder(chip.Options{
		NumFreeColumns: 4,
		SkipRangeCheck: true,
	})
	//
	var (
		value = b.Element()
		_     = NewDecompose(b, value, 3)
		c     = b.Build()
		g     = chip.NewGenerator(c, 1)
	)
	//
	g.Writer().WriteElement(value, 0, goldilocks.NewElement(8))
	assert.Panics(t, func() { g.WriteRowInstructions(0) })
}

func Test_Assign_01(t *testing.T) {
	// A next-row assignment chains a running doubling.
	const numRows = 8
	//
	b := chip.NewBuilder(chip.Options{
		NumFreeColumns: 1,
		SkipRangeCheck: true,
	})
	//
	var (
		acc = b.Element()
		_   = NewAssign(b, acc.Next().Slice(), expression.Mul(
			expression.ConstantUint64([]uint64{2}),
			expression.FromRegister(acc),
		))
		c = b.Build()
		g = chip.NewGenerator(c, numRows)
	)
	//
	g.Writer().WriteElement(acc, 0, goldilocks.NewElement(3))
	//
	for row := 0; row < numRows; row++ {
		g.WriteRowInstructions(row)
	}
	//
	require.Equal(t, 0, len(g.Check()))
	assert.Equal(t, goldilocks.NewElement(3<<7), g.Writer().ReadElement(acc, numRows-1))
}

func Test_Select_01(t *testing.T) {
	// The blend picks the true branch when the bit is set and the
	// false branch otherwise.
	const numRows = 4
	//
	b := chip.NewBuilder(chip.Options{
		NumFreeColumns: 2,
		SkipRangeCheck: true,
	})
	//
	var (
		bit    = b.Bit()
		target = b.Element()
		_      = NewSelect(b, target.Slice(), bit,
			expression.ConstantUint64([]uint64{7}),
			expression.ConstantUint64([]uint64{11}),
		)
		c = b.Build()
		g = chip.NewGenerator(c, numRows)
	)
	//
	for row := 0; row < numRows; row++ {
		g.Writer().WriteBit(bit, row, row%2 == 0)
		g.WriteRowInstructions(row)
	}
	//
	require.Equal(t, 0, len(g.Check()))
	assert.Equal(t, goldilocks.NewElement(7), g.Writer().ReadElement(target, 0))
	assert.Equal(t, goldilocks.NewElement(11), g.Writer().ReadElement(target, 1))
}
