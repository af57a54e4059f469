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
package chip

import (
	"math/rand/v2"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/go-curta/pkg/chip/expression"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Builder_01(t *testing.T) {
	// Columns are laid out arithmetic first, free second, extended
	// last.
	b := NewBuilder(Options{
		NumArithmeticColumns: 4,
		NumFreeColumns:       2,
		NumExtendedColumns:   3,
		SkipRangeCheck:       true,
	})
	//
	var (
		limbs = b.U16Array(4)
		cell  = b.Element()
		ext   = b.ExtendedCubic()
	)
	//
	assert.Equal(t, 0, limbs.Slice().Offset)
	assert.Equal(t, 4, cell.Slice().Offset)
	assert.Equal(t, 6, ext.Slice().Offset)
	assert.Equal(t, 9, b.NumColumns())
}

func Test_Builder_02(t *testing.T) {
	// Exceeding the arithmetic budget panics with an actionable
	// message.
	defer func() {
		err := recover()
		require.NotNil(t, err)
		assert.Contains(t, err.(string), "NumArithmeticColumns")
	}()
	//
	b := NewBuilder(Options{NumArithmeticColumns: 8})
	b.U16Array(9)
}

func Test_Builder_03(t *testing.T) {
	// Exceeding the free budget panics as well.
	defer func() {
		require.NotNil(t, recover())
	}()
	//
	b := NewBuilder(Options{NumFreeColumns: 1})
	b.Element()
	b.Element()
}

func Test_Builder_04(t *testing.T) {
	// A region layout claiming an already occupied column panics.
	defer func() {
		require.NotNil(t, recover())
	}()
	//
	var (
		b      = NewBuilder(Options{NumArithmeticColumns: 2, NumFreeColumns: 2})
		cursor = 0
	)
	//
	b.allocate("arithmetic", &b.arithCursor, 0, 2, 2)
	b.allocate("free", &cursor, 0, 2, 2)
}

func Test_Lookup_01(t *testing.T) {
	// Values drawn from the table leave the digests balanced.
	g, _, _ := lookupFixture(t, 0)
	assert.Equal(t, 0, len(g.Check()))
}

func Test_Lookup_02(t *testing.T) {
	// A value outside the table unbalances the digests.
	g, values, _ := lookupFixture(t, 0)
	// Overwrite one queried cell with a value absent from the table.
	g.Writer().WriteSlice(values.Slice().Range(0, 1), 3, elements(100))
	g.WriteExtended()
	//
	assert.NotEqual(t, 0, len(g.Check()))
}

func Test_Lookup_03(t *testing.T) {
	// A repeated table entry must not inflate the table-side digest,
	// so a trace querying only the repeated value stays balanced.
	const numRows = 8
	//
	b := NewBuilder(Options{
		NumFreeColumns:     6,
		NumExtendedColumns: 15,
		NumChallenges:      3,
		SkipRangeCheck:     true,
	})
	//
	var (
		table  = b.Element()
		values = b.Array(4)
	)
	//
	NewLookup(b, table, values.Slice())
	//
	var (
		c = b.Build()
		g = NewGenerator(c, numRows)
	)
	//
	entries := []uint64{0, 1, 2, 3, 3, 4, 5, 6}
	//
	for row := 0; row < numRows; row++ {
		g.Writer().WriteElement(table, row, goldilocks.NewElement(entries[row]))
		//
		for i := 0; i < values.Len(); i++ {
			g.Writer().WriteElement(values.Get(i), row, goldilocks.NewElement(3))
		}
	}
	//
	require.NoError(t, g.SetChallenges())
	g.WriteExtended()
	//
	assert.Equal(t, 0, len(g.Check()))
}

// lookupFixture builds a small chip with a manually written table
// column holding 0..7 and four query columns filled with random table
// values.
func lookupFixture(t *testing.T, seed uint64) (*Generator, register.Array, *Lookup) {
	const numRows = 8
	//
	b := NewBuilder(Options{
		NumFreeColumns:     6,
		NumExtendedColumns: 15,
		NumChallenges:      3,
		SkipRangeCheck:     true,
	})
	//
	var (
		table  = b.Element()
		values = b.Array(4)
		lookup = NewLookup(b, table, values.Slice())
	)
	//
	var (
		c   = b.Build()
		g   = NewGenerator(c, numRows)
		rnd = rand.New(rand.NewPCG(seed, seed))
	)
	//
	for row := 0; row < numRows; row++ {
		g.Writer().WriteElement(table, row, goldilocks.NewElement(uint64(row)))
		//
		for i := 0; i < values.Len(); i++ {
			g.Writer().WriteElement(values.Get(i), row, goldilocks.NewElement(rnd.Uint64()%numRows))
		}
	}
	//
	require.NoError(t, g.SetChallenges())
	g.WriteExtended()
	//
	return g, values, lookup
}

func Test_RangeCheck_01(t *testing.T) {
	// The automatic 16-bit range check accepts arbitrary u16 cells
	// over a full-height trace and rejects an out-of-range cell.
	const numRows = util.LimbSize
	//
	b := NewBuilder(Options{
		NumArithmeticColumns: 2,
		NumFreeColumns:       2,
		NumExtendedColumns:   12,
		NumChallenges:        3,
	})
	//
	cells := b.U16Array(2)
	c := b.Build()
	g := NewGenerator(c, numRows)
	rnd := rand.New(rand.NewPCG(5, 5))
	//
	for row := 0; row < numRows; row++ {
		g.Writer().WriteElement(cells.Get(0), row, goldilocks.NewElement(rnd.Uint64()%util.LimbSize))
		g.Writer().WriteElement(cells.Get(1), row, goldilocks.NewElement(rnd.Uint64()%util.LimbSize))
		g.WriteRowInstructions(row)
	}
	//
	require.NoError(t, g.SetChallenges())
	g.WriteExtended()
	require.Equal(t, 0, len(g.Check()))
	// An out-of-range value breaks the argument.
	g.Writer().WriteElement(cells.Get(0), 17, goldilocks.NewElement(uint64(util.LimbSize)))
	g.WriteExtended()
	assert.NotEqual(t, 0, len(g.Check()))
}

func Test_Evaluation_01(t *testing.T) {
	// The digest matches the verifier-side fold and recomputation
	// is idempotent.
	const numRows = 16
	//
	b := NewBuilder(Options{
		NumFreeColumns:     4,
		NumExtendedColumns: 6,
		NumGlobalValues:    3,
		NumChallenges:      6,
		SkipRangeCheck:     true,
	})
	//
	var (
		filter = b.Bit()
		values = b.Array(2)
		eval   = NewEvaluation(b, expression.FromRegister(filter), values.Slice())
	)
	//
	var (
		c        = b.Build()
		g        = NewGenerator(c, numRows)
		rnd      = rand.New(rand.NewPCG(9, 9))
		selected [][]goldilocks.Element
	)
	//
	for row := 0; row < numRows; row++ {
		bit := rnd.Uint64()%2 == 1
		vector := elements(rnd.Uint64()%1000, rnd.Uint64()%1000)
		//
		g.Writer().WriteBit(filter, row, bit)
		g.Writer().WriteSlice(values.Slice(), row, vector)
		//
		if bit {
			selected = append(selected, vector)
		}
	}
	//
	require.NoError(t, g.SetChallenges())
	g.WriteExtended()
	require.Equal(t, 0, len(g.Check()))
	//
	var (
		beta     = g.Writer().ReadCubic(eval.Beta(), 0)
		gamma    = g.Writer().ReadCubic(eval.Gamma(), 0)
		expected = FoldDigest(selected, beta, gamma)
		digest   = g.Writer().ReadCubic(eval.Digest(), 0)
	)
	//
	assert.True(t, expected.Equal(digest))
	// Idempotency: refilling the extended columns changes nothing.
	g.WriteExtended()
	assert.True(t, expected.Equal(g.Writer().ReadCubic(eval.Digest(), 0)))
	assert.Equal(t, 0, len(g.Check()))
}

func elements(values ...uint64) []goldilocks.Element {
	result := make([]goldilocks.Element, len(values))
	//
	for i, v := range values {
		result[i] = goldilocks.NewElement(v)
	}
	//
	return result
}
