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
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/consensys/gnark-crypto/field/goldilocks"
	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/chip/trace"
)

// Options fixes the column budgets of a chip up front.  Budgets are
// deliberate: allocation beyond a budget panics immediately, naming
// the budget to raise, rather than silently growing the trace.
type Options struct {
	// NumArithmeticColumns is the budget of range-checked 16-bit
	// cells.  When non-zero, a 16-bit range check over all of them
	// is wired in automatically at build time.
	NumArithmeticColumns int
	// NumFreeColumns is the budget of unconstrained cells.
	NumFreeColumns int
	// NumExtendedColumns is the budget of challenge-dependent
	// cells, filled only after the main trace is committed.
	NumExtendedColumns int
	// NumPublicInputs is the width of the public input vector.
	NumPublicInputs int
	// NumGlobalValues is the width of the global value vector.
	NumGlobalValues int
	// NumChallenges is the width of the challenge vector.
	NumChallenges int
	// SkipRangeCheck disables the automatic 16-bit range check.
	// The range check table requires at least 2^16 rows, so short
	// traces (e.g. in tests) must opt out.
	SkipRangeCheck bool
}

// Builder allocates trace columns and accumulates instructions, then
// seals everything into a Chip.  Columns are laid out as arithmetic
// cells first, free cells second and extended cells last.
type Builder struct {
	options Options
	// Allocation cursors into each column region.
	arithCursor, freeCursor, extCursor int
	// Allocation cursors into the shared vectors.
	publicCursor, globalCursor, challengeCursor int
	// occupancy tracks every allocated trace column.
	occupancy *bitset.BitSet
	// instructions registered so far, in write order.
	instructions []Instruction
}

// NewBuilder constructs an empty builder with the given budgets.
func NewBuilder(options Options) *Builder {
	numColumns := options.NumArithmeticColumns + options.NumFreeColumns + options.NumExtendedColumns
	//
	return &Builder{
		options:   options,
		occupancy: bitset.New(uint(numColumns)),
	}
}

// NumColumns returns the total column budget.
func (b *Builder) NumColumns() int {
	return b.options.NumArithmeticColumns + b.options.NumFreeColumns + b.options.NumExtendedColumns
}

// allocate claims n cells from one of the three column regions,
// returning the absolute offset of the first.
func (b *Builder) allocate(region string, cursor *int, base, capacity, n int) int {
	if *cursor+n > capacity {
		panic(fmt.Sprintf(
			"%s column budget exhausted: %d cells used, %d requested, capacity %d; raise Options.Num%sColumns",
			region, *cursor, n, capacity, capitalise(region)))
	}
	//
	offset := base + *cursor
	*cursor += n
	//
	for i := 0; i < n; i++ {
		if b.occupancy.Test(uint(offset + i)) {
			panic(fmt.Sprintf("%s column %d allocated twice", region, offset+i))
		}
		//
		b.occupancy.Set(uint(offset + i))
	}
	//
	return offset
}

func capitalise(s string) string {
	return string(s[0]-'a'+'A') + s[1:]
}

// arithmeticSlice claims n range-checked cells.
func (b *Builder) arithmeticSlice(n int) register.Slice {
	offset := b.allocate("arithmetic", &b.arithCursor, 0, b.options.NumArithmeticColumns, n)
	return register.NewSlice(register.LOCAL, offset, n)
}

// freeSlice claims n unconstrained cells.
func (b *Builder) freeSlice(n int) register.Slice {
	offset := b.allocate("free", &b.freeCursor, b.options.NumArithmeticColumns, b.options.NumFreeColumns, n)
	return register.NewSlice(register.LOCAL, offset, n)
}

// extendedSlice claims n challenge-dependent cells.
func (b *Builder) extendedSlice(n int) register.Slice {
	base := b.options.NumArithmeticColumns + b.options.NumFreeColumns
	offset := b.allocate("extended", &b.extCursor, base, b.options.NumExtendedColumns, n)
	//
	return register.NewSlice(register.LOCAL, offset, n)
}

// sharedSlice claims n cells from one of the shared vectors.
func (b *Builder) sharedSlice(segment register.Segment, region string, cursor *int, capacity, n int) register.Slice {
	if *cursor+n > capacity {
		panic(fmt.Sprintf(
			"%s budget exhausted: %d cells used, %d requested, capacity %d",
			region, *cursor, n, capacity))
	}
	//
	offset := *cursor
	*cursor += n
	//
	return register.NewSlice(segment, offset, n)
}

// Element allocates a single free cell.
func (b *Builder) Element() register.Element {
	return register.NewElement(b.freeSlice(1))
}

// Bit allocates a single free cell constrained to be boolean.
func (b *Builder) Bit() register.Bit {
	r := register.NewBit(b.freeSlice(1))
	// bit * (bit - 1) == 0
	b.Register(ConstraintFunc(func(p air.Parser) {
		bit := air.ReadBit(p, r)
		p.Assert(p.Mul(bit, p.Sub(bit, p.One())))
	}))
	//
	return r
}

// Array allocates n contiguous free cells.
func (b *Builder) Array(n int) register.Array {
	return register.NewArray(b.freeSlice(n))
}

// Cubic allocates three free cells holding one extension element.
func (b *Builder) Cubic() register.Cubic {
	return register.NewCubic(b.freeSlice(3))
}

// U16Array allocates n contiguous range-checked cells.
func (b *Builder) U16Array(n int) register.Array {
	return register.NewArray(b.arithmeticSlice(n))
}

// FieldRegister allocates range-checked cells for one emulated field
// element of the given limb count.
func (b *Builder) FieldRegister(nbLimbs int) register.Field {
	return register.NewField(b.arithmeticSlice(nbLimbs))
}

// ExtendedCubic allocates three extended cells holding one extension
// element.
func (b *Builder) ExtendedCubic() register.Cubic {
	return register.NewCubic(b.extendedSlice(3))
}

// Challenge allocates one verifier challenge as an extension element.
func (b *Builder) Challenge() register.Cubic {
	slice := b.sharedSlice(register.CHALLENGE, "challenge", &b.challengeCursor, b.options.NumChallenges, 3)
	return register.NewCubic(slice)
}

// Public allocates n cells of the public input vector.
func (b *Builder) Public(n int) register.Array {
	slice := b.sharedSlice(register.PUBLIC, "public input", &b.publicCursor, b.options.NumPublicInputs, n)
	return register.NewArray(slice)
}

// PublicField allocates public input cells for one emulated field
// element.
func (b *Builder) PublicField(nbLimbs int) register.Field {
	slice := b.sharedSlice(register.PUBLIC, "public input", &b.publicCursor, b.options.NumPublicInputs, nbLimbs)
	return register.NewField(slice)
}

// GlobalCubic allocates one extension element in the global value
// vector.
func (b *Builder) GlobalCubic() register.Cubic {
	slice := b.sharedSlice(register.GLOBAL, "global value", &b.globalCursor, b.options.NumGlobalValues, 3)
	return register.NewCubic(slice)
}

// Register appends an instruction to this chip.  Instructions are
// written to the trace in registration order.
func (b *Builder) Register(instr Instruction) {
	b.instructions = append(b.instructions, instr)
}

// Clock allocates a free column counting rows from zero, as used by
// the range check table and by cyclic gadgets.
func (b *Builder) Clock() register.Element {
	r := b.Element()
	b.Register(&clock{r})
	//
	return r
}

// Build seals the builder into a chip.  Budget underuse is reported,
// overuse has already panicked during allocation.
func (b *Builder) Build() *Chip {
	// Wire in the 16-bit range check over all arithmetic cells.
	if b.arithCursor > 0 && !b.options.SkipRangeCheck {
		values := register.NewSlice(register.LOCAL, 0, b.arithCursor)
		table := b.Clock()
		NewLookup(b, table, values)
	}
	//
	b.reportUsage("arithmetic", b.arithCursor, b.options.NumArithmeticColumns)
	b.reportUsage("free", b.freeCursor, b.options.NumFreeColumns)
	b.reportUsage("extended", b.extCursor, b.options.NumExtendedColumns)
	//
	chip := &Chip{
		NumColumns:           b.NumColumns(),
		NumArithmeticColumns: b.options.NumArithmeticColumns,
		NumFreeColumns:       b.options.NumFreeColumns,
		NumExtendedColumns:   b.options.NumExtendedColumns,
		NumPublicInputs:      b.options.NumPublicInputs,
		NumGlobalValues:      b.options.NumGlobalValues,
		NumChallenges:        b.options.NumChallenges,
		Instructions:         b.instructions,
	}
	// Determine the maximum constraint degree symbolically.
	symbolic := &air.Symbolic{}
	chip.Eval(symbolic)
	chip.MaxDegree = symbolic.MaxDegree()
	//
	log.Debugf("built chip with %d of %d columns occupied, %d instructions, max degree %d",
		b.occupancy.Count(), chip.NumColumns, len(chip.Instructions), chip.MaxDegree)
	//
	return chip
}

func (b *Builder) reportUsage(region string, used, capacity int) {
	if used < capacity {
		log.Warnf("%s columns underused: %d of %d allocated; consider lowering the budget", region, used, capacity)
	}
}

// clock constrains a column to count rows from zero.
type clock struct {
	register register.Element
}

// Eval implementation for the Instruction interface.
func (c *clock) Eval(p air.Parser) {
	var (
		value = air.ReadElement(p, c.register)
		next  = air.ReadElement(p, c.register.Next())
	)
	//
	p.AssertFirst(value)
	p.AssertTransition(p.Sub(next, p.Add(value, p.One())))
}

// WriteRow implementation for the RowWriter interface.
func (c *clock) WriteRow(w *trace.Writer, row int) {
	w.WriteElement(c.register, row, goldilocks.NewElement(uint64(row)))
}
