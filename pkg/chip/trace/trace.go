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

// Package trace provides the execution trace arena and a register
// level writer over it.  The trace is a single row-major backing
// array: concurrent writers own disjoint row ranges and therefore
// need no locks.
package trace

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/math/cubic"
	"github.com/consensys/go-curta/pkg/util"
)

// Trace is a two-dimensional arena of field elements, one row per
// machine step and one column per register cell.
type Trace struct {
	numRows int
	numCols int
	// values holds rows contiguously, i.e. cell (r,c) lives at
	// index r*numCols + c.
	values []goldilocks.Element
}

// New allocates a zeroed trace of the given dimensions.
func New(numRows, numCols int) *Trace {
	if numRows <= 0 || numCols <= 0 {
		panic(fmt.Sprintf("invalid trace dimensions %d x %d", numRows, numCols))
	}
	//
	return &Trace{numRows, numCols, make([]goldilocks.Element, numRows*numCols)}
}

// NumRows returns the number of rows in this trace.
func (t *Trace) NumRows() int { return t.numRows }

// NumCols returns the number of columns in this trace.
func (t *Trace) NumCols() int { return t.numCols }

// Row returns a mutable view of the given row.
func (t *Trace) Row(row int) []goldilocks.Element {
	return t.values[row*t.numCols : (row+1)*t.numCols]
}

// Get reads a single cell.
func (t *Trace) Get(row, col int) goldilocks.Element {
	return t.values[row*t.numCols+col]
}

// Set writes a single cell.
func (t *Trace) Set(row, col int, value goldilocks.Element) {
	t.values[row*t.numCols+col] = value
}

// Column copies out a whole column.
func (t *Trace) Column(col int) []goldilocks.Element {
	result := make([]goldilocks.Element, t.numRows)
	//
	for i := range result {
		result[i] = t.values[i*t.numCols+col]
	}
	//
	return result
}

// Writer assigns register values into a trace, together with the
// public, global and challenge vectors living alongside it.  A writer
// may be shared by concurrent goroutines provided they write disjoint
// rows; the shared vectors must only be written from a single
// goroutine.
type Writer struct {
	// Trace being written.
	Trace *Trace
	// Public input vector.
	Public []goldilocks.Element
	// Global value vector.
	Global []goldilocks.Element
	// Challenge coefficient vector.
	Challenges []goldilocks.Element
}

// NewWriter allocates a writer over a fresh trace with the given
// number of shared cells.
func NewWriter(numRows, numCols, numPublic, numGlobal, numChallenges int) *Writer {
	return &Writer{
		Trace:      New(numRows, numCols),
		Public:     make([]goldilocks.Element, numPublic),
		Global:     make([]goldilocks.Element, numGlobal),
		Challenges: make([]goldilocks.Element, numChallenges),
	}
}

// segment resolves a slice to its backing cells for a given row.  A
// next-row slice on row i resolves to the local cells of row i+1.
func (w *Writer) segment(slice register.Slice, row int) ([]goldilocks.Element, int) {
	switch slice.Segment {
	case register.LOCAL:
		return w.Trace.Row(row), slice.Offset
	case register.NEXT:
		return w.Trace.Row(row + 1), slice.Offset
	case register.PUBLIC:
		return w.Public, slice.Offset
	case register.GLOBAL:
		return w.Global, slice.Offset
	case register.CHALLENGE:
		return w.Challenges, slice.Offset
	}
	//
	panic(fmt.Sprintf("unknown segment %s", slice.Segment))
}

// WriteSlice assigns values to the cells of a slice on a given row.
func (w *Writer) WriteSlice(slice register.Slice, row int, values []goldilocks.Element) {
	if len(values) != slice.Length {
		panic(fmt.Sprintf("writing %d values into slice of length %d", len(values), slice.Length))
	}
	//
	cells, offset := w.segment(slice, row)
	copy(cells[offset:offset+slice.Length], values)
}

// ReadSlice reads the cells of a slice on a given row.
func (w *Writer) ReadSlice(slice register.Slice, row int) []goldilocks.Element {
	cells, offset := w.segment(slice, row)
	result := make([]goldilocks.Element, slice.Length)
	copy(result, cells[offset:offset+slice.Length])
	//
	return result
}

// WriteElement assigns a single element register.
func (w *Writer) WriteElement(r register.Element, row int, value goldilocks.Element) {
	w.WriteSlice(r.Slice(), row, []goldilocks.Element{value})
}

// ReadElement reads a single element register.
func (w *Writer) ReadElement(r register.Element, row int) goldilocks.Element {
	return w.ReadSlice(r.Slice(), row)[0]
}

// WriteBit assigns a bit register.
func (w *Writer) WriteBit(r register.Bit, row int, value bool) {
	var e goldilocks.Element
	//
	if value {
		e = goldilocks.One()
	}
	//
	w.WriteElement(r.Element, row, e)
}

// ReadBit reads a bit register.
func (w *Writer) ReadBit(r register.Bit, row int) bool {
	e := w.ReadElement(r.Element, row)
	return !e.IsZero()
}

// WriteCubic assigns a cubic register.
func (w *Writer) WriteCubic(r register.Cubic, row int, value cubic.Element) {
	w.WriteSlice(r.Slice(), row, value[:])
}

// ReadCubic reads a cubic register.
func (w *Writer) ReadCubic(r register.Cubic, row int) cubic.Element {
	cells := w.ReadSlice(r.Slice(), row)
	return cubic.NewElement(cells[0], cells[1], cells[2])
}

// WriteField assigns a field register from a big integer, decomposing
// it into 16-bit limbs.
func (w *Writer) WriteField(r register.Field, row int, value *big.Int) {
	w.WriteSlice(r.Slice(), row, util.BigToElements(value, r.NbLimbs()))
}

// ReadField reads a field register back into a big integer.
func (w *Writer) ReadField(r register.Field, row int) *big.Int {
	return util.ElementsToBig(w.ReadSlice(r.Slice(), row))
}

// Window builds an evaluation window over the given row, wrapping
// around to the first row for the next-row view of the last.
func (w *Writer) Window(row int) ([]goldilocks.Element, []goldilocks.Element) {
	next := (row + 1) % w.Trace.NumRows()
	return w.Trace.Row(row), w.Trace.Row(next)
}
