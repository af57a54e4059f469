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

// Package register defines typed references into the memory of an
// execution trace.  A register never owns any data; it merely records
// which segment of the trace it points at, along with an offset and a
// length.  Higher layers interpret the referenced cells as bits, field
// element limbs, extension elements, and so on.
package register

import "fmt"

// Segment identifies which part of trace memory a slice refers to.
type Segment uint8

const (
	// LOCAL refers to columns of the current row.
	LOCAL Segment = iota
	// NEXT refers to columns of the following row, as used by
	// transition constraints.
	NEXT
	// PUBLIC refers to the public input vector, shared by all rows.
	PUBLIC
	// GLOBAL refers to global values which exist once per trace,
	// such as bus digests.
	GLOBAL
	// CHALLENGE refers to verifier challenges, which only become
	// available after the main trace has been committed.
	CHALLENGE
)

// String returns a short human-readable tag for this segment.
func (s Segment) String() string {
	switch s {
	case LOCAL:
		return "local"
	case NEXT:
		return "next"
	case PUBLIC:
		return "public"
	case GLOBAL:
		return "global"
	case CHALLENGE:
		return "challenge"
	}
	//
	return "???"
}

// Slice is a contiguous run of cells within one trace segment.
type Slice struct {
	// Segment being referenced.
	Segment Segment
	// Offset of the first cell within the segment.
	Offset int
	// Length is the number of cells referenced.
	Length int
}

// NewSlice constructs a slice covering cells [offset, offset+length)
// of the given segment.
func NewSlice(segment Segment, offset, length int) Slice {
	return Slice{segment, offset, length}
}

// Next shifts a local slice to the following row.  Only local slices
// have a meaningful next-row counterpart.
func (s Slice) Next() Slice {
	if s.Segment != LOCAL {
		panic(fmt.Sprintf("cannot shift %s slice to next row", s.Segment))
	}
	//
	return Slice{NEXT, s.Offset, s.Length}
}

// Range extracts the sub-slice covering cells [start, end) of this
// slice.
func (s Slice) Range(start, end int) Slice {
	if start < 0 || end > s.Length || start > end {
		panic(fmt.Sprintf("sub-slice [%d,%d) out of bounds for slice of length %d", start, end, s.Length))
	}
	//
	return Slice{s.Segment, s.Offset + start, end - start}
}

// String returns a human-readable rendering of this slice.
func (s Slice) String() string {
	return fmt.Sprintf("%s[%d..%d)", s.Segment, s.Offset, s.Offset+s.Length)
}

// Register is any typed view over a slice of trace memory.
type Register interface {
	// Slice returns the underlying memory slice.
	Slice() Slice
	// Size returns the number of cells occupied.
	Size() int
}

// ============================================================================
// Element
// ============================================================================

// Element is a register holding a single base field element.
type Element struct {
	slice Slice
}

// NewElement wraps a one-cell slice as an element register.
func NewElement(slice Slice) Element {
	if slice.Length != 1 {
		panic(fmt.Sprintf("element register requires exactly one cell, got %d", slice.Length))
	}
	//
	return Element{slice}
}

// Slice implementation for the Register interface.
func (r Element) Slice() Slice { return r.slice }

// Size implementation for the Register interface.
func (r Element) Size() int { return 1 }

// Next returns the same register viewed on the following row.
func (r Element) Next() Element {
	return Element{r.slice.Next()}
}

// ============================================================================
// Bit
// ============================================================================

// Bit is an element register whose value is constrained to be zero or
// one.  The constraint itself is emitted by whoever allocates the
// register.
type Bit struct {
	Element
}

// NewBit wraps a one-cell slice as a bit register.
func NewBit(slice Slice) Bit {
	return Bit{NewElement(slice)}
}

// Next returns the same register viewed on the following row.
func (r Bit) Next() Bit {
	return Bit{r.Element.Next()}
}

// ============================================================================
// Array
// ============================================================================

// Array is a register holding a fixed number of base field elements
// laid out contiguously.
type Array struct {
	slice Slice
}

// NewArray wraps a slice as an array register.
func NewArray(slice Slice) Array {
	return Array{slice}
}

// Slice implementation for the Register interface.
func (r Array) Slice() Slice { return r.slice }

// Size implementation for the Register interface.
func (r Array) Size() int { return r.slice.Length }

// Len returns the number of elements in this array.
func (r Array) Len() int { return r.slice.Length }

// Get returns the i'th element of this array.
func (r Array) Get(i int) Element {
	return NewElement(r.slice.Range(i, i+1))
}

// Range extracts the sub-array covering elements [start, end).
func (r Array) Range(start, end int) Array {
	return Array{r.slice.Range(start, end)}
}

// Next returns the same register viewed on the following row.
func (r Array) Next() Array {
	return Array{r.slice.Next()}
}

// ============================================================================
// Cubic
// ============================================================================

// Cubic is a register holding one cubic extension element as three
// consecutive base field coefficients.
type Cubic struct {
	slice Slice
}

// NewCubic wraps a three-cell slice as a cubic register.
func NewCubic(slice Slice) Cubic {
	if slice.Length != 3 {
		panic(fmt.Sprintf("cubic register requires exactly three cells, got %d", slice.Length))
	}
	//
	return Cubic{slice}
}

// Slice implementation for the Register interface.
func (r Cubic) Slice() Slice { return r.slice }

// Size implementation for the Register interface.
func (r Cubic) Size() int { return 3 }

// Next returns the same register viewed on the following row.
func (r Cubic) Next() Cubic {
	return Cubic{r.slice.Next()}
}

// ============================================================================
// Field
// ============================================================================

// Field is a register holding one emulated field element as a fixed
// number of 16-bit limbs, least significant first.
type Field struct {
	slice Slice
}

// NewField wraps a slice as a field register, one cell per limb.
func NewField(slice Slice) Field {
	return Field{slice}
}

// Slice implementation for the Register interface.
func (r Field) Slice() Slice { return r.slice }

// Size implementation for the Register interface.
func (r Field) Size() int { return r.slice.Length }

// NbLimbs returns the number of limbs of the emulated element.
func (r Field) NbLimbs() int { return r.slice.Length }

// Limbs returns the limbs of this register as an array register.
func (r Field) Limbs() Array {
	return NewArray(r.slice)
}

// Next returns the same register viewed on the following row.
func (r Field) Next() Field {
	return Field{r.slice.Next()}
}
