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
package register

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Slice_01(t *testing.T) {
	// Shifting to the next row changes only the segment.
	s := NewSlice(LOCAL, 3, 4)
	n := s.Next()
	//
	assert.Equal(t, NEXT, n.Segment)
	assert.Equal(t, 3, n.Offset)
	assert.Equal(t, 4, n.Length)
}

func Test_Slice_02(t *testing.T) {
	// Subranges offset into the parent slice.
	s := NewSlice(LOCAL, 8, 8)
	r := s.Range(2, 5)
	//
	assert.Equal(t, 10, r.Offset)
	assert.Equal(t, 3, r.Length)
	// Out of bounds subranges are rejected.
	assert.Panics(t, func() { s.Range(4, 9) })
}

func Test_Slice_03(t *testing.T) {
	// Only local slices can shift rows.
	assert.Panics(t, func() { NewSlice(PUBLIC, 0, 1).Next() })
}

func Test_Array_01(t *testing.T) {
	// Elements index into the underlying slice.
	a := NewArray(NewSlice(LOCAL, 4, 3))
	//
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, 5, a.Get(1).Slice().Offset)
	assert.Equal(t, NEXT, a.Next().Get(0).Slice().Segment)
	assert.Panics(t, func() { a.Get(3) })
}

func Test_Field_01(t *testing.T) {
	// A field register exposes its limbs as an array.
	f := NewField(NewSlice(LOCAL, 0, 16))
	//
	assert.Equal(t, 16, f.NbLimbs())
	assert.Equal(t, 16, f.Limbs().Len())
	assert.Equal(t, 7, f.Limbs().Get(7).Slice().Offset)
}
