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
	"github.com/consensys/go-curta/pkg/chip"
	"github.com/consensys/go-curta/pkg/chip/field"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/chip/trace"
)

// PointRegister holds an affine point as two adjacent field
// registers, so that both coordinates can also be viewed as a single
// slice when feeding a digest.
type PointRegister struct {
	X, Y register.Field
}

// NewPointRegister allocates a point from the range-checked columns.
func NewPointRegister(b *chip.Builder, params *field.Parameters) PointRegister {
	return PointRegister{
		X: b.FieldRegister(params.NbLimbs),
		Y: b.FieldRegister(params.NbLimbs),
	}
}

// Slice returns the combined X || Y slice.
func (r PointRegister) Slice() register.Slice {
	var (
		xs = r.X.Slice()
		ys = r.Y.Slice()
	)
	//
	if xs.Segment != ys.Segment || xs.Offset+xs.Length != ys.Offset {
		panic("point coordinates are not adjacent")
	}
	//
	return register.NewSlice(xs.Segment, xs.Offset, xs.Length+ys.Length)
}

// Write assigns a concrete point to this register.
func (r PointRegister) Write(w *trace.Writer, row int, p Point) {
	w.WriteField(r.X, row, p.X)
	w.WriteField(r.Y, row, p.Y)
}

// Read recovers the concrete point held by this register.
func (r PointRegister) Read(w *trace.Writer, row int) Point {
	return Point{w.ReadField(r.X, row), w.ReadField(r.Y, row)}
}
