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

// Package instruction provides generic chip instructions which are
// not tied to emulated field arithmetic: register assignment,
// selection, cyclic counters and bit decomposition.
package instruction

import (
	"github.com/consensys/gnark-crypto/field/goldilocks"

	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip"
	"github.com/consensys/go-curta/pkg/chip/expression"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/chip/trace"
)

// Assign constrains the cells of a target slice to equal an
// expression.  A target in the next-row segment makes this a
// transition rule; the constraint is then scoped to skip the last
// row, and so is the writer.
type Assign struct {
	target register.Slice
	value  expression.Expression
}

// NewAssign builds and registers an assignment.
func NewAssign(b *chip.Builder, target register.Slice, value expression.Expression) *Assign {
	if target.Length != value.Size() {
		panic("assignment size mismatch")
	}
	//
	instr := &Assign{target, value}
	b.Register(instr)
	//
	return instr
}

// Eval implementation for the Instruction interface.
func (a *Assign) Eval(p air.Parser) {
	var (
		scope = air.ALL
		cells = p.Read(a.target)
		vals  = a.value.Eval(p)
	)
	//
	if a.target.Segment == register.NEXT {
		scope = air.TRANSITION
	}
	//
	for i := range cells {
		air.AssertScoped(p, p.Sub(cells[i], vals[i]), scope)
	}
}

// WriteRow implementation for the RowWriter interface.
func (a *Assign) WriteRow(w *trace.Writer, row int) {
	// Transition assignments have nothing to write on the last row.
	if a.target.Segment == register.NEXT && row == w.Trace.NumRows()-1 {
		return
	}
	//
	local, following := w.Window(row)
	//
	p := &air.Window{
		Local:      local,
		Following:  following,
		Public:     w.Public,
		Global:     w.Global,
		Challenges: w.Challenges,
		Row:        row,
		NumRows:    w.Trace.NumRows(),
	}
	//
	vals := a.value.Eval(p)
	cells := make([]goldilocks.Element, len(vals))
	//
	for i, v := range vals {
		cells[i] = v.(goldilocks.Element)
	}
	//
	w.WriteSlice(a.target, row, cells)
}
