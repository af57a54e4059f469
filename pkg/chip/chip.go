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

// Package chip assembles registers, instructions and lookup arguments
// into a complete AIR chip.  A Builder allocates trace columns within
// fixed budgets and accumulates instructions; the resulting Chip knows
// its full column layout and constraint set, and a Generator fills and
// checks concrete traces against it.
package chip

import (
	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip/trace"
)

// Instruction is the unit from which a chip is composed.  Every
// instruction contributes constraints; those which also compute
// witness values implement one of the optional writer interfaces
// below.
type Instruction interface {
	// Eval emits the constraints of this instruction.
	Eval(p air.Parser)
}

// RowWriter is implemented by instructions which derive witness
// values row by row from registers already written on that row.
type RowWriter interface {
	Instruction
	// WriteRow computes and writes this instruction's outputs for
	// the given row.
	WriteRow(w *trace.Writer, row int)
}

// ExtendedWriter is implemented by instructions whose columns depend
// on verifier challenges and can therefore only be filled once the
// main trace is complete and challenges have been drawn.
type ExtendedWriter interface {
	Instruction
	// WriteExtended fills this instruction's challenge-dependent
	// columns across the whole trace.
	WriteExtended(w *trace.Writer)
}

// ConstraintFunc adapts a bare function into an Instruction.
type ConstraintFunc func(p air.Parser)

// Eval implementation for the Instruction interface.
func (f ConstraintFunc) Eval(p air.Parser) {
	f(p)
}

// Chip is an immutable AIR produced by a Builder.  It records the
// column layout together with every registered instruction.
type Chip struct {
	// NumColumns is the total width of the trace, arithmetic plus
	// free plus extended columns.
	NumColumns int
	// NumArithmeticColumns holds range-checked 16-bit cells.
	NumArithmeticColumns int
	// NumFreeColumns holds unconstrained cells.
	NumFreeColumns int
	// NumExtendedColumns holds challenge-dependent cells.
	NumExtendedColumns int
	// NumPublicInputs is the width of the public input vector.
	NumPublicInputs int
	// NumGlobalValues is the width of the global value vector.
	NumGlobalValues int
	// NumChallenges is the width of the challenge vector.
	NumChallenges int
	// Instructions registered, in write order.
	Instructions []Instruction
	// MaxDegree over all constraints of this chip.
	MaxDegree int
}

// Eval emits the constraints of every instruction under the given
// parser.
func (c *Chip) Eval(p air.Parser) {
	for _, instr := range c.Instructions {
		instr.Eval(p)
	}
}
