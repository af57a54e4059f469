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

	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip/trace"
	"github.com/consensys/go-curta/pkg/util"
)

// Generator fills concrete traces for a chip and checks them against
// its constraint set.  Generation proceeds in three phases: the main
// trace is written first (row writers, possibly in parallel), then
// challenges are drawn, and finally the challenge-dependent extended
// columns are filled.
type Generator struct {
	chip   *Chip
	writer *trace.Writer
}

// NewGenerator allocates a zeroed trace of the given height for a
// chip.
func NewGenerator(chip *Chip, numRows int) *Generator {
	writer := trace.NewWriter(numRows, chip.NumColumns,
		chip.NumPublicInputs, chip.NumGlobalValues, chip.NumChallenges)
	//
	return &Generator{chip, writer}
}

// Writer exposes the underlying trace writer.
func (g *Generator) Writer() *trace.Writer {
	return g.writer
}

// WriteRows writes the main trace by invoking fn for every row.
// Rows are processed in chunks of the given size, with chunks running
// in parallel; fn must only write rows within its own chunk.
func (g *Generator) WriteRows(chunkSize int, fn func(row int, w *trace.Writer) error) error {
	numChunks := (g.writer.Trace.NumRows() + chunkSize - 1) / chunkSize
	//
	return util.ParallelRange(numChunks, 1, func(chunk int) error {
		var (
			start = chunk * chunkSize
			end   = min(start+chunkSize, g.writer.Trace.NumRows())
		)
		//
		for row := start; row < end; row++ {
			if err := fn(row, g.writer); err != nil {
				return err
			}
		}
		//
		return nil
	})
}

// WriteRowInstructions runs every row-writing instruction on the
// given row, in registration order.
func (g *Generator) WriteRowInstructions(row int) {
	for _, instr := range g.chip.Instructions {
		if rw, ok := instr.(RowWriter); ok {
			rw.WriteRow(g.writer, row)
		}
	}
}

// SetChallenges draws fresh random verifier challenges.  In a real
// proof these derive from a transcript of the committed main trace;
// here they are sampled directly.
func (g *Generator) SetChallenges() error {
	for i := range g.writer.Challenges {
		if _, err := g.writer.Challenges[i].SetRandom(); err != nil {
			return fmt.Errorf("sampling challenge %d: %w", i, err)
		}
	}
	//
	return nil
}

// WriteExtended fills all challenge-dependent columns.  Must be
// called after the main trace is complete and challenges are set.
func (g *Generator) WriteExtended() {
	for _, instr := range g.chip.Instructions {
		if ew, ok := instr.(ExtendedWriter); ok {
			ew.WriteExtended(g.writer)
		}
	}
}

// Check evaluates every constraint of the chip over every row of the
// trace, returning all violations found.
func (g *Generator) Check() []air.Failure {
	var (
		numRows  = g.writer.Trace.NumRows()
		failures []air.Failure
	)
	//
	for row := 0; row < numRows; row++ {
		local, following := g.writer.Window(row)
		//
		p := &air.Window{
			Local:      local,
			Following:  following,
			Public:     g.writer.Public,
			Global:     g.writer.Global,
			Challenges: g.writer.Challenges,
			Row:        row,
			NumRows:    numRows,
		}
		//
		g.chip.Eval(p)
		failures = append(failures, p.Failures()...)
	}
	//
	if len(failures) > 0 {
		log.Errorf("trace check failed with %d constraint violations", len(failures))
	}
	//
	return failures
}
