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
	"github.com/consensys/gnark-crypto/field/goldilocks"
	log "github.com/sirupsen/logrus"

	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/chip/trace"
	"github.com/consensys/go-curta/pkg/math/cubic"
)

// Lookup is a log-derivative lookup argument showing that every value
// cell is contained in the table column.  Both sides accumulate sums
// of inverses 1/(beta - x) over the cubic extension; the value side
// adds one term per queried cell while the table side weights each
// table entry by its multiplicity.  Equality of the two running sums
// on the last row certifies the inclusion.
type Lookup struct {
	// table column containing the permitted values.
	table register.Element
	// values holds the cells being constrained.
	values register.Slice
	// multiplicity counts how often each table entry is queried.
	multiplicity register.Element
	// beta is the verifier challenge.
	beta register.Cubic
	// multLog holds multiplicity / (beta - table).
	multLog register.Cubic
	// pairAccs holds 1/(beta-a) + 1/(beta-b) for value pairs (a,b).
	pairAccs []register.Cubic
	// valueAcc is the running sum over the value side.
	valueAcc register.Cubic
	// tableAcc is the running sum over the table side.
	tableAcc register.Cubic
}

// NewLookup allocates the auxiliary columns of a lookup argument
// constraining every cell of values to appear in the table column.
// Values are consumed in pairs, which halves the number of extension
// columns needed.  The lookup is registered on the builder.
func NewLookup(b *Builder, table register.Element, values register.Slice) *Lookup {
	numPairs := (values.Length + 1) / 2
	//
	l := &Lookup{
		table:        table,
		values:       values,
		multiplicity: b.Element(),
		beta:         b.Challenge(),
		multLog:      b.ExtendedCubic(),
		pairAccs:     make([]register.Cubic, numPairs),
		valueAcc:     b.ExtendedCubic(),
		tableAcc:     b.ExtendedCubic(),
	}
	//
	for i := range l.pairAccs {
		l.pairAccs[i] = b.ExtendedCubic()
	}
	//
	b.Register(l)
	//
	return l
}

// Eval implementation for the Instruction interface.
func (l *Lookup) Eval(p air.Parser) {
	var (
		beta    = air.ReadExtension(p, l.beta)
		one     = air.ExtOne(p)
		table   = air.ExtFromBase(p, air.ReadElement(p, l.table))
		mult    = air.ExtFromBase(p, air.ReadElement(p, l.multiplicity))
		multLog = air.ReadExtension(p, l.multLog)
		cells   = p.Read(l.values)
	)
	// multLog * (beta - table) == multiplicity
	air.AssertExt(p, air.ExtSub(p, air.ExtMul(p, multLog, air.ExtSub(p, beta, table)), mult), air.ALL)
	// Pair accumulators: acc * (beta-a)(beta-b) == (beta-a)+(beta-b),
	// certifying acc == 1/(beta-a) + 1/(beta-b).
	for j, accReg := range l.pairAccs {
		var (
			acc  = air.ReadExtension(p, accReg)
			a    = air.ExtSub(p, beta, air.ExtFromBase(p, cells[2*j]))
			expr air.Extension
		)
		//
		if 2*j+1 < len(cells) {
			b := air.ExtSub(p, beta, air.ExtFromBase(p, cells[2*j+1]))
			expr = air.ExtSub(p, air.ExtMul(p, acc, air.ExtMul(p, a, b)), air.ExtAdd(p, a, b))
		} else {
			// Odd trailing cell: acc * (beta-a) == 1.
			expr = air.ExtSub(p, air.ExtMul(p, acc, a), one)
		}
		//
		air.AssertExt(p, expr, air.ALL)
	}
	// Running sum over the value side.
	var (
		valueAcc     = air.ReadExtension(p, l.valueAcc)
		valueAccNext = air.ReadExtension(p, l.valueAcc.Next())
		rowSum       = l.rowSum(p, false)
		rowSumNext   = l.rowSum(p, true)
	)
	//
	air.AssertExt(p, air.ExtSub(p, valueAcc, rowSum), air.FIRST)
	air.AssertExt(p, air.ExtSub(p, valueAccNext, air.ExtAdd(p, valueAcc, rowSumNext)), air.TRANSITION)
	// Running sum over the table side.
	var (
		tableAcc     = air.ReadExtension(p, l.tableAcc)
		tableAccNext = air.ReadExtension(p, l.tableAcc.Next())
		multLogNext  = air.ReadExtension(p, l.multLog.Next())
	)
	//
	air.AssertExt(p, air.ExtSub(p, tableAcc, multLog), air.FIRST)
	air.AssertExt(p, air.ExtSub(p, tableAccNext, air.ExtAdd(p, tableAcc, multLogNext)), air.TRANSITION)
	// Both sides must agree on the last row.
	air.AssertExt(p, air.ExtSub(p, valueAcc, tableAcc), air.LAST)
}

// rowSum sums the pair accumulators of the current or following row.
func (l *Lookup) rowSum(p air.Parser, next bool) air.Extension {
	sum := air.ExtFromBase(p, p.Zero())
	//
	for _, accReg := range l.pairAccs {
		if next {
			accReg = accReg.Next()
		}
		//
		sum = air.ExtAdd(p, sum, air.ReadExtension(p, accReg))
	}
	//
	return sum
}

// WriteExtended implementation for the ExtendedWriter interface.
func (l *Lookup) WriteExtended(w *trace.Writer) {
	var (
		numRows = w.Trace.NumRows()
		beta    = w.ReadCubic(l.beta, 0)
		counts  = make(map[uint64]uint64)
	)
	// First pass: count how often each value is queried.
	for row := 0; row < numRows; row++ {
		for _, cell := range w.ReadSlice(l.values, row) {
			counts[cell.Uint64()]++
		}
	}
	// Batch all inverse denominators of the trace.
	width := 1 + len(l.pairAccs)*2
	denominators := make([]cubic.Element, numRows*width)
	//
	for row := 0; row < numRows; row++ {
		var (
			table = w.ReadElement(l.table, row)
			cells = w.ReadSlice(l.values, row)
		)
		//
		denominators[row*width] = beta.Sub(cubic.FromBase(table))
		//
		for i, cell := range cells {
			denominators[row*width+1+i] = beta.Sub(cubic.FromBase(cell))
		}
	}
	//
	inverses := cubic.BatchInvert(denominators)
	// Queried values missing from the table cannot be balanced; the
	// last-row constraint will reject the trace, but the underlying
	// witness problem is easier to diagnose here.
	present := make(map[uint64]bool, numRows)
	//
	for row := 0; row < numRows; row++ {
		entry := w.ReadElement(l.table, row)
		present[entry.Uint64()] = true
	}
	//
	for value, count := range counts {
		if !present[value] {
			log.Warnf("lookup value %d queried %d times but absent from the table", value, count)
		}
	}
	// Second pass: multiplicities, log terms and running sums.
	var valueAcc, tableAcc cubic.Element
	//
	for row := 0; row < numRows; row++ {
		var (
			table = w.ReadElement(l.table, row)
			mult  = goldilocks.NewElement(counts[table.Uint64()])
		)
		// A repeated table entry carries the full multiplicity on its
		// first row only, otherwise the table sum counts it twice.
		counts[table.Uint64()] = 0
		//
		w.WriteElement(l.multiplicity, row, mult)
		//
		multLog := inverses[row*width].ScalarMul(mult)
		w.WriteCubic(l.multLog, row, multLog)
		tableAcc = tableAcc.Add(multLog)
		//
		for j, accReg := range l.pairAccs {
			acc := inverses[row*width+1+2*j]
			//
			if 2*j+1 < l.values.Length {
				acc = acc.Add(inverses[row*width+2+2*j])
			}
			//
			w.WriteCubic(accReg, row, acc)
			valueAcc = valueAcc.Add(acc)
		}
		//
		w.WriteCubic(l.valueAcc, row, valueAcc)
		w.WriteCubic(l.tableAcc, row, tableAcc)
	}
}
