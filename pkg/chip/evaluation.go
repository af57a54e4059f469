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

	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip/expression"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/chip/trace"
	"github.com/consensys/go-curta/pkg/math/cubic"
)

// Evaluation accumulates the values of a register over the rows
// selected by a filter into a single extension digest, effectively a
// bus over which register contents can be compared with public inputs
// or with another evaluation.  Row k contributes fold(values_k) *
// beta^j, where j counts the selected rows before k and the fold
// combines the cells of one row with powers of a second challenge.
type Evaluation struct {
	// filter selects the rows being accumulated.
	filter expression.Expression
	// values holds the cells accumulated per selected row.
	values register.Slice
	// beta separates selected rows.
	beta register.Cubic
	// gamma folds the cells within one row.
	gamma register.Cubic
	// betaPowers tracks beta^j along the trace.
	betaPowers register.Cubic
	// acc is the running digest.
	acc register.Cubic
	// digest receives the accumulated value of the last row.
	digest register.Cubic
}

// NewEvaluation allocates the auxiliary columns for digesting the
// given cells over the rows selected by the filter, which must be a
// scalar expression evaluating to zero or one.  The evaluation is
// registered on the builder, so its constraints and extended columns
// are part of the chip from here on.
func NewEvaluation(b *Builder, filter expression.Expression, values register.Slice) *Evaluation {
	if filter.Size() != 1 {
		panic("evaluation filter must be a scalar expression")
	}
	//
	e := &Evaluation{
		filter:     filter,
		values:     values,
		beta:       b.Challenge(),
		gamma:      b.Challenge(),
		betaPowers: b.ExtendedCubic(),
		acc:        b.ExtendedCubic(),
		digest:     b.GlobalCubic(),
	}
	//
	b.Register(e)
	//
	return e
}

// Digest returns the global register holding the digest.
func (e *Evaluation) Digest() register.Cubic {
	return e.digest
}

// Beta returns the row-separating challenge register.
func (e *Evaluation) Beta() register.Cubic {
	return e.beta
}

// Gamma returns the cell-folding challenge register.
func (e *Evaluation) Gamma() register.Cubic {
	return e.gamma
}

// Eval implementation for the Instruction interface.
func (e *Evaluation) Eval(p air.Parser) {
	var (
		one        = air.ExtOne(p)
		beta       = air.ReadExtension(p, e.beta)
		filter     = air.ExtFromBase(p, e.filter.Eval(p)[0])
		filterNext = air.ExtFromBase(p, expression.Next(e.filter).Eval(p)[0])
		powers     = air.ReadExtension(p, e.betaPowers)
		powersNext = air.ReadExtension(p, e.betaPowers.Next())
		acc        = air.ReadExtension(p, e.acc)
		accNext    = air.ReadExtension(p, e.acc.Next())
		row        = e.fold(p, false)
		rowNext    = e.fold(p, true)
	)
	// betaPowers holds beta^j with j the number of selected rows
	// strictly before the current one, so the first selected row is
	// weighted by one: powers' == powers * (filter*beta + 1 - filter).
	step := air.ExtAdd(p, air.ExtMul(p, filter, beta), air.ExtSub(p, one, filter))
	air.AssertExt(p, air.ExtSub(p, powers, one), air.FIRST)
	air.AssertExt(p, air.ExtSub(p, powersNext, air.ExtMul(p, powers, step)), air.TRANSITION)
	// acc accumulates filter-selected row values weighted by the
	// beta power of their position.
	air.AssertExt(p, air.ExtSub(p, acc, air.ExtMul(p, filter, row)), air.FIRST)
	air.AssertExt(p,
		air.ExtSub(p, accNext, air.ExtAdd(p, acc, air.ExtMul(p, filterNext, air.ExtMul(p, rowNext, powersNext)))),
		air.TRANSITION)
	// The digest is the final accumulator value.
	air.AssertExt(p, air.ExtSub(p, acc, air.ReadExtension(p, e.digest)), air.LAST)
}

// fold combines the value cells of the current or following row with
// powers of gamma.
func (e *Evaluation) fold(p air.Parser, next bool) air.Extension {
	var (
		gamma  = air.ReadExtension(p, e.gamma)
		slice  = e.values
		result = air.ExtFromBase(p, p.Zero())
		power  = air.ExtOne(p)
	)
	//
	if next {
		slice = slice.Next()
	}
	//
	for _, cell := range p.Read(slice) {
		result = air.ExtAdd(p, result, air.ExtMul(p, power, air.ExtFromBase(p, cell)))
		power = air.ExtMul(p, power, gamma)
	}
	//
	return result
}

// WriteExtended implementation for the ExtendedWriter interface.
func (e *Evaluation) WriteExtended(w *trace.Writer) {
	var (
		numRows = w.Trace.NumRows()
		beta    = w.ReadCubic(e.beta, 0)
		gamma   = w.ReadCubic(e.gamma, 0)
		powers  = cubic.One()
		acc     cubic.Element
	)
	//
	for row := 0; row < numRows; row++ {
		selected := e.filterValue(w, row)
		//
		if selected {
			folded := FoldRow(w.ReadSlice(e.values, row), gamma)
			acc = acc.Add(folded.Mul(powers))
		}
		//
		w.WriteCubic(e.betaPowers, row, powers)
		w.WriteCubic(e.acc, row, acc)
		// Advance for the following row.
		if selected {
			powers = powers.Mul(beta)
		}
	}
	//
	w.WriteCubic(e.digest, 0, acc)
}

// filterValue evaluates the filter over a concrete row.
func (e *Evaluation) filterValue(w *trace.Writer, row int) bool {
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
	value := e.filter.Eval(p)[0].(goldilocks.Element)
	//
	return !value.IsZero()
}

// FoldRow combines one row of values with powers of gamma, mirroring
// the in-circuit fold.
func FoldRow(values []goldilocks.Element, gamma cubic.Element) cubic.Element {
	var (
		result cubic.Element
		power  = cubic.One()
	)
	//
	for _, v := range values {
		result = result.Add(power.ScalarMul(v))
		power = power.Mul(gamma)
	}
	//
	return result
}

// FoldDigest computes the digest a verifier expects for a given
// sequence of selected row values, e.g. taken from public inputs.
func FoldDigest(vectors [][]goldilocks.Element, beta, gamma cubic.Element) cubic.Element {
	var (
		result cubic.Element
		power  = cubic.One()
	)
	//
	for k, vector := range vectors {
		if k > 0 {
			power = power.Mul(beta)
		}
		//
		result = result.Add(FoldRow(vector, gamma).Mul(power))
	}
	//
	return result
}
