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
package field

import (
	"math/big"

	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip"
	"github.com/consensys/go-curta/pkg/chip/polynomial"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/chip/trace"
)

// Quad computes result = a*b + c*d in the emulated field, the shape
// of the numerators of the twisted Edwards addition law.  Fusing the
// two products into one instruction halves the carry and witness
// columns compared with two multiplications and an addition.
type Quad struct {
	witness
	a, b, c, d register.Field
}

// NewQuad builds and registers an emulated a*b + c*d.
func NewQuad(builder *chip.Builder, params *Parameters, a, b, c, d register.Field) *Quad {
	instr := &Quad{newWitness(builder, params), a, b, c, d}
	builder.Register(instr)
	//
	return instr
}

// Result returns the register holding a*b + c*d.
func (q *Quad) Result() register.Field {
	return q.result
}

// Eval implementation for the Instruction interface.
func (q *Quad) Eval(p air.Parser) {
	lhs := polynomial.Add(p,
		polynomial.Mul(p, p.Read(q.a.Slice()), p.Read(q.b.Slice())),
		polynomial.Mul(p, p.Read(q.c.Slice()), p.Read(q.d.Slice())))
	//
	q.assertVanishing(p, lhs)
}

// WriteRow implementation for the RowWriter interface.
func (q *Quad) WriteRow(w *trace.Writer, row int) {
	var (
		a = w.ReadField(q.a, row)
		b = w.ReadField(q.b, row)
		c = w.ReadField(q.c, row)
		d = w.ReadField(q.d, row)
		//
		value  = new(big.Int).Add(new(big.Int).Mul(a, b), new(big.Int).Mul(c, d))
		result = new(big.Int).Mod(value, q.params.Modulus)
		carry  = new(big.Int).Div(new(big.Int).Sub(value, result), q.params.Modulus)
	)
	//
	w.WriteField(q.result, row, result)
	w.WriteField(q.carry, row, carry)
	//
	vanishing := polynomial.SubInt64(
		polynomial.AddInt64(
			polynomial.MulInt64(readLimbs(w, q.a, row), readLimbs(w, q.b, row)),
			polynomial.MulInt64(readLimbs(w, q.c, row), readLimbs(w, q.d, row))),
		polynomial.AddInt64(
			readLimbs(w, q.result, row),
			polynomial.MulInt64(readLimbs(w, q.carry, row), q.params.ModulusLimbs())))
	//
	q.writeVanishing(w, row, vanishing)
}
