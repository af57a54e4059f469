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

// Mul computes result = a * b in the emulated field.
type Mul struct {
	witness
	a, b register.Field
}

// NewMul builds and registers an emulated multiplication.
func NewMul(b *chip.Builder, params *Parameters, x, y register.Field) *Mul {
	instr := &Mul{newWitness(b, params), x, y}
	b.Register(instr)
	//
	return instr
}

// Result returns the register holding a * b.
func (m *Mul) Result() register.Field {
	return m.result
}

// Eval implementation for the Instruction interface.
func (m *Mul) Eval(p air.Parser) {
	lhs := polynomial.Mul(p, p.Read(m.a.Slice()), p.Read(m.b.Slice()))
	m.assertVanishing(p, lhs)
}

// WriteRow implementation for the RowWriter interface.
func (m *Mul) WriteRow(w *trace.Writer, row int) {
	var (
		x = w.ReadField(m.a, row)
		y = w.ReadField(m.b, row)
		//
		product = new(big.Int).Mul(x, y)
		result  = new(big.Int).Mod(product, m.params.Modulus)
		carry   = new(big.Int).Div(new(big.Int).Sub(product, result), m.params.Modulus)
	)
	//
	w.WriteField(m.result, row, result)
	w.WriteField(m.carry, row, carry)
	//
	vanishing := polynomial.SubInt64(
		polynomial.MulInt64(readLimbs(w, m.a, row), readLimbs(w, m.b, row)),
		polynomial.AddInt64(
			readLimbs(w, m.result, row),
			polynomial.MulInt64(readLimbs(w, m.carry, row), m.params.ModulusLimbs())))
	//
	m.writeVanishing(w, row, vanishing)
}
