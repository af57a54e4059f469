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
	"github.com/consensys/go-curta/pkg/util"
)

// MulConst computes result = c * a for a fixed field constant c.
type MulConst struct {
	witness
	a        register.Field
	constant *big.Int
	// constant as limb coefficients.
	limbs []int64
}

// NewMulConst builds and registers an emulated multiplication by a
// constant.
func NewMulConst(b *chip.Builder, params *Parameters, x register.Field, c *big.Int) *MulConst {
	reduced := new(big.Int).Mod(c, params.Modulus)
	//
	instr := &MulConst{
		witness:  newWitness(b, params),
		a:        x,
		constant: reduced,
		limbs:    polynomial.LimbsInt64(util.BigToU16Limbs(reduced, params.NbLimbs)),
	}
	b.Register(instr)
	//
	return instr
}

// Result returns the register holding c * a.
func (m *MulConst) Result() register.Field {
	return m.result
}

// Eval implementation for the Instruction interface.
func (m *MulConst) Eval(p air.Parser) {
	lhs := polynomial.Mul(p, constantPoly(p, m.limbs), p.Read(m.a.Slice()))
	m.assertVanishing(p, lhs)
}

// WriteRow implementation for the RowWriter interface.
func (m *MulConst) WriteRow(w *trace.Writer, row int) {
	var (
		x = w.ReadField(m.a, row)
		//
		product = new(big.Int).Mul(m.constant, x)
		result  = new(big.Int).Mod(product, m.params.Modulus)
		carry   = new(big.Int).Div(new(big.Int).Sub(product, result), m.params.Modulus)
	)
	//
	w.WriteField(m.result, row, result)
	w.WriteField(m.carry, row, carry)
	//
	vanishing := polynomial.SubInt64(
		polynomial.MulInt64(m.limbs, readLimbs(w, m.a, row)),
		polynomial.AddInt64(
			readLimbs(w, m.result, row),
			polynomial.MulInt64(readLimbs(w, m.carry, row), m.params.ModulusLimbs())))
	//
	m.writeVanishing(w, row, vanishing)
}
