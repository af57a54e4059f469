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

// Add computes result = a + b in the emulated field.
type Add struct {
	witness
	a, b register.Field
}

// NewAdd builds and registers an emulated addition.
func NewAdd(b *chip.Builder, params *Parameters, x, y register.Field) *Add {
	instr := &Add{newWitness(b, params), x, y}
	b.Register(instr)
	//
	return instr
}

// Result returns the register holding a + b.
func (a *Add) Result() register.Field {
	return a.result
}

// Eval implementation for the Instruction interface.
func (a *Add) Eval(p air.Parser) {
	lhs := polynomial.Add(p, p.Read(a.a.Slice()), p.Read(a.b.Slice()))
	a.assertVanishing(p, lhs)
}

// WriteRow implementation for the RowWriter interface.
func (a *Add) WriteRow(w *trace.Writer, row int) {
	var (
		x = w.ReadField(a.a, row)
		y = w.ReadField(a.b, row)
		//
		sum    = new(big.Int).Add(x, y)
		result = new(big.Int).Mod(sum, a.params.Modulus)
		carry  = new(big.Int).Div(new(big.Int).Sub(sum, result), a.params.Modulus)
	)
	//
	w.WriteField(a.result, row, result)
	w.WriteField(a.carry, row, carry)
	// vanishing = a + b - result - carry*m over the limbs.
	vanishing := polynomial.SubInt64(
		polynomial.AddInt64(readLimbs(w, a.a, row), readLimbs(w, a.b, row)),
		polynomial.AddInt64(
			readLimbs(w, a.result, row),
			polynomial.MulInt64(readLimbs(w, a.carry, row), a.params.ModulusLimbs())))
	//
	a.writeVanishing(w, row, vanishing)
}
