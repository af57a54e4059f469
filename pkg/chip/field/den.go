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

// Den computes result = a / (1 + b) when sign is set and
// result = a / (1 - b) otherwise, the denominators of the twisted
// Edwards addition law.  The identity is certified multiplicatively,
// as result * (1 +/- b) - a == carry * modulus; the two sign cases
// arrange the vanishing polynomial so that the carry is non-negative
// either way and its limbs can be range checked directly.
type Den struct {
	witness
	a, b register.Field
	sign bool
}

// NewDen builds and registers an emulated division by 1 +/- b.
func NewDen(builder *chip.Builder, params *Parameters, a, b register.Field, sign bool) *Den {
	instr := &Den{newWitness(builder, params), a, b, sign}
	builder.Register(instr)
	//
	return instr
}

// Result returns the register holding a / (1 +/- b).
func (d *Den) Result() register.Field {
	return d.result
}

// Eval implementation for the Instruction interface.
func (d *Den) Eval(p air.Parser) {
	var (
		a      = p.Read(d.a.Slice())
		b      = p.Read(d.b.Slice())
		result = p.Read(d.result.Slice())
		carry  = p.Read(d.carry.Slice())
		//
		modulus  = constantPoly(p, d.params.ModulusLimbs())
		quotient = d.quotient(p)
		//
		rb        = polynomial.Mul(p, result, b)
		carryTerm = polynomial.Mul(p, carry, modulus)
		vanishing []air.Variable
	)
	//
	if d.sign {
		// result*b + result - a - carry*m
		vanishing = polynomial.Sub(p, polynomial.Add(p, rb, result), polynomial.Add(p, a, carryTerm))
	} else {
		// a + result*b - result - carry*m
		vanishing = polynomial.Sub(p, polynomial.Add(p, a, rb), polynomial.Add(p, result, carryTerm))
	}
	//
	polynomial.AssertRootQuotient(p, vanishing, quotient, air.ALL)
}

// WriteRow implementation for the RowWriter interface.
func (d *Den) WriteRow(w *trace.Writer, row int) {
	var (
		a   = w.ReadField(d.a, row)
		b   = w.ReadField(d.b, row)
		one = big.NewInt(1)
		//
		denominator = new(big.Int)
		value       = new(big.Int)
	)
	//
	if d.sign {
		denominator.Add(one, b)
	} else {
		denominator.Sub(one, b)
	}
	//
	denominator.Mod(denominator, d.params.Modulus)
	//
	if denominator.ModInverse(denominator, d.params.Modulus) == nil {
		panic("edwards denominator is not invertible")
	}
	//
	result := new(big.Int).Mod(value.Mul(a, denominator), d.params.Modulus)
	//
	w.WriteField(d.result, row, result)
	// carry = (result*b +/- (result - a)) / modulus
	carry := new(big.Int).Mul(result, b)
	//
	if d.sign {
		carry.Add(carry, result)
		carry.Sub(carry, a)
	} else {
		carry.Add(carry, a)
		carry.Sub(carry, result)
	}
	//
	carry.Div(carry, d.params.Modulus)
	w.WriteField(d.carry, row, carry)
	//
	var (
		rb        = polynomial.MulInt64(readLimbs(w, d.result, row), readLimbs(w, d.b, row))
		carryTerm = polynomial.MulInt64(readLimbs(w, d.carry, row), d.params.ModulusLimbs())
		vanishing []int64
	)
	//
	if d.sign {
		vanishing = polynomial.SubInt64(
			polynomial.AddInt64(rb, readLimbs(w, d.result, row)),
			polynomial.AddInt64(readLimbs(w, d.a, row), carryTerm))
	} else {
		vanishing = polynomial.SubInt64(
			polynomial.AddInt64(readLimbs(w, d.a, row), rb),
			polynomial.AddInt64(readLimbs(w, d.result, row), carryTerm))
	}
	//
	d.writeVanishing(w, row, vanishing)
}
