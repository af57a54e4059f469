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
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"

	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip"
	"github.com/consensys/go-curta/pkg/chip/polynomial"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/chip/trace"
	"github.com/consensys/go-curta/pkg/util"
)

// witness bundles the registers every field instruction commits to:
// the result, the modular carry, and the shifted quotient limbs
// certifying the vanishing identity.
type witness struct {
	params *Parameters
	result register.Field
	carry  register.Field
	// low and high hold the 16-bit halves of the shifted quotient
	// coefficients.
	low  register.Array
	high register.Array
}

func newWitness(b *chip.Builder, params *Parameters) witness {
	return witness{
		params: params,
		result: b.FieldRegister(params.NbLimbs),
		carry:  b.FieldRegister(params.NbLimbs),
		low:    b.U16Array(params.NbWitnessLimbs),
		high:   b.U16Array(params.NbWitnessLimbs),
	}
}

// quotient reconstructs the committed quotient polynomial from the
// witness limbs.
func (wt *witness) quotient(p air.Parser) []air.Variable {
	var (
		low  = p.Read(wt.low.Slice())
		high = p.Read(wt.high.Slice())
	)
	//
	return polynomial.WitnessQuotient(p, low, high, util.WitnessOffset)
}

// assertVanishing asserts lhs(x) - result(x) - carry(x)*modulus(x) ==
// (x - 2^16) * q(x), with q reconstructed from the witness limbs.
func (wt *witness) assertVanishing(p air.Parser, lhs []air.Variable) {
	var (
		result   = p.Read(wt.result.Slice())
		carry    = p.Read(wt.carry.Slice())
		modulus  = constantPoly(p, wt.params.ModulusLimbs())
		quotient = wt.quotient(p)
	)
	//
	vanishing := polynomial.Sub(p, lhs, polynomial.Add(p, result, polynomial.Mul(p, carry, modulus)))
	polynomial.AssertRootQuotient(p, vanishing, quotient, air.ALL)
}

// writeVanishing divides the integer vanishing polynomial by
// (x - 2^16) and commits the shifted quotient limbs.
func (wt *witness) writeVanishing(w *trace.Writer, row int, vanishing []int64) {
	quotient := polynomial.RootQuotient(vanishing)
	// Pad to the witness width and shift into the positives.
	shifted := make([]int64, wt.params.NbWitnessLimbs)
	//
	for i := range shifted {
		shifted[i] = util.WitnessOffset
		//
		if i < len(quotient) {
			shifted[i] += quotient[i]
		}
		// Every shifted coefficient must land in the unsigned
		// 32-bit window covered by the two u16 witness limbs.
		if shifted[i] < 0 || shifted[i] >= 1<<32 {
			panic(fmt.Sprintf("quotient coefficient %d outside the witness offset window", quotient[i]))
		}
	}
	//
	low, high := util.SplitU32Limbs(shifted)
	w.WriteSlice(wt.low.Slice(), row, low)
	w.WriteSlice(wt.high.Slice(), row, high)
}

// readLimbs reads a field register as signed limb coefficients.
func readLimbs(w *trace.Writer, r register.Field, row int) []int64 {
	cells := w.ReadSlice(r.Slice(), row)
	limbs := make([]int64, len(cells))
	//
	for i, c := range cells {
		limbs[i] = int64(c.Uint64())
	}
	//
	return limbs
}

// constantPoly lifts signed integer coefficients into parser
// variables.
func constantPoly(p air.Parser, coeffs []int64) []air.Variable {
	result := make([]air.Variable, len(coeffs))
	//
	for i, c := range coeffs {
		var e goldilocks.Element
		e.SetInt64(c)
		result[i] = p.Constant(e)
	}
	//
	return result
}
