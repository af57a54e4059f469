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

// Package polynomial implements arithmetic on limb polynomials, i.e.
// polynomials whose evaluation at 2^16 recovers an emulated field
// element.  Operations come in two flavours: parser-generic routines
// used inside constraints, and exact integer routines used during
// trace generation to compute carry and quotient witnesses.
package polynomial

import (
	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/util"
)

// Add computes the coefficient-wise sum of two limb polynomials,
// padding the shorter operand with zeroes.
func Add(p air.Parser, a, b []air.Variable) []air.Variable {
	result := make([]air.Variable, max(len(a), len(b)))
	//
	for i := range result {
		switch {
		case i >= len(a):
			result[i] = b[i]
		case i >= len(b):
			result[i] = a[i]
		default:
			result[i] = p.Add(a[i], b[i])
		}
	}
	//
	return result
}

// Sub computes the coefficient-wise difference of two limb
// polynomials, padding the shorter operand with zeroes.
func Sub(p air.Parser, a, b []air.Variable) []air.Variable {
	result := make([]air.Variable, max(len(a), len(b)))
	//
	for i := range result {
		switch {
		case i >= len(a):
			result[i] = p.Neg(b[i])
		case i >= len(b):
			result[i] = a[i]
		default:
			result[i] = p.Sub(a[i], b[i])
		}
	}
	//
	return result
}

// Mul computes the product of two limb polynomials by convolution.
func Mul(p air.Parser, a, b []air.Variable) []air.Variable {
	result := make([]air.Variable, len(a)+len(b)-1)
	//
	for i := range result {
		result[i] = p.Zero()
	}
	//
	for i := range a {
		for j := range b {
			result[i+j] = p.Add(result[i+j], p.Mul(a[i], b[j]))
		}
	}
	//
	return result
}

// ScalarMul multiplies every coefficient of a limb polynomial by a
// scalar.
func ScalarMul(p air.Parser, a []air.Variable, c air.Variable) []air.Variable {
	result := make([]air.Variable, len(a))
	//
	for i := range a {
		result[i] = p.Mul(a[i], c)
	}
	//
	return result
}

// WitnessQuotient reconstructs the quotient polynomial from its
// range-checked witness limbs.  Each coefficient is composed as low +
// 2^16 * high - offset, undoing the shift which made the limbs
// non-negative.
func WitnessQuotient(p air.Parser, low, high []air.Variable, offset uint64) []air.Variable {
	var (
		radix    = air.ConstantUint64(p, util.LimbSize)
		shift    = air.ConstantUint64(p, offset)
		quotient = make([]air.Variable, len(low))
	)
	//
	for i := range low {
		quotient[i] = p.Sub(p.Add(low[i], p.Mul(radix, high[i])), shift)
	}
	//
	return quotient
}

// AssertRootQuotient asserts that v(x) == (x - 2^16) * q(x) holds
// coefficient by coefficient, which certifies that 2^16 is a root of
// the vanishing polynomial v and hence that the underlying integer
// identity holds.
func AssertRootQuotient(p air.Parser, v, q []air.Variable, scope air.Scope) {
	var (
		radix = air.ConstantUint64(p, util.LimbSize)
		n     = max(len(v), len(q)+1)
	)
	// v_i == q_{i-1} - 2^16 * q_i, with coefficients of either side
	// beyond their length being zero.
	for i := 0; i < n; i++ {
		expected := p.Zero()
		//
		if i > 0 && i-1 < len(q) {
			expected = q[i-1]
		}
		//
		if i < len(q) {
			expected = p.Sub(expected, p.Mul(radix, q[i]))
		}
		//
		if i < len(v) {
			air.AssertScoped(p, p.Sub(v[i], expected), scope)
		} else {
			air.AssertScoped(p, expected, scope)
		}
	}
}
