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
package polynomial

import (
	"fmt"
	"math/big"

	"github.com/consensys/go-curta/pkg/util"
)

// Exact integer polynomial arithmetic over int64 coefficients.  Limb
// coefficients fit in 16 bits and the polynomials involved have at
// most 31 terms, so no intermediate value here can overflow.

// AddInt64 computes the coefficient-wise sum, padding with zeroes.
func AddInt64(a, b []int64) []int64 {
	result := make([]int64, max(len(a), len(b)))
	//
	for i := range result {
		if i < len(a) {
			result[i] += a[i]
		}
		//
		if i < len(b) {
			result[i] += b[i]
		}
	}
	//
	return result
}

// SubInt64 computes the coefficient-wise difference, padding with
// zeroes.
func SubInt64(a, b []int64) []int64 {
	result := make([]int64, max(len(a), len(b)))
	//
	for i := range result {
		if i < len(a) {
			result[i] += a[i]
		}
		//
		if i < len(b) {
			result[i] -= b[i]
		}
	}
	//
	return result
}

// MulInt64 computes the product by convolution.
func MulInt64(a, b []int64) []int64 {
	result := make([]int64, len(a)+len(b)-1)
	//
	for i := range a {
		for j := range b {
			result[i+j] += a[i] * b[j]
		}
	}
	//
	return result
}

// ScalarMulInt64 multiplies every coefficient by a scalar.
func ScalarMulInt64(a []int64, c int64) []int64 {
	result := make([]int64, len(a))
	//
	for i := range a {
		result[i] = a[i] * c
	}
	//
	return result
}

// LimbsInt64 widens 16-bit limbs into int64 coefficients.
func LimbsInt64(limbs []uint16) []int64 {
	result := make([]int64, len(limbs))
	//
	for i, l := range limbs {
		result[i] = int64(l)
	}
	//
	return result
}

// EvalInt64 evaluates a polynomial at an arbitrary point using exact
// big integer arithmetic.
func EvalInt64(a []int64, x *big.Int) *big.Int {
	result := new(big.Int)
	//
	for i := len(a) - 1; i >= 0; i-- {
		result.Mul(result, x)
		result.Add(result, big.NewInt(a[i]))
	}
	//
	return result
}

// RootQuotient divides a polynomial v, known to vanish at 2^16, by
// the linear factor (x - 2^16).  The quotient is computed top down by
// synthetic division, and a non-zero remainder causes a panic since it
// means the witness values fed in were inconsistent.
func RootQuotient(v []int64) []int64 {
	var (
		d = len(v) - 1
		q = make([]int64, d)
	)
	//
	q[d-1] = v[d]
	//
	for i := d - 1; i > 0; i-- {
		q[i-1] = v[i] + util.LimbSize*q[i]
	}
	// Remainder check: v_0 + 2^16 * q_0 == 0.
	if v[0]+util.LimbSize*q[0] != 0 {
		panic(fmt.Sprintf("vanishing polynomial has non-zero remainder %d at 2^16", v[0]+util.LimbSize*q[0]))
	}
	//
	return q
}
