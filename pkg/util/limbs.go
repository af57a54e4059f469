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
package util

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// LimbBits is the width of a single limb in the base-2^16 decomposition
// used throughout the emulated arithmetic layer.
const LimbBits = 16

// LimbSize is the numerical radix of a single limb, i.e. 2^16.
const LimbSize = 1 << LimbBits

// WitnessOffset is added to quotient coefficients before they are
// committed, making them non-negative so that they can be split into
// range-checked 16-bit limbs.
const WitnessOffset = 1 << 20

// BigToU16Limbs decomposes a non-negative integer into exactly n
// little-endian 16-bit limbs, zero-padded.  Panics if x does not fit in
// n limbs, since this always indicates a circuit configuration error.
func BigToU16Limbs(x *big.Int, n int) []uint16 {
	if x.Sign() < 0 {
		panic("cannot decompose negative integer into limbs")
	}

	if x.BitLen() > n*LimbBits {
		panic(fmt.Sprintf("integer of %d bits does not fit in %d limbs", x.BitLen(), n))
	}
	//
	var (
		limbs = make([]uint16, n)
		tmp   = new(big.Int).Set(x)
		mask  = big.NewInt(LimbSize - 1)
		limb  = new(big.Int)
	)
	//
	for i := range limbs {
		limb.And(tmp, mask)
		limbs[i] = uint16(limb.Uint64())
		tmp.Rsh(tmp, LimbBits)
	}
	//
	return limbs
}

// U16LimbsToBig reconstructs the integer from its little-endian 16-bit
// limb decomposition.  This is the exact inverse of BigToU16Limbs.
func U16LimbsToBig(limbs []uint16) *big.Int {
	var (
		x   = new(big.Int)
		tmp = new(big.Int)
	)
	//
	for i, limb := range limbs {
		tmp.SetUint64(uint64(limb))
		tmp.Lsh(tmp, uint(i*LimbBits))
		x.Add(x, tmp)
	}
	//
	return x
}

// LimbsToElements lifts a limb vector into the native field.
func LimbsToElements(limbs []uint16) []goldilocks.Element {
	elements := make([]goldilocks.Element, len(limbs))
	for i, limb := range limbs {
		elements[i] = goldilocks.NewElement(uint64(limb))
	}
	//
	return elements
}

// BigToElements decomposes an integer into n little-endian 16-bit limbs
// lifted into the native field.
func BigToElements(x *big.Int, n int) []goldilocks.Element {
	return LimbsToElements(BigToU16Limbs(x, n))
}

// ElementsToBig reconstructs an integer from field elements holding
// little-endian 16-bit limbs.  Panics if any element exceeds 16 bits,
// since that indicates the trace cell was never a valid limb.
func ElementsToBig(elements []goldilocks.Element) *big.Int {
	limbs := make([]uint16, len(elements))
	//
	for i := range elements {
		v := elements[i].Uint64()
		if v >= LimbSize {
			panic(fmt.Sprintf("trace cell %d is not a 16-bit limb", v))
		}

		limbs[i] = uint16(v)
	}
	//
	return U16LimbsToBig(limbs)
}

// SplitU32Limbs splits each entry of a vector of (shifted) witness
// values into its low and high 16-bit halves, both lifted into the
// native field.  Entries must fit in 32 bits.
func SplitU32Limbs(values []int64) ([]goldilocks.Element, []goldilocks.Element) {
	var (
		low  = make([]goldilocks.Element, len(values))
		high = make([]goldilocks.Element, len(values))
	)
	//
	for i, v := range values {
		if v < 0 || v >= 1<<32 {
			panic(fmt.Sprintf("witness value %d does not fit in 32 bits", v))
		}

		low[i] = goldilocks.NewElement(uint64(v) & (LimbSize - 1))
		high[i] = goldilocks.NewElement(uint64(v) >> LimbBits)
	}
	//
	return low, high
}

// BigToBitsLE decomposes a non-negative integer into exactly n
// little-endian bits.  Panics if x does not fit.
func BigToBitsLE(x *big.Int, n int) []bool {
	if x.BitLen() > n {
		panic(fmt.Sprintf("integer of %d bits does not fit in %d bits", x.BitLen(), n))
	}
	//
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = x.Bit(i) == 1
	}
	//
	return bits
}
