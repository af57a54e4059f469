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
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Limbs_01(t *testing.T) {
	// Zero decomposes into all-zero limbs.
	limbs := BigToU16Limbs(big.NewInt(0), 4)
	assert.Equal(t, []uint16{0, 0, 0, 0}, limbs)
	assert.Equal(t, int64(0), U16LimbsToBig(limbs).Int64())
}

func Test_Limbs_02(t *testing.T) {
	// Little-endian ordering of limbs.
	x := new(big.Int).SetUint64(0x0003_0002_0001)
	limbs := BigToU16Limbs(x, 4)
	assert.Equal(t, []uint16{1, 2, 3, 0}, limbs)
}

func Test_Limbs_03(t *testing.T) {
	// Random round trips at the width used for 256-bit field elements.
	rnd := rand.New(rand.NewPCG(0, 0))
	//
	for i := 0; i < 100; i++ {
		x := randomBig(rnd, 256)
		limbs := BigToU16Limbs(x, 16)
		require.Equal(t, 16, len(limbs))
		assert.Equal(t, 0, x.Cmp(U16LimbsToBig(limbs)))
	}
}

func Test_Limbs_04(t *testing.T) {
	// Decomposition of an overly large integer must panic.
	defer func() {
		require.NotNil(t, recover())
	}()
	//
	BigToU16Limbs(new(big.Int).SetUint64(1<<32), 2)
}

func Test_Limbs_05(t *testing.T) {
	// Negative integers cannot be decomposed.
	defer func() {
		require.NotNil(t, recover())
	}()
	//
	BigToU16Limbs(big.NewInt(-1), 4)
}

func Test_Limbs_06(t *testing.T) {
	// Round trip through field elements.
	rnd := rand.New(rand.NewPCG(1, 2))
	//
	for i := 0; i < 100; i++ {
		x := randomBig(rnd, 255)
		elements := BigToElements(x, 16)
		assert.Equal(t, 0, x.Cmp(ElementsToBig(elements)))
	}
}

func Test_Limbs_07(t *testing.T) {
	// Splitting 32-bit values into their low / high 16-bit halves.
	low, high := SplitU32Limbs([]int64{0, 1, 0x1_0000, 0xdead_beef})
	assert.Equal(t, uint64(0), low[0].Uint64())
	assert.Equal(t, uint64(0), high[0].Uint64())
	assert.Equal(t, uint64(1), low[1].Uint64())
	assert.Equal(t, uint64(0), high[1].Uint64())
	assert.Equal(t, uint64(0), low[2].Uint64())
	assert.Equal(t, uint64(1), high[2].Uint64())
	assert.Equal(t, uint64(0xbeef), low[3].Uint64())
	assert.Equal(t, uint64(0xdead), high[3].Uint64())
}

func Test_Limbs_08(t *testing.T) {
	// Little-endian bit decomposition.
	bits := BigToBitsLE(big.NewInt(0b1011), 8)
	assert.Equal(t, []bool{true, true, false, true, false, false, false, false}, bits)
}

func Test_Parallel_01(t *testing.T) {
	values := make([]int, 1000)
	//
	err := ParallelRange(len(values), 64, func(i int) error {
		values[i] = i * i
		return nil
	})
	//
	require.NoError(t, err)
	//
	for i, v := range values {
		require.Equal(t, i*i, v)
	}
}

func randomBig(rnd *rand.Rand, bits int) *big.Int {
	x := new(big.Int)
	//
	for x.BitLen() < bits-64 {
		word := new(big.Int).SetUint64(rnd.Uint64())
		x.Lsh(x, 64).Or(x, word)
	}
	//
	return x
}
