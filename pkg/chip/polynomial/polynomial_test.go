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
	"math/big"
	"math/rand/v2"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Poly_01(t *testing.T) {
	// Convolution agrees with big integer multiplication at 2^16.
	var (
		rnd  = rand.New(rand.NewPCG(0, 0))
		a    = randomPoly(rnd, 16)
		b    = randomPoly(rnd, 16)
		x    = big.NewInt(util.LimbSize)
		prod = MulInt64(a, b)
	)
	//
	expected := new(big.Int).Mul(EvalInt64(a, x), EvalInt64(b, x))
	assert.Equal(t, 0, expected.Cmp(EvalInt64(prod, x)))
}

func Test_Poly_02(t *testing.T) {
	// Synthetic division recovers the quotient of (x - 2^16) * q.
	var (
		rnd = rand.New(rand.NewPCG(1, 1))
		q   = randomSignedPoly(rnd, 30)
		// v = (x - 2^16) * q
		v = SubInt64(append([]int64{0}, q...), ScalarMulInt64(q, util.LimbSize))
	)
	//
	assert.Equal(t, q, RootQuotient(v))
}

func Test_Poly_03(t *testing.T) {
	// Division by (x - 2^16) panics when 2^16 is not a root.
	defer func() {
		require.NotNil(t, recover())
	}()
	//
	RootQuotient([]int64{1, 2, 3})
}

func Test_Poly_04(t *testing.T) {
	// The root-quotient constraint accepts a consistent witness and
	// rejects a corrupted one.
	var (
		rnd = rand.New(rand.NewPCG(2, 2))
		q   = randomSignedPoly(rnd, 30)
		v   = SubInt64(append([]int64{0}, q...), ScalarMulInt64(q, util.LimbSize))
		//
		low, high = splitWitness(q)
	)
	//
	p := &air.Window{NumRows: 2}
	quotient := WitnessQuotient(p, elementVars(p, low), elementVars(p, high), util.WitnessOffset)
	AssertRootQuotient(p, int64Vars(p, v), quotient, air.ALL)
	assert.Equal(t, 0, len(p.Failures()))
	// Corrupt one witness limb.
	low[3].Add(&low[3], &low[3])
	//
	p = &air.Window{NumRows: 2}
	quotient = WitnessQuotient(p, elementVars(p, low), elementVars(p, high), util.WitnessOffset)
	AssertRootQuotient(p, int64Vars(p, v), quotient, air.ALL)
	assert.NotEqual(t, 0, len(p.Failures()))
}

func splitWitness(q []int64) ([]goldilocks.Element, []goldilocks.Element) {
	shifted := make([]int64, len(q))
	//
	for i, c := range q {
		shifted[i] = c + util.WitnessOffset
	}
	//
	return util.SplitU32Limbs(shifted)
}

func elementVars(p air.Parser, values []goldilocks.Element) []air.Variable {
	result := make([]air.Variable, len(values))
	//
	for i, v := range values {
		result[i] = p.Constant(v)
	}
	//
	return result
}

func int64Vars(p air.Parser, values []int64) []air.Variable {
	result := make([]air.Variable, len(values))
	//
	for i, v := range values {
		var e goldilocks.Element
		e.SetInt64(v)
		result[i] = p.Constant(e)
	}
	//
	return result
}

func randomPoly(rnd *rand.Rand, n int) []int64 {
	result := make([]int64, n)
	//
	for i := range result {
		result[i] = int64(rnd.Uint64() % util.LimbSize)
	}
	//
	return result
}

func randomSignedPoly(rnd *rand.Rand, n int) []int64 {
	result := make([]int64, n)
	//
	for i := range result {
		result[i] = int64(rnd.Uint64()%(1<<18)) - (1 << 17)
	}
	//
	return result
}
