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
package cubic

import (
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Cubic_01(t *testing.T) {
	// u * u * u == u + 1
	u := NewElement(goldilocks.NewElement(0), goldilocks.NewElement(1), goldilocks.NewElement(0))
	lhs := u.Mul(u).Mul(u)
	rhs := u.Add(One())
	assert.True(t, lhs.Equal(rhs))
}

func Test_Cubic_02(t *testing.T) {
	// Multiplication distributes over addition.
	x, y, z := random(t), random(t), random(t)
	lhs := x.Mul(y.Add(z))
	rhs := x.Mul(y).Add(x.Mul(z))
	assert.True(t, lhs.Equal(rhs))
}

func Test_Cubic_03(t *testing.T) {
	// Multiplication is commutative and associative.
	x, y, z := random(t), random(t), random(t)
	assert.True(t, x.Mul(y).Equal(y.Mul(x)))
	assert.True(t, x.Mul(y).Mul(z).Equal(x.Mul(y.Mul(z))))
}

func Test_Cubic_04(t *testing.T) {
	// x * 1/x == 1 for random non-zero x.
	for i := 0; i < 10; i++ {
		x := random(t)
		if x.IsZero() {
			continue
		}
		//
		assert.True(t, x.Mul(x.Inverse()).Equal(One()))
	}
}

func Test_Cubic_05(t *testing.T) {
	// Inverting zero must panic.
	defer func() {
		require.NotNil(t, recover())
	}()
	//
	var zero Element
	zero.Inverse()
}

func Test_Cubic_06(t *testing.T) {
	// Batch inversion agrees with individual inversion, skipping
	// zeroes.
	elements := make([]Element, 32)
	//
	for i := range elements {
		if i%5 != 0 {
			elements[i] = random(t)
		}
	}
	//
	inverses := BatchInvert(elements)
	//
	for i, x := range elements {
		if x.IsZero() {
			assert.True(t, inverses[i].IsZero())
		} else {
			assert.True(t, inverses[i].Equal(x.Inverse()))
		}
	}
}

func Test_Cubic_07(t *testing.T) {
	// Embedding of the base field is a ring homomorphism.
	a := goldilocks.NewElement(1234)
	b := goldilocks.NewElement(5678)
	var ab goldilocks.Element
	ab.Mul(&a, &b)
	assert.True(t, FromBase(a).Mul(FromBase(b)).Equal(FromBase(ab)))
}

func random(t *testing.T) Element {
	var x Element
	_, err := x.SetRandom()
	require.NoError(t, err)
	//
	return x
}
