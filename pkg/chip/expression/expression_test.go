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
package expression

import (
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Expression_01(t *testing.T) {
	// (a + b) - c evaluated cell-wise over three registers.
	p := &air.Window{
		Local:   elements(1, 2, 10, 20, 11, 22),
		NumRows: 2,
	}
	var (
		a = Input(register.NewSlice(register.LOCAL, 0, 2))
		b = Input(register.NewSlice(register.LOCAL, 2, 2))
		c = Input(register.NewSlice(register.LOCAL, 4, 2))
	)
	//
	values := Sub(Add(a, b), c).Eval(p)
	require.Equal(t, 2, len(values))
	//
	for _, v := range values {
		ve := v.(goldilocks.Element)
		assert.True(t, ve.IsZero())
	}
}

func Test_Expression_02(t *testing.T) {
	// Scalar broadcast multiplication.
	p := &air.Window{
		Local:   elements(3, 1, 2),
		NumRows: 2,
	}
	var (
		scalar = Input(register.NewSlice(register.LOCAL, 0, 1))
		vector = Input(register.NewSlice(register.LOCAL, 1, 2))
	)
	//
	values := Mul(scalar, vector).Eval(p)
	require.Equal(t, 2, len(values))
	assert.Equal(t, goldilocks.NewElement(3), values[0].(goldilocks.Element))
	assert.Equal(t, goldilocks.NewElement(6), values[1].(goldilocks.Element))
}

func Test_Expression_03(t *testing.T) {
	// Size mismatch must panic.
	defer func() {
		require.NotNil(t, recover())
	}()
	//
	Add(ConstantUint64([]uint64{1, 2}), ConstantUint64([]uint64{1, 2, 3}))
}

func Test_Expression_04(t *testing.T) {
	// Vector-vector multiplication is rejected.
	defer func() {
		require.NotNil(t, recover())
	}()
	//
	Mul(ConstantUint64([]uint64{1, 2}), ConstantUint64([]uint64{1, 2}))
}

func elements(values ...uint64) []goldilocks.Element {
	result := make([]goldilocks.Element, len(values))
	//
	for i, v := range values {
		result[i] = goldilocks.NewElement(v)
	}
	//
	return result
}
