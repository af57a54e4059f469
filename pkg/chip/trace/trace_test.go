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
package trace

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Trace_01(t *testing.T) {
	// Cells round trip through rows and columns.
	tr := New(4, 3)
	tr.Set(2, 1, goldilocks.NewElement(42))
	//
	assert.Equal(t, goldilocks.NewElement(42), tr.Get(2, 1))
	assert.Equal(t, goldilocks.NewElement(42), tr.Row(2)[1])
	assert.Equal(t, goldilocks.NewElement(42), tr.Column(1)[2])
}

func Test_Writer_01(t *testing.T) {
	// A next-row slice resolves to the following trace row.
	w := NewWriter(4, 2, 0, 0, 0)
	r := register.NewElement(register.NewSlice(register.LOCAL, 0, 1))
	//
	w.WriteElement(r.Next(), 1, goldilocks.NewElement(9))
	assert.Equal(t, goldilocks.NewElement(9), w.ReadElement(r, 2))
}

func Test_Writer_02(t *testing.T) {
	// Public and global segments are row independent.
	w := NewWriter(2, 1, 3, 2, 0)
	var (
		pub = register.NewElement(register.NewSlice(register.PUBLIC, 1, 1))
		glo = register.NewElement(register.NewSlice(register.GLOBAL, 0, 1))
	)
	//
	w.WriteElement(pub, 0, goldilocks.NewElement(5))
	w.WriteElement(glo, 1, goldilocks.NewElement(6))
	//
	assert.Equal(t, goldilocks.NewElement(5), w.ReadElement(pub, 1))
	assert.Equal(t, goldilocks.NewElement(6), w.ReadElement(glo, 0))
}

func Test_Writer_03(t *testing.T) {
	// Field registers round trip big integers through 16-bit limbs.
	w := NewWriter(1, 16, 0, 0, 0)
	r := register.NewField(register.NewSlice(register.LOCAL, 0, 16))
	//
	x, _ := new(big.Int).SetString("123456789012345678901234567890", 10)
	w.WriteField(r, 0, x)
	//
	require.Equal(t, 0, x.Cmp(w.ReadField(r, 0)))
}

func Test_Writer_04(t *testing.T) {
	// The window of the last row wraps its next row to row zero.
	w := NewWriter(3, 1, 0, 0, 0)
	r := register.NewElement(register.NewSlice(register.LOCAL, 0, 1))
	//
	w.WriteElement(r, 0, goldilocks.NewElement(7))
	w.WriteElement(r, 2, goldilocks.NewElement(8))
	//
	local, following := w.Window(2)
	assert.Equal(t, uint64(8), local[0].Uint64())
	assert.Equal(t, uint64(7), following[0].Uint64())
}
