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
package air

import (
	"testing"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/math/cubic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Window_01(t *testing.T) {
	// x + y - z over concrete cells.
	p := &Window{
		Local:   elements(1, 2, 3),
		NumRows: 4,
	}
	cells := p.Read(register.NewSlice(register.LOCAL, 0, 3))
	p.Assert(p.Sub(p.Add(cells[0], cells[1]), cells[2]))
	//
	assert.Equal(t, 0, len(p.Failures()))
}

func Test_Window_02(t *testing.T) {
	// A non-vanishing assertion is recorded as a failure.
	p := &Window{
		Local:   elements(1, 2, 4),
		NumRows: 4,
	}
	cells := p.Read(register.NewSlice(register.LOCAL, 0, 3))
	p.Assert(p.Sub(p.Add(cells[0], cells[1]), cells[2]))
	//
	require.Equal(t, 1, len(p.Failures()))
	assert.Equal(t, ALL, p.Failures()[0].Scope)
}

func Test_Window_03(t *testing.T) {
	// Scoped assertions are inactive outside their rows.
	p := &Window{
		Local:   elements(1),
		Row:     1,
		NumRows: 4,
	}
	p.AssertFirst(p.One())
	p.AssertLast(p.One())
	//
	assert.Equal(t, 0, len(p.Failures()))
	// Transition is active on row 1 of 4.
	p.AssertTransition(p.One())
	assert.Equal(t, 1, len(p.Failures()))
}

func Test_Window_04(t *testing.T) {
	// Transition assertions are inactive on the last row.
	p := &Window{
		Local:   elements(1),
		Row:     3,
		NumRows: 4,
	}
	p.AssertTransition(p.One())
	assert.Equal(t, 0, len(p.Failures()))
	p.AssertLast(p.One())
	assert.Equal(t, 1, len(p.Failures()))
}

func Test_Filtered_01(t *testing.T) {
	// A vanishing selector exempts the row from the constraint.
	inner := &Window{NumRows: 2}
	p := Filter(inner, inner.Zero())
	p.Assert(p.One())
	assert.Equal(t, 0, len(inner.Failures()))
	//
	p = Filter(inner, inner.One())
	p.Assert(p.One())
	assert.Equal(t, 1, len(inner.Failures()))
}

func Test_Symbolic_01(t *testing.T) {
	// Degree of local * next + challenge.
	p := &Symbolic{}
	local := p.Read(register.NewSlice(register.LOCAL, 0, 1))[0]
	next := p.Read(register.NewSlice(register.NEXT, 0, 1))[0]
	beta := p.Read(register.NewSlice(register.CHALLENGE, 0, 1))[0]
	p.Assert(p.Add(p.Mul(local, next), beta))
	//
	require.Equal(t, 1, len(p.Constraints()))
	assert.Equal(t, 2, p.MaxDegree())
}

func Test_Extension_01(t *testing.T) {
	// Parser-level extension multiplication agrees with the field
	// implementation.
	var x, y cubic.Element
	_, err := x.SetRandom()
	require.NoError(t, err)
	_, err = y.SetRandom()
	require.NoError(t, err)
	//
	p := &Window{NumRows: 2}
	z := ExtMul(p, ExtConstant(p, x), ExtConstant(p, y))
	expected := x.Mul(y)
	//
	for i := 0; i < 3; i++ {
		zi := z[i].(goldilocks.Element)
		assert.True(t, zi.Equal(&expected[i]))
	}
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
