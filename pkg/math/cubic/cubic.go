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
	"fmt"

	"github.com/consensys/gnark-crypto/field/goldilocks"
)

// Element represents an element of the cubic extension F[u] / (u^3 - u
// - 1) over the Goldilocks field, stored as coefficients (c0, c1, c2)
// of 1, u and u^2 respectively.  The extension is used wherever a
// single base field does not offer enough soundness, such as for
// randomised lookup accumulators.
type Element [3]goldilocks.Element

// NewElement constructs an extension element from its three
// coefficients.
func NewElement(c0, c1, c2 goldilocks.Element) Element {
	return Element{c0, c1, c2}
}

// FromBase embeds a base field element into the extension.
func FromBase(x goldilocks.Element) Element {
	var zero goldilocks.Element
	return Element{x, zero, zero}
}

// FromUint64 embeds a small constant into the extension.
func FromUint64(x uint64) Element {
	return FromBase(goldilocks.NewElement(x))
}

// One returns the multiplicative identity.
func One() Element {
	return FromUint64(1)
}

// Add x + y
func (x Element) Add(y Element) Element {
	var z Element
	//
	z[0].Add(&x[0], &y[0])
	z[1].Add(&x[1], &y[1])
	z[2].Add(&x[2], &y[2])
	//
	return z
}

// Sub x - y
func (x Element) Sub(y Element) Element {
	var z Element
	//
	z[0].Sub(&x[0], &y[0])
	z[1].Sub(&x[1], &y[1])
	z[2].Sub(&x[2], &y[2])
	//
	return z
}

// Neg -x
func (x Element) Neg() Element {
	var z Element
	//
	z[0].Neg(&x[0])
	z[1].Neg(&x[1])
	z[2].Neg(&x[2])
	//
	return z
}

// ScalarMul multiplies every coefficient by a base field element.
func (x Element) ScalarMul(c goldilocks.Element) Element {
	var z Element
	//
	z[0].Mul(&x[0], &c)
	z[1].Mul(&x[1], &c)
	z[2].Mul(&x[2], &c)
	//
	return z
}

// Mul x * y, reducing modulo u^3 = u + 1.
func (x Element) Mul(y Element) Element {
	var z Element
	var t, c3, c4 goldilocks.Element
	// c3 = x1*y2 + x2*y1 (coefficient of u^3)
	c3.Mul(&x[1], &y[2])
	t.Mul(&x[2], &y[1])
	c3.Add(&c3, &t)
	// c4 = x2*y2 (coefficient of u^4)
	c4.Mul(&x[2], &y[2])
	// z0 = x0*y0 + c3
	z[0].Mul(&x[0], &y[0])
	z[0].Add(&z[0], &c3)
	// z1 = x0*y1 + x1*y0 + c3 + c4
	z[1].Mul(&x[0], &y[1])
	t.Mul(&x[1], &y[0])
	z[1].Add(&z[1], &t)
	z[1].Add(&z[1], &c3)
	z[1].Add(&z[1], &c4)
	// z2 = x0*y2 + x1*y1 + x2*y0 + c4
	z[2].Mul(&x[0], &y[2])
	t.Mul(&x[1], &y[1])
	z[2].Add(&z[2], &t)
	t.Mul(&x[2], &y[0])
	z[2].Add(&z[2], &t)
	z[2].Add(&z[2], &c4)
	//
	return z
}

// Square x * x
func (x Element) Square() Element {
	return x.Mul(x)
}

// Inverse computes 1/x via the adjugate of the multiplication matrix
// of x in the basis {1, u, u^2}.  Panics if x is zero.
func (x Element) Inverse() Element {
	var (
		a02, a12, c00, c01, c02, det, t goldilocks.Element
	)
	// a02 = a0 + a2, a12 = a1 + a2
	a02.Add(&x[0], &x[2])
	a12.Add(&x[1], &x[2])
	// c00 = (a0+a2)^2 - a1*(a1+a2)
	c00.Square(&a02)
	t.Mul(&x[1], &a12)
	c00.Sub(&c00, &t)
	// c01 = a2*(a1+a2) - a1*(a0+a2)
	c01.Mul(&x[2], &a12)
	t.Mul(&x[1], &a02)
	c01.Sub(&c01, &t)
	// c02 = a1^2 - a2*(a0+a2)
	c02.Square(&x[1])
	t.Mul(&x[2], &a02)
	c02.Sub(&c02, &t)
	// det = a0*c00 + a2*c01 + a1*c02
	det.Mul(&x[0], &c00)
	t.Mul(&x[2], &c01)
	det.Add(&det, &t)
	t.Mul(&x[1], &c02)
	det.Add(&det, &t)
	//
	if det.IsZero() {
		panic("inverse of zero extension element")
	}
	//
	det.Inverse(&det)
	//
	var z Element
	z[0].Mul(&c00, &det)
	z[1].Mul(&c01, &det)
	z[2].Mul(&c02, &det)
	//
	return z
}

// IsZero checks whether all coefficients are zero.
func (x Element) IsZero() bool {
	return x[0].IsZero() && x[1].IsZero() && x[2].IsZero()
}

// Equal x == y
func (x Element) Equal(y Element) bool {
	return x[0].Equal(&y[0]) && x[1].Equal(&y[1]) && x[2].Equal(&y[2])
}

// SetRandom samples a uniformly random extension element, as needed
// when simulating verifier challenges.
func (x *Element) SetRandom() (*Element, error) {
	for i := 0; i < 3; i++ {
		if _, err := x[i].SetRandom(); err != nil {
			return nil, err
		}
	}
	//
	return x, nil
}

// String returns a human-readable rendering of x.
func (x Element) String() string {
	return fmt.Sprintf("%s + %s*u + %s*u^2", x[0].String(), x[1].String(), x[2].String())
}

// BatchInvert inverts a slice of extension elements using Montgomery's
// trick, at the cost of a single field inversion.  Zero elements are
// left untouched, matching the behaviour of the base field routine.
func BatchInvert(a []Element) []Element {
	res := make([]Element, len(a))
	if len(a) == 0 {
		return res
	}
	//
	zeroes := make([]bool, len(a))
	accumulator := One()
	//
	for i := 0; i < len(a); i++ {
		if a[i].IsZero() {
			zeroes[i] = true
			continue
		}
		//
		res[i] = accumulator
		accumulator = accumulator.Mul(a[i])
	}
	//
	accumulator = accumulator.Inverse()
	//
	for i := len(a) - 1; i >= 0; i-- {
		if zeroes[i] {
			continue
		}
		//
		res[i] = res[i].Mul(accumulator)
		accumulator = accumulator.Mul(a[i])
	}
	//
	return res
}
