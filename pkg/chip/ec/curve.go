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

// Package ec provides twisted Edwards curve gadgets over emulated
// base fields: in-circuit point addition and double-and-add scalar
// multiplication, together with the plain big-integer arithmetic used
// to generate their witnesses.
package ec

import (
	"math/big"

	"github.com/consensys/go-curta/pkg/chip/field"
)

// Curve describes a twisted Edwards curve -x^2 + y^2 = 1 + d*x^2*y^2
// over an emulated prime field.
type Curve struct {
	// Params of the base field.
	Params *field.Parameters
	// D is the Edwards coefficient.
	D *big.Int
	// Generator of the prime-order subgroup.
	Generator Point
	// ScalarBits is the bit width of scalars.
	ScalarBits int
}

// Point is an affine curve point.
type Point struct {
	X, Y *big.Int
}

// Ed25519 returns the ed25519 curve.
func Ed25519() *Curve {
	d, _ := new(big.Int).SetString(
		"37095705934669439343138083508754565189542113879843219016388785533085940283555", 10)
	gx, _ := new(big.Int).SetString(
		"15112221349535400772501151409588531511454012693041857206046113283949847762202", 10)
	gy, _ := new(big.Int).SetString(
		"46316835694926478169428394003475163141307993866256225615783033603165251855960", 10)
	//
	return &Curve{
		Params:     field.Ed25519BaseField(),
		D:          d,
		Generator:  Point{gx, gy},
		ScalarBits: 256,
	}
}

// Neutral returns the identity point (0, 1).
func (c *Curve) Neutral() Point {
	return Point{big.NewInt(0), big.NewInt(1)}
}

// Add computes the sum of two affine points using the complete
// twisted Edwards addition law.
func (c *Curve) Add(p, q Point) Point {
	var (
		m = c.Params.Modulus
		//
		xNum = new(big.Int).Add(new(big.Int).Mul(p.X, q.Y), new(big.Int).Mul(q.X, p.Y))
		yNum = new(big.Int).Add(new(big.Int).Mul(p.Y, q.Y), new(big.Int).Mul(p.X, q.X))
		// dxy = d * x1*y1*x2*y2
		dxy = new(big.Int).Mul(new(big.Int).Mul(p.X, p.Y), new(big.Int).Mul(q.X, q.Y))
	)
	//
	dxy.Mod(dxy.Mul(dxy, c.D), m)
	//
	var (
		xDen = new(big.Int).Add(big.NewInt(1), dxy)
		yDen = new(big.Int).Sub(big.NewInt(1), dxy)
	)
	//
	xDen.ModInverse(xDen.Mod(xDen, m), m)
	yDen.ModInverse(yDen.Mod(yDen, m), m)
	//
	return Point{
		X: xNum.Mod(xNum.Mul(xNum, xDen), m),
		Y: yNum.Mod(yNum.Mul(yNum, yDen), m),
	}
}

// Double computes 2p.
func (c *Curve) Double(p Point) Point {
	return c.Add(p, p)
}

// ScalarMul computes k * p by little-endian double-and-add.
func (c *Curve) ScalarMul(p Point, k *big.Int) Point {
	var (
		result = c.Neutral()
		temp   = Point{new(big.Int).Set(p.X), new(big.Int).Set(p.Y)}
	)
	//
	for i := 0; i < c.ScalarBits; i++ {
		if k.Bit(i) == 1 {
			result = c.Add(result, temp)
		}
		//
		temp = c.Double(temp)
	}
	//
	return result
}

// IsOnCurve checks -x^2 + y^2 == 1 + d*x^2*y^2.
func (c *Curve) IsOnCurve(p Point) bool {
	var (
		m  = c.Params.Modulus
		x2 = new(big.Int).Mod(new(big.Int).Mul(p.X, p.X), m)
		y2 = new(big.Int).Mod(new(big.Int).Mul(p.Y, p.Y), m)
		//
		lhs = new(big.Int).Sub(y2, x2)
		rhs = new(big.Int).Mul(new(big.Int).Mul(x2, y2), c.D)
	)
	//
	rhs.Add(rhs, big.NewInt(1))
	//
	return lhs.Mod(lhs, m).Cmp(rhs.Mod(rhs, m)) == 0
}
