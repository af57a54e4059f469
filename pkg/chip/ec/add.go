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
package ec

import (
	"github.com/consensys/go-curta/pkg/chip"
	"github.com/consensys/go-curta/pkg/chip/field"
)

// AddGadget computes the twisted Edwards sum of two point registers:
//
//	x3 = (x1*y2 + x2*y1) / (1 + d*x1*x2*y1*y2)
//	y3 = (y1*y2 + x1*x2) / (1 - d*x1*x2*y1*y2)
//
// decomposed into fused field instructions.  Doubling is the same
// gadget applied to a point and itself; the addition law is complete
// on the curves supported here.
type AddGadget struct {
	// In1 and In2 are the summand registers.
	In1, In2 PointRegister
	// Out receives the sum.
	Out PointRegister
}

// NewAdd builds and registers a point addition.
func NewAdd(b *chip.Builder, curve *Curve, p, q PointRegister) *AddGadget {
	var (
		params = curve.Params
		// Numerators of the addition law.
		xNum = field.NewQuad(b, params, p.X, q.Y, q.X, p.Y)
		yNum = field.NewQuad(b, params, p.Y, q.Y, p.X, q.X)
		// dxy = d * (x1*y1) * (x2*y2)
		xy1     = field.NewMul(b, params, p.X, p.Y)
		xy2     = field.NewMul(b, params, q.X, q.Y)
		product = field.NewMul(b, params, xy1.Result(), xy2.Result())
		dxy     = field.NewMulConst(b, params, product.Result(), curve.D)
		// Divisions by 1 +/- dxy.
		x = field.NewDen(b, params, xNum.Result(), dxy.Result(), true)
		y = field.NewDen(b, params, yNum.Result(), dxy.Result(), false)
	)
	//
	return &AddGadget{
		In1: p,
		In2: q,
		Out: PointRegister{x.Result(), y.Result()},
	}
}
