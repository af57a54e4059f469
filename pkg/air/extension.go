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
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/math/cubic"
)

// Extension is a cubic extension element inside a parser, held as
// three coefficient variables.  All extension arithmetic reduces to
// base parser operations, so every backend supports it for free.
type Extension [3]Variable

// ReadExtension reads a cubic register into an extension value.
func ReadExtension(p Parser, r register.Cubic) Extension {
	cells := p.Read(r.Slice())
	return Extension{cells[0], cells[1], cells[2]}
}

// ExtConstant lifts a cubic extension constant into the parser.
func ExtConstant(p Parser, value cubic.Element) Extension {
	return Extension{p.Constant(value[0]), p.Constant(value[1]), p.Constant(value[2])}
}

// ExtFromBase embeds a base variable into the extension.
func ExtFromBase(p Parser, x Variable) Extension {
	return Extension{x, p.Zero(), p.Zero()}
}

// ExtOne returns the multiplicative identity.
func ExtOne(p Parser) Extension {
	return Extension{p.One(), p.Zero(), p.Zero()}
}

// ExtAdd computes x + y coefficient-wise.
func ExtAdd(p Parser, x, y Extension) Extension {
	return Extension{p.Add(x[0], y[0]), p.Add(x[1], y[1]), p.Add(x[2], y[2])}
}

// ExtSub computes x - y coefficient-wise.
func ExtSub(p Parser, x, y Extension) Extension {
	return Extension{p.Sub(x[0], y[0]), p.Sub(x[1], y[1]), p.Sub(x[2], y[2])}
}

// ExtNeg computes -x coefficient-wise.
func ExtNeg(p Parser, x Extension) Extension {
	return Extension{p.Neg(x[0]), p.Neg(x[1]), p.Neg(x[2])}
}

// ExtMul computes x * y, reducing modulo u^3 = u + 1.
func ExtMul(p Parser, x, y Extension) Extension {
	// c3 = x1*y2 + x2*y1
	c3 := p.Add(p.Mul(x[1], y[2]), p.Mul(x[2], y[1]))
	// c4 = x2*y2
	c4 := p.Mul(x[2], y[2])
	// z0 = x0*y0 + c3
	z0 := p.Add(p.Mul(x[0], y[0]), c3)
	// z1 = x0*y1 + x1*y0 + c3 + c4
	z1 := p.Add(p.Mul(x[0], y[1]), p.Mul(x[1], y[0]))
	z1 = p.Add(z1, p.Add(c3, c4))
	// z2 = x0*y2 + x1*y1 + x2*y0 + c4
	z2 := p.Add(p.Mul(x[0], y[2]), p.Mul(x[1], y[1]))
	z2 = p.Add(z2, p.Add(p.Mul(x[2], y[0]), c4))
	//
	return Extension{z0, z1, z2}
}

// ExtScalarMul multiplies every coefficient of x by a base variable.
func ExtScalarMul(p Parser, x Extension, c Variable) Extension {
	return Extension{p.Mul(x[0], c), p.Mul(x[1], c), p.Mul(x[2], c)}
}

// AssertExt requires every coefficient of x to vanish under the given
// scope.
func AssertExt(p Parser, x Extension, scope Scope) {
	for _, coeff := range x {
		AssertScoped(p, coeff, scope)
	}
}
