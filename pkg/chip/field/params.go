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

// Package field implements arithmetic instructions over an emulated
// prime field whose elements are committed as vectors of 16-bit
// limbs.  Every instruction certifies an integer identity of the form
// lhs - result - carry * modulus == 0 by exhibiting the quotient of
// the corresponding limb polynomial by (x - 2^16).
package field

import (
	"fmt"
	"math/big"

	"github.com/consensys/go-curta/pkg/util"
)

// Parameters describes an emulated prime field at the limb level.
type Parameters struct {
	// Name of the field, for diagnostics.
	Name string
	// NbLimbs is the number of 16-bit limbs per element.
	NbLimbs int
	// NbWitnessLimbs is the number of limbs of a quotient witness,
	// covering polynomials of degree up to 2*NbLimbs - 2.
	NbWitnessLimbs int
	// Modulus of the field.
	Modulus *big.Int
	//
	modulusLimbs []int64
}

// NewParameters derives the limb layout of an emulated field from its
// modulus.
func NewParameters(name string, nbLimbs int, modulus *big.Int) *Parameters {
	if modulus.BitLen() > nbLimbs*util.LimbBits {
		panic(fmt.Sprintf("modulus of %d bits does not fit in %d limbs", modulus.BitLen(), nbLimbs))
	}
	//
	return &Parameters{
		Name:           name,
		NbLimbs:        nbLimbs,
		NbWitnessLimbs: 2*nbLimbs - 2,
		Modulus:        new(big.Int).Set(modulus),
	}
}

// Ed25519BaseField returns the parameters of the field of definition
// of the ed25519 curve, p = 2^255 - 19.
func Ed25519BaseField() *Parameters {
	modulus := new(big.Int).Lsh(big.NewInt(1), 255)
	modulus.Sub(modulus, big.NewInt(19))
	//
	return NewParameters("ed25519", 16, modulus)
}

// ModulusLimbs returns the modulus as signed limb coefficients.
func (p *Parameters) ModulusLimbs() []int64 {
	if p.modulusLimbs == nil {
		limbs := util.BigToU16Limbs(p.Modulus, p.NbLimbs)
		p.modulusLimbs = make([]int64, len(limbs))
		//
		for i, l := range limbs {
			p.modulusLimbs[i] = int64(l)
		}
	}
	//
	return p.modulusLimbs
}
