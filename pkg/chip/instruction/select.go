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
package instruction

import (
	"github.com/consensys/go-curta/pkg/chip"
	"github.com/consensys/go-curta/pkg/chip/expression"
	"github.com/consensys/go-curta/pkg/chip/register"
)

// Blend forms the expression bit * onTrue + (1 - bit) * onFalse,
// selecting between two equal-size expressions cell by cell.
func Blend(bit register.Bit, onTrue, onFalse expression.Expression) expression.Expression {
	var (
		b    = expression.FromRegister(bit)
		notB = expression.Sub(expression.ConstantUint64([]uint64{1}), b)
	)
	//
	return expression.Add(expression.Mul(b, onTrue), expression.Mul(notB, onFalse))
}

// NewSelect constrains target to hold onTrue wherever bit is set and
// onFalse elsewhere.
func NewSelect(b *chip.Builder, target register.Slice, bit register.Bit, onTrue, onFalse expression.Expression) *Assign {
	return NewAssign(b, target, Blend(bit, onTrue, onFalse))
}
