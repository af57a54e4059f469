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
	"fmt"

	"github.com/consensys/go-curta/pkg/air"
	"github.com/consensys/go-curta/pkg/chip"
	"github.com/consensys/go-curta/pkg/chip/register"
	"github.com/consensys/go-curta/pkg/chip/trace"
)

// Decompose constrains a column to equal the little-endian binary
// recomposition of a vector of bit columns.
type Decompose struct {
	value register.Element
	bits  []register.Bit
}

// NewDecompose builds and registers a bit decomposition of the given
// width.  The returned instruction owns freshly allocated bit
// registers.
func NewDecompose(b *chip.Builder, value register.Element, width int) *Decompose {
	if width <= 0 || width > 63 {
		panic(fmt.Sprintf("unsupported decomposition width %d", width))
	}
	//
	bits := make([]register.Bit, width)
	//
	for i := range bits {
		bits[i] = b.Bit()
	}
	//
	instr := &Decompose{value, bits}
	b.Register(instr)
	//
	return instr
}

// Bits returns the bit registers, least significant first.
func (d *Decompose) Bits() []register.Bit {
	return d.bits
}

// Eval implementation for the Instruction interface.
func (d *Decompose) Eval(p air.Parser) {
	sum := p.Zero()
	//
	for i := len(d.bits) - 1; i >= 0; i-- {
		sum = p.Add(p.Mul(sum, air.ConstantUint64(p, 2)), air.ReadBit(p, d.bits[i]))
	}
	//
	p.Assert(p.Sub(air.ReadElement(p, d.value), sum))
}

// WriteRow implementation for the RowWriter interface.
func (d *Decompose) WriteRow(w *trace.Writer, row int) {
	element := w.ReadElement(d.value, row)
	value := element.Uint64()
	//
	if value >= uint64(1)<<len(d.bits) {
		panic(fmt.Sprintf("value %d does not fit in %d bits", value, len(d.bits)))
	}
	//
	for i, bit := range d.bits {
		w.WriteBit(bit, row, (value>>i)&1 == 1)
	}
}
