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
package cmd

import (
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/consensys/gnark-crypto/field/goldilocks"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/consensys/go-curta/pkg/chip"
	"github.com/consensys/go-curta/pkg/chip/trace"
	"github.com/consensys/go-curta/pkg/util"
)

// rangeCheckCmd exercises the automatic 16-bit range check over a
// full-height trace of random u16 cells.
var rangeCheckCmd = &cobra.Command{
	Use:   "rangecheck",
	Short: "Run the 16-bit lookup argument over a trace of random cells.",
	Run: func(cmd *cobra.Command, args []string) {
		var cfg rangeCheckConfig
		// Configure command
		cfg.numColumns = getUint(cmd, "columns")
		//
		runRangeCheck(cfg)
	},
}

// rangeCheckConfig encapsulates the configuration options for the
// rangecheck command.
type rangeCheckConfig struct {
	// numColumns is the number of arithmetic columns filled with
	// random 16-bit values.
	numColumns uint
}

func runRangeCheck(cfg rangeCheckConfig) {
	// The clock table walks every 16-bit value exactly once, hence
	// the fixed trace height.
	const numRows = util.LimbSize
	//
	start := time.Now()
	//
	b := chip.NewBuilder(chip.Options{
		NumArithmeticColumns: int(cfg.numColumns),
		NumFreeColumns:       2,
		NumExtendedColumns:   9 + 3*((int(cfg.numColumns)+1)/2),
		NumChallenges:        3,
	})
	//
	var (
		cells = b.U16Array(int(cfg.numColumns))
		c     = b.Build()
		g     = chip.NewGenerator(c, numRows)
	)
	//
	log.Infof("built chip with %d columns in %s", c.NumColumns, time.Since(start))
	start = time.Now()
	//
	err := g.WriteRows(1024, func(row int, w *trace.Writer) error {
		rnd := rand.New(rand.NewPCG(uint64(row), 0))
		//
		for i := 0; i < cells.Len(); i++ {
			w.WriteElement(cells.Get(i), row, goldilocks.NewElement(rnd.Uint64()%util.LimbSize))
		}
		//
		g.WriteRowInstructions(row)
		//
		return nil
	})
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	} else if err := g.SetChallenges(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	//
	g.WriteExtended()
	//
	log.Infof("wrote %d rows in %s", numRows, time.Since(start))
	start = time.Now()
	//
	if failures := g.Check(); len(failures) != 0 {
		fmt.Printf("trace check failed with %d failures\n", len(failures))
		os.Exit(2)
	}
	//
	log.Infof("checked constraints in %s", time.Since(start))
	fmt.Printf("range checked %d cells\n", int(cfg.numColumns)*numRows)
}

func init() {
	rootCmd.AddCommand(rangeCheckCmd)
	rangeCheckCmd.Flags().Uint("columns", 4, "number of u16 columns to range check")
}
