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
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/consensys/go-curta/pkg/chip"
	"github.com/consensys/go-curta/pkg/chip/ec"
)

// scalarMulCmd builds the ed25519 scalar multiplication chip, fills a
// trace with random scalars and checks every constraint over it.
var scalarMulCmd = &cobra.Command{
	Use:   "scalarmul",
	Short: "Run the ed25519 scalar multiplication chip over random scalars.",
	Run: func(cmd *cobra.Command, args []string) {
		var cfg scalarMulConfig
		// Configure command
		cfg.batchSize = getUint(cmd, "batch")
		//
		runScalarMul(cfg)
	},
}

// scalarMulConfig encapsulates the configuration options for the
// scalarmul command.
type scalarMulConfig struct {
	// batchSize is the number of scalar multiplications written into
	// the trace, one 256-row cycle each.
	batchSize uint
}

func runScalarMul(cfg scalarMulConfig) {
	var (
		curve   = ec.Ed25519()
		scalars = make([]*big.Int, cfg.batchSize)
		points  = make([]ec.Point, cfg.batchSize)
	)
	//
	for i := range scalars {
		scalars[i] = randomScalar(curve)
		points[i] = curve.Generator
	}
	//
	start := time.Now()
	//
	b := chip.NewBuilder(chip.Options{
		NumArithmeticColumns: 1600,
		NumFreeColumns:       8,
		NumExtendedColumns:   18,
		NumGlobalValues:      9,
		NumChallenges:        18,
		SkipRangeCheck:       true,
	})
	//
	var (
		mul = ec.NewScalarMul(b, curve)
		c   = b.Build()
		g   = chip.NewGenerator(c, int(cfg.batchSize)*curve.ScalarBits)
	)
	//
	log.Infof("built chip with %d columns in %s", c.NumColumns, time.Since(start))
	start = time.Now()
	//
	results, err := mul.Write(g, points, scalars)
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
	log.Infof("wrote %d rows in %s", int(cfg.batchSize)*curve.ScalarBits, time.Since(start))
	start = time.Now()
	//
	if failures := g.Check(); len(failures) != 0 {
		fmt.Printf("trace check failed with %d failures\n", len(failures))
		os.Exit(2)
	}
	//
	log.Infof("checked constraints in %s", time.Since(start))
	// Cross check against the big integer reference.
	for i, scalar := range scalars {
		expected := curve.ScalarMul(points[i], scalar)
		if expected.X.Cmp(results[i].X) != 0 || expected.Y.Cmp(results[i].Y) != 0 {
			fmt.Printf("product %d disagrees with the reference arithmetic\n", i)
			os.Exit(2)
		}
	}
	//
	fmt.Printf("checked %d scalar multiplications\n", cfg.batchSize)
}

// randomScalar samples a uniform scalar below 2^ScalarBits.
func randomScalar(curve *ec.Curve) *big.Int {
	bound := new(big.Int).Lsh(big.NewInt(1), uint(curve.ScalarBits))
	//
	scalar, err := rand.Int(rand.Reader, bound)
	if err != nil {
		panic(err)
	}
	//
	return scalar
}

func init() {
	rootCmd.AddCommand(scalarMulCmd)
	scalarMulCmd.Flags().Uint("batch", 4, "number of scalar multiplications to write")
}
