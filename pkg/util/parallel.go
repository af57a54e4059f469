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
package util

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ParallelRange executes fn over every index in [0,n), scheduling
// contiguous chunks of the given size across one goroutine per CPU.
// Chunks are the atomic unit of work: all indices within a chunk are
// processed sequentially, in order, by the same goroutine.  The first
// error returned by fn aborts the whole computation.
func ParallelRange(n, chunkSize int, fn func(index int) error) error {
	if chunkSize <= 0 {
		chunkSize = 1
	}
	//
	var (
		group, ctx = errgroup.WithContext(context.Background())
		tasks      = make(chan int)
	)
	// Feed chunk offsets, bailing out if a worker has failed.
	group.Go(func() error {
		defer close(tasks)

		for start := 0; start < n; start += chunkSize {
			select {
			case tasks <- start:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		// Done
		return nil
	})
	// Spawn one worker per CPU, each draining chunk offsets.
	for w := 0; w < runtime.NumCPU(); w++ {
		group.Go(func() error {
			for start := range tasks {
				for i := start; i < min(start+chunkSize, n); i++ {
					if err := fn(i); err != nil {
						return err
					}
				}
			}
			// Done
			return nil
		})
	}
	//
	return group.Wait()
}
