// SPDX-License-Identifier: MIT
package backend

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// defaultWorkgroup is the device workgroup size used when launching; on
// Host it upper-bounds how many indices a single goroutine claims per turn
// so that very large ndrange spaces don't require one goroutine per index.
const defaultWorkgroup = 256

// Kernel is a data-parallel unit of work. idx is the flattened coordinate
// within the launch's ndrange (row-major over the declared dimensions);
// implementations that need the multi-dimensional coordinate should decode
// it themselves from ndrange, which is passed alongside args for that
// purpose by convention (Launch does not do this decoding for callers).
type Kernel func(ctx context.Context, idx int, args ...any) error

// Launch schedules kernel across the flattened index space described by
// ndrange (the product of its dimensions) on the requested backend b, and
// blocks until every invocation has completed (synchronize-at-launch).
//
// On Host, work is fanned out across a worker pool sized to GOMAXPROCS.
// On Parallel, Launch fails with BackendError wrapping ErrUnsupportedOp:
// no device backend ships in this module, so requesting Parallel directly
// is treated as the "explicit unsupported operation" case the design
// reserves BackendError for — callers should route through Select(cfg)
// first and only ever pass its result to Launch.
//
// The first error returned by any kernel invocation is returned once all
// in-flight invocations have drained; remaining invocations still run to
// completion (no cancellation is threaded to sibling goroutines beyond ctx
// itself being caller-controlled).
func Launch(ctx context.Context, k Kernel, b Kind, ndrange []int, args ...any) error {
	if k == nil {
		return newBackendError(b, "Launch", errors.New("nil kernel"))
	}
	if b == Parallel {
		return newBackendError(b, "Launch", fmt.Errorf("no device backend registered: %w", ErrUnsupportedOp))
	}

	total := 1
	for _, d := range ndrange {
		if d < 0 {
			return newBackendError(b, "Launch", fmt.Errorf("negative dimension in ndrange %v", ndrange))
		}
		total *= d
	}
	if len(ndrange) == 0 || total == 0 {
		return nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > total {
		workers = total
	}
	if workers < 1 {
		workers = 1
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	chunk := (total + workers - 1) / workers
	if chunk > defaultWorkgroup {
		// Cap per-goroutine batch size so a single worker never claims the
		// entire space when GOMAXPROCS is small relative to total.
		chunk = defaultWorkgroup
	}

	next := 0
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				start := next
				if start >= total {
					mu.Unlock()
					return
				}
				end := start + chunk
				if end > total {
					end = total
				}
				next = end
				mu.Unlock()

				for idx := start; idx < end; idx++ {
					if err := k(ctx, idx, args...); err != nil {
						mu.Lock()
						if firstErr == nil {
							firstErr = err
						}
						mu.Unlock()
					}
				}
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return newBackendError(b, "Launch", firstErr)
	}

	return nil
}
