package collect

import (
	"context"
	"sync"
	"time"
)

// forEachBatch runs fn over items in sequential batches of batchSize, with the
// items of one batch running concurrently. Every item runs to completion; one
// failure never cancels its siblings. The returned slice holds the per-item
// error aligned by index. delay is the pause between batches.
func forEachBatch[T any](ctx context.Context, items []T, batchSize int, delay time.Duration, fn func(ctx context.Context, index int, item T) error) []error {
	if batchSize <= 0 {
		batchSize = 1
	}
	errs := make([]error, len(items))

	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = fn(ctx, i, items[i])
			}(i)
		}
		wg.Wait()

		if end < len(items) && delay > 0 {
			select {
			case <-ctx.Done():
				for i := end; i < len(items); i++ {
					errs[i] = ctx.Err()
				}
				return errs
			case <-time.After(delay):
			}
		}
	}
	return errs
}
