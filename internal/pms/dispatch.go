package pms

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds concurrent external calls when no worker count is
// configured.
const DefaultWorkers = 5

// Dispatch runs fn over every task on a bounded worker pool and returns the
// results indexed by submission order, regardless of completion order. The
// second return value marks which slots completed: a panicking task loses
// only its own slot while the remaining tasks keep running.
//
// Both pipeline stages share this pool: invoice extraction dispatches one
// task per file, standardization one task per batch.
func Dispatch[T, R any](ctx context.Context, workers int, tasks []T, fn func(ctx context.Context, task T) R) ([]R, []bool) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]R, len(tasks))
	ok := make([]bool, len(tasks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, task := range tasks {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					zap.L().Error("dispatch worker panicked",
						zap.Int("task", i),
						zap.Any("panic", r),
					)
				}
			}()
			results[i] = fn(ctx, task)
			ok[i] = true
			return nil
		})
	}

	// Workers never return errors; failures surface through the ok flags.
	_ = g.Wait()
	return results, ok
}
