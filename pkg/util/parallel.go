// Package util holds small concurrency helpers.
package util

import (
	"context"
	"sync"
)

// Parallel runs fn over inputs with at most workers goroutines. The first
// error cancels the context passed to the remaining calls and is returned.
func Parallel[T any](ctx context.Context, inputs []T, workers int, fn func(context.Context, T) error) error {
	if len(inputs) == 0 {
		return nil
	}
	workers = max(1, min(workers, len(inputs)))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	tasks := make(chan T)
	errCh := make(chan error, 1)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range tasks {
				if err := fn(ctx, item); err != nil {
					select {
					case errCh <- err:
						cancel()
					default:
					}
					return
				}
			}
		}()
	}

	go func() {
		defer close(tasks)
		for _, item := range inputs {
			select {
			case <-ctx.Done():
				return
			case tasks <- item:
			}
		}
	}()

	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
		return ctx.Err()
	}
}
