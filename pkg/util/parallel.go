package util

import (
	"context"
	"sync"
)

// Parallel runs tasks on up to workerLimit goroutines and waits for all of
// them. The first error cancels the remaining tasks and is returned.
func Parallel(ctx context.Context, tasks []func(context.Context) error, workerLimit int) error {
	if len(tasks) == 0 {
		return nil
	}

	if workerLimit <= 0 {
		workerLimit = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queue := make(chan func(context.Context) error)
	errCh := make(chan error, 1)

	wg := sync.WaitGroup{}
	for i := 0; i < workerLimit; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				if err := task(ctx); err != nil {
					select {
					case errCh <- err:
						cancel() // stop others
					default:
					}
					return
				}
			}
		}()
	}

	go func() {
		defer close(queue)
		for _, task := range tasks {
			select {
			case <-ctx.Done():
				return
			case queue <- task:
			}
		}
	}()

	wg.Wait()
	cancel()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}
