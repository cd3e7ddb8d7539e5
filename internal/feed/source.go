package feed

import (
	"context"
	"errors"
	"sync"
)

// Emit delivers one message to the consumer. Implementations must be safe to
// call from the source's own goroutine.
type Emit func(Message)

// Source produces messages until ctx is cancelled.
type Source interface {
	Run(ctx context.Context, emit Emit) error
}

// Multi runs several sources concurrently into a single emitter.
type Multi []Source

// Run starts every source and waits for all of them. It returns the joined
// errors of sources that failed for reasons other than cancellation.
func (m Multi) Run(ctx context.Context, emit Emit) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for _, src := range m {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()
			if err := src.Run(ctx, emit); err != nil && !errors.Is(err, context.Canceled) {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(src)
	}
	wg.Wait()
	return errors.Join(errs...)
}
