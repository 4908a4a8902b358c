package helpers

import (
	"context"
	"math/rand"
	"time"
)

// RetryContext calls fn until it succeeds, it has failed times+1 times or ctx
// is done.
func RetryContext(ctx context.Context, times int, interval time.Duration, fn func() error) error {
	i := 0

	for {
		err := fn()
		if err == nil {
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}

		if i >= times {
			return err
		}

		i++

		// add 5% jitter
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval + time.Duration(rand.Int63n(int64(interval/20)+1))):
		}
	}
}
