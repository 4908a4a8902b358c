package helpers

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrTimeout = errors.New("timeout")

// WaitContext calls fn every interval until it reports success times in a
// row, fails times in a row, the timeout passes or ctx is done.
func WaitContext(ctx context.Context, interval time.Duration, timeout time.Duration, times int, fn func() (bool, error)) error {
	successes := 0
	errs := 0
	start := time.Now().UTC()

	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			if timeout > 0 && start.Add(timeout).Before(time.Now().UTC()) {
				return errors.WithStack(ErrTimeout)
			}

			success, err := fn()
			if err != nil {
				errs += 1
			} else {
				errs = 0
			}

			if errs >= times {
				return err
			}

			if success {
				successes += 1
			} else {
				successes = 0
			}

			if successes >= times {
				return nil
			}
		}
	}
}
