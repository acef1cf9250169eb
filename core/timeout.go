package core

import (
	"context"
	"time"
)

// Guard runs fn and waits at most d for it to return.
//
// When the deadline wins, Guard returns ErrTimeout and stops waiting. The
// goroutine running fn is abandoned, not aborted: the deadline is not
// propagated into the context passed to fn, so an in-flight vendor request may
// still complete and bill. Cancelling ctx itself still reaches fn.
// A non-positive d waits for fn or ctx only.
func Guard[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	type result struct {
		value T
		err   error
	}
	ch := make(chan result, 1)

	go func() {
		v, err := fn(ctx)
		ch <- result{v, err}
	}()

	var deadline <-chan time.Time
	if d > 0 {
		timer := time.NewTimer(d)
		defer timer.Stop()
		deadline = timer.C
	}

	var zero T
	select {
	case r := <-ch:
		return r.value, r.err
	case <-deadline:
		return zero, ErrTimeout
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
