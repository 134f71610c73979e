package usecase

import (
	"context"
	"fmt"
	"time"
)

type raceResult[T any] struct {
	val T
	err error
}

// raceTimeout runs fn against its own full timeout budget and reports which
// side settled first. The losing call's context is cancelled, but a network
// request that ignores cancellation may still complete in the background
// with no observer. A panic inside fn surfaces as an *UnknownError.
func raceTimeout[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (val T, err error, timedOut bool) {
	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan raceResult[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				var zero T
				done <- raceResult[T]{zero, &UnknownError{Message: fmt.Sprint(r)}}
			}
		}()
		v, err := fn(callCtx)
		done <- raceResult[T]{v, err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case res := <-done:
		return res.val, res.err, false
	case <-timer.C:
		var zero T
		return zero, nil, true
	}
}
