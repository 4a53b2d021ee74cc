package task

import (
	"context"
	"fmt"
)

// Submit runs fetch on r and delivers its typed outcome to deliver on the
// consumer. It mirrors Runner.Submit for callers that know the result type.
func Submit[T any](r *Runner, op string, generation uint64, fetch func(context.Context) (T, error), deliver func(T, error)) Handle {
	return r.Submit(Request{
		Op:         op,
		Generation: generation,
		Fetch: func(ctx context.Context) (any, error) {
			return fetch(ctx)
		},
		Deliver: func(res Result) {
			if deliver == nil {
				return
			}
			value, err := As[T](res)
			deliver(value, err)
		},
	})
}

// As extracts a typed value from res.
func As[T any](res Result) (T, error) {
	var zero T
	if res.Err != nil {
		return zero, res.Err
	}
	if res.Value == nil {
		return zero, nil
	}
	value, ok := res.Value.(T)
	if !ok {
		return zero, fmt.Errorf("%s: unexpected result type %T", res.Op, res.Value)
	}
	return value, nil
}
