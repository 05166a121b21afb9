package service

import (
	"paypulse/pkg/workerpool"
)

// AsyncService runs closures on the shared worker pool. With no pool the
// closures run inline.
type AsyncService struct {
	Pool *workerpool.WorkerPool
}

func NewAsyncService(pool *workerpool.WorkerPool) *AsyncService {
	return &AsyncService{Pool: pool}
}

func (a *AsyncService) SubmitAsync(fn func() (any, error)) (any, error) {
	if a == nil || a.Pool == nil {
		return fn()
	}
	resCh := make(chan workerpool.Result, 1)
	if err := a.Pool.Submit(workerpool.Task{Fn: fn, ResultC: resCh}); err != nil {
		return nil, err
	}
	res := <-resCh
	return res.Value, res.Err
}

// All runs every fn concurrently and returns the values in input order.
// It waits for all of them and returns the first error by position.
func (a *AsyncService) All(fns []func() (any, error)) ([]any, error) {
	values := make([]any, len(fns))
	if a == nil || a.Pool == nil {
		for i, fn := range fns {
			v, err := fn()
			if err != nil {
				return nil, err
			}
			values[i] = v
		}
		return values, nil
	}

	chans := make([]chan workerpool.Result, len(fns))
	var submitErr error
	for i, fn := range fns {
		chans[i] = make(chan workerpool.Result, 1)
		if err := a.Pool.Submit(workerpool.Task{Fn: fn, ResultC: chans[i]}); err != nil {
			chans[i] = nil
			if submitErr == nil {
				submitErr = err
			}
		}
	}
	var firstErr error
	for i, ch := range chans {
		if ch == nil {
			continue
		}
		res := <-ch
		if res.Err != nil && firstErr == nil {
			firstErr = res.Err
		}
		values[i] = res.Value
	}
	if firstErr == nil {
		firstErr = submitErr
	}
	if firstErr != nil {
		return nil, firstErr
	}
	return values, nil
}
