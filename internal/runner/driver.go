package runner

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"apistress/internal/result"
)

// RunResult is the aggregate outcome of a run: every request's Result in
// dispatch order (request id ascending, not completion order).
type RunResult struct {
	Results  []result.Result
	Duration time.Duration
}

// Driver coordinates batched concurrent execution.
type Driver struct {
	opt     Options
	limiter *rate.Limiter
}

// New builds a Driver from options. Validation happens in Run so that a
// misconfigured driver fails fast without dispatching.
func New(opt Options) *Driver {
	opt.normalize()
	var limiter *rate.Limiter
	if opt.RatePerSecond > 0 {
		limiter = opt.LimiterFactory(opt.RatePerSecond)
	}
	return &Driver{opt: opt, limiter: limiter}
}

func (d *Driver) validate() error {
	if d.opt.TotalRequests < 0 {
		return errors.New("total requests must be >= 0")
	}
	if d.opt.Concurrency < 1 {
		return errors.New("concurrency must be >= 1")
	}
	if d.opt.Executor == nil {
		return errors.New("executor is required")
	}
	return nil
}

// Run dispatches all requests and returns their results ordered by request
// id. Batches run strictly sequentially: batch N+1 does not start until every
// request of batch N has resolved. The first sink failure aborts the run once
// the in-flight batch drains.
func (d *Driver) Run(ctx context.Context) (RunResult, error) {
	if err := d.validate(); err != nil {
		return RunResult{}, err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	total := d.opt.TotalRequests
	results := make([]result.Result, total)

	var mu sync.Mutex
	var runErr error

	for lo := 0; lo < total; lo += d.opt.Concurrency {
		hi := lo + d.opt.Concurrency
		if hi > total {
			hi = total
		}

		var wg sync.WaitGroup
		for id := lo + 1; id <= hi; id++ {
			if d.limiter != nil {
				if err := d.limiter.Wait(ctx); err != nil {
					wg.Wait()
					return RunResult{}, fmt.Errorf("dispatch paced wait: %w", err)
				}
			}

			wg.Add(1)
			go func(requestID int) {
				defer wg.Done()
				res, err := d.opt.Executor.Execute(ctx, requestID)
				results[requestID-1] = res
				if err != nil {
					mu.Lock()
					if runErr == nil {
						runErr = err
					}
					mu.Unlock()
				}
			}(id)
		}
		wg.Wait()

		mu.Lock()
		err := runErr
		mu.Unlock()
		if err != nil {
			return RunResult{}, fmt.Errorf("result sink failed: %w", err)
		}
	}

	return RunResult{
		Results:  results,
		Duration: time.Since(start),
	}, nil
}
