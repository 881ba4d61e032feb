package runner

import (
	"context"

	"golang.org/x/time/rate"

	"apistress/internal/result"
)

// Executor abstracts performing a single request identified by its 1-based
// sequential id. The returned error signals a sink failure only; request
// failures are captured inside the Result.
type Executor interface {
	Execute(ctx context.Context, requestID int) (result.Result, error)
}

// Options configure the Driver.
type Options struct {
	TotalRequests int // total requests to dispatch (>= 0)
	Concurrency   int // batch size and in-flight ceiling (>= 1)
	RatePerSecond int // dispatch pacing (0 means unpaced)
	Executor      Executor

	// LimiterFactory builds the pacing limiter when RatePerSecond > 0.
	// Tests substitute their own; nil selects a uniform limiter.
	LimiterFactory func(rps int) *rate.Limiter
}

func (o *Options) normalize() {
	if o.LimiterFactory == nil {
		o.LimiterFactory = func(rps int) *rate.Limiter {
			return rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}
