// Package runner orchestrates a load test run as a sequence of fixed-size
// batches.
//
// Request ids 1..TotalRequests are partitioned into consecutive batches of at
// most Concurrency ids. Each batch fans out one goroutine per id and joins
// the whole batch before the next one starts, so at most Concurrency requests
// are ever in flight. A slow request therefore delays the next batch; that
// head-of-line blocking is the accepted cost of the fixed-window model.
//
//	driver := runner.New(runner.Options{
//		TotalRequests: 100,
//		Concurrency:   10,
//		Executor:      exec,
//	})
//	run, err := driver.Run(ctx)
//
// The driver is a pure scheduler. It never inspects status codes or captured
// request errors; the only error that stops a run is a failed sink append,
// surfaced through the Executor's error return.
package runner
