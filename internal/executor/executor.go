// Package executor performs a single HTTP exchange per invocation and turns
// every outcome, including transport failure, into a result record.
package executor

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"apistress/internal/config"
	"apistress/internal/httpclient"
	"apistress/internal/metrics"
	"apistress/internal/result"
	"apistress/internal/tracing"
)

// Executor issues one request per Execute call against a fixed target using
// the run's shared client. It never reports request failure through its error
// return: transport and timeout errors are captured into the Result. The
// returned error is reserved for sink append failures, which abort the run.
type Executor struct {
	client    *http.Client
	builder   *httpclient.RequestBuilder
	sink      result.Sink
	collector *metrics.Collector
	tracing   *tracing.Provider
	headers   map[string]string
	params    map[string]string
}

// New validates the target request shape and prepares an executor bound to
// the shared client and sink.
func New(cfg *config.Config, client *http.Client, sink result.Sink, collector *metrics.Collector, tp *tracing.Provider) (*Executor, error) {
	builder, err := httpclient.NewRequestBuilder(cfg)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string, len(cfg.Headers))
	for k, v := range cfg.Headers {
		headers[k] = v
	}
	params := make(map[string]string, len(cfg.Params))
	for k, v := range cfg.Params {
		params[k] = v
	}

	return &Executor{
		client:    client,
		builder:   builder,
		sink:      sink,
		collector: collector,
		tracing:   tp,
		headers:   headers,
		params:    params,
	}, nil
}

// Execute performs one HTTP exchange and appends the resulting record to the
// sink before returning it. The latency covers dispatch through body drain
// (or failure) and is rounded to two decimal milliseconds.
func (e *Executor) Execute(ctx context.Context, requestID int) (result.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	start := time.Now()
	res := result.Result{
		RequestID: requestID,
		Timestamp: start,
		URL:       e.builder.Target(),
		Method:    e.builder.Method(),
		Headers:   e.headers,
		Params:    e.params,
	}

	ctx, span := tracing.StartRequestSpan(ctx, e.tracing.Tracer(), res.Method, res.URL, requestID)

	statusCode := 0
	var execErr error

	req, err := e.builder.Build(ctx)
	if err != nil {
		execErr = err
	} else {
		if e.tracing.ShouldPropagate() {
			tracing.InjectHTTPHeaders(ctx, req.Header)
		}
		resp, err := e.client.Do(req)
		if err != nil {
			execErr = err
		} else {
			body, readErr := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if readErr != nil {
				execErr = readErr
			} else {
				statusCode = resp.StatusCode
				res.Completed(resp.StatusCode, flattenHeaders(resp.Header), body)
			}
		}
	}

	latency := time.Since(start)
	res.ResponseTimeMs = result.RoundMs(latency)
	if execErr != nil {
		res.Failed(execErr)
	}

	tracing.EndRequestSpan(span, statusCode, execErr)
	e.collector.RecordRequest(latency, statusCode, execErr)

	// Flush before returning so the log stays durable even if the run is
	// interrupted before driver aggregation completes.
	if err := e.sink.Append(&res); err != nil {
		return res, err
	}
	return res, nil
}

// flattenHeaders collapses multi-valued response headers into a single
// comma-joined value per key, matching the log record shape.
func flattenHeaders(headers http.Header) map[string]string {
	flat := make(map[string]string, len(headers))
	for key, values := range headers {
		flat[key] = strings.Join(values, ", ")
	}
	return flat
}
