// Package httpclient provides HTTP client utilities for the apistress load tool.
//
// # Request Building
//
// Use [NewRequestBuilder] to validate the target once and stamp out a request
// per executor invocation:
//
//	builder, err := httpclient.NewRequestBuilder(cfg)
//	if err != nil {
//		return err
//	}
//	req, err := builder.Build(ctx)
//
// # HTTP Client
//
// [NewClient] creates the one shared client for a run. Its connection pool is
// sized to the run's concurrency so every in-flight request can hold a
// keep-alive connection:
//
//	client := httpclient.NewClient(30*time.Second, cfg.Concurrency)
//	resp, err := client.Do(req)
package httpclient
