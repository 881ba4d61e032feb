// Package metrics collects per-request latency and outcome data during a run.
//
// The [Collector] is safe for concurrent use by every in-flight executor.
// Latencies are recorded into an HDR histogram (1µs to 60s, 3 significant
// figures) so percentile queries stay cheap at any request volume.
//
//	collector := metrics.NewCollector()
//	collector.RecordRequest(latency, statusCode, err)
//	stats := collector.Stats(elapsed)
//
// Failures split two ways: transport errors are grouped by a friendly name
// derived from the Go error type, completed exchanges are grouped by status
// code bucket.
package metrics
