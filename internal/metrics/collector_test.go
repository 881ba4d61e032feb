package metrics_test

import (
	"context"
	"testing"
	"time"

	"apistress/internal/metrics"
)

func TestCollectorCountsOutcomes(t *testing.T) {
	c := metrics.NewCollector()
	c.RecordRequest(10*time.Millisecond, 200, nil)
	c.RecordRequest(20*time.Millisecond, 204, nil)
	c.RecordRequest(30*time.Millisecond, 500, nil)
	c.RecordRequest(40*time.Millisecond, 0, context.DeadlineExceeded)

	stats := c.Stats(time.Second)
	if stats.Total != 4 {
		t.Fatalf("total = %d, want 4", stats.Total)
	}
	if stats.Successes != 2 {
		t.Fatalf("successes = %d, want 2", stats.Successes)
	}
	if stats.Failures != 2 {
		t.Fatalf("failures = %d, want 2", stats.Failures)
	}
	if stats.StatusCodes["500"] != 1 || stats.StatusCodes["200"] != 1 {
		t.Fatalf("status buckets wrong: %v", stats.StatusCodes)
	}
	if len(stats.Errors) != 1 {
		t.Fatalf("expected one error bucket, got %v", stats.Errors)
	}
	if stats.RequestsPerSec != 4 {
		t.Fatalf("rps = %g, want 4", stats.RequestsPerSec)
	}
}

func TestCollectorNon2xxIsFailureNotError(t *testing.T) {
	c := metrics.NewCollector()
	c.RecordRequest(5*time.Millisecond, 404, nil)

	stats := c.Stats(time.Second)
	if stats.Failures != 1 || stats.Successes != 0 {
		t.Fatalf("404 must count as failure: %+v", stats)
	}
	if len(stats.Errors) != 0 {
		t.Fatalf("completed exchange must not appear in error breakdown: %v", stats.Errors)
	}
}

func TestCollectorLatencyStats(t *testing.T) {
	c := metrics.NewCollector()
	for i := 1; i <= 100; i++ {
		c.RecordRequest(time.Duration(i)*time.Millisecond, 200, nil)
	}

	stats := c.Stats(time.Second)
	if stats.MinLatency != time.Millisecond {
		t.Fatalf("min = %s", stats.MinLatency)
	}
	if stats.MaxLatency != 100*time.Millisecond {
		t.Fatalf("max = %s", stats.MaxLatency)
	}
	if stats.P50Latency > stats.P90Latency || stats.P90Latency > stats.P99Latency {
		t.Fatalf("percentiles not monotonic: p50=%s p90=%s p99=%s",
			stats.P50Latency, stats.P90Latency, stats.P99Latency)
	}
	// HDR histogram keeps 3 significant figures, allow small error.
	if stats.P50Latency < 45*time.Millisecond || stats.P50Latency > 55*time.Millisecond {
		t.Fatalf("p50 = %s, want about 50ms", stats.P50Latency)
	}
}

func TestCollectorEmptyStats(t *testing.T) {
	c := metrics.NewCollector()
	stats := c.Stats(0)
	if stats.Total != 0 || stats.RequestsPerSec != 0 {
		t.Fatalf("empty collector produced counts: %+v", stats)
	}
	if stats.StatusCodes != nil || stats.Errors != nil {
		t.Fatalf("empty collector produced buckets")
	}
}
