package tracing_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"apistress/internal/config"
	"apistress/internal/tracing"
)

func TestInitDisabledReturnsNoopProvider(t *testing.T) {
	tp, err := tracing.Init(context.Background(), config.TracingConfig{})
	if err != nil {
		t.Fatalf("init: %v", err)
	}
	if tp.Tracer() == nil {
		t.Fatalf("disabled provider must still return a tracer")
	}
	if tp.ShouldPropagate() {
		t.Fatalf("disabled provider must not propagate")
	}
	if err := tp.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestInitRejectsBadSampleRate(t *testing.T) {
	_, err := tracing.Init(context.Background(), config.TracingConfig{
		Endpoint:   "localhost:4317",
		SampleRate: 2.0,
	})
	if err == nil {
		t.Fatalf("expected error for sample rate above 1.0")
	}
}

func TestInitRejectsUnknownProtocol(t *testing.T) {
	_, err := tracing.Init(context.Background(), config.TracingConfig{
		Endpoint: "localhost:4317",
		Protocol: "udp",
	})
	if err == nil {
		t.Fatalf("expected error for unknown OTLP protocol")
	}
}

func TestSpanHelpersWorkWithNoopTracer(t *testing.T) {
	tp, err := tracing.Init(context.Background(), config.TracingConfig{})
	if err != nil {
		t.Fatalf("init: %v", err)
	}

	ctx, span := tracing.StartRequestSpan(context.Background(), tp.Tracer(), "GET", "http://example.com", 1)
	tracing.InjectHTTPHeaders(ctx, http.Header{})
	tracing.EndRequestSpan(span, 200, nil)

	_, span = tracing.StartRequestSpan(context.Background(), tp.Tracer(), "GET", "http://example.com", 2)
	tracing.EndRequestSpan(span, 0, errors.New("dial failed"))
}
