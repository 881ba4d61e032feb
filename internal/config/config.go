package config

import (
	"fmt"
	"strings"
	"time"
)

// Defaults applied before file settings and flag overrides.
const (
	DefaultTotalRequests = 100
	DefaultConcurrency   = 10
	DefaultTimeout       = 30 * time.Second
	DefaultLogFile       = "api_stress_test.jsonl"
)

// Config describes one load test run: the request shape sent to the target
// and the dispatch parameters controlling volume and concurrency.
type Config struct {
	TargetURL     string            `mapstructure:"target"`
	Method        string            `mapstructure:"method"`
	Headers       map[string]string `mapstructure:"headers"`
	Params        map[string]string `mapstructure:"params"`
	TotalRequests int               `mapstructure:"total_requests"`
	Concurrency   int               `mapstructure:"concurrent_requests"`
	Timeout       time.Duration     `mapstructure:"timeout"`
	Rate          int               `mapstructure:"rate"`
	LogFile       string            `mapstructure:"log_file"`
	JSONOutput    bool              `mapstructure:"json_output"`
	Tracing       TracingConfig     `mapstructure:"tracing"`
	ConfigFile    string            `mapstructure:"-"`
}

// TracingConfig controls optional OpenTelemetry span export.
type TracingConfig struct {
	Endpoint    string  `mapstructure:"endpoint"`
	Protocol    string  `mapstructure:"protocol"`
	Insecure    bool    `mapstructure:"insecure"`
	SampleRate  float64 `mapstructure:"sample_rate"`
	ServiceName string  `mapstructure:"service_name"`
	Propagate   bool    `mapstructure:"propagate"`
}

// Enabled reports whether spans should be exported.
func (t TracingConfig) Enabled() bool {
	return strings.TrimSpace(t.Endpoint) != ""
}

// ShouldPropagate reports whether W3C trace headers are injected into
// outgoing requests.
func (t TracingConfig) ShouldPropagate() bool {
	return t.Propagate
}

// ValidationError aggregates every configuration issue found so the user can
// fix them in one pass.
type ValidationError struct {
	issues []string
}

func (e ValidationError) Error() string {
	if len(e.issues) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.issues, "; "))
}

func (e ValidationError) Issues() []string {
	return append([]string(nil), e.issues...)
}

// Validate checks the run parameters. A failing config never dispatches a
// single request.
func (c Config) Validate() error {
	var issues []string

	if strings.TrimSpace(c.TargetURL) == "" {
		issues = append(issues, "target is required (use --help for usage information)")
	}
	if c.Concurrency < 1 {
		issues = append(issues, "concurrency must be >= 1")
	}
	if c.TotalRequests < 0 {
		issues = append(issues, "total_requests must be >= 0")
	}
	if c.Timeout < 0 {
		issues = append(issues, "timeout must be >= 0")
	}
	if c.Rate < 0 {
		issues = append(issues, "rate must be >= 0")
	}
	if strings.TrimSpace(c.LogFile) == "" {
		issues = append(issues, "log_file is required")
	}

	if tracingIssues := validateTracingConfig(c.Tracing); len(tracingIssues) > 0 {
		issues = append(issues, tracingIssues...)
	}

	if len(issues) > 0 {
		return ValidationError{issues: issues}
	}
	return nil
}

func validateTracingConfig(t TracingConfig) []string {
	var issues []string
	if t.SampleRate < 0 || t.SampleRate > 1.0 {
		issues = append(issues, fmt.Sprintf("tracing: sample_rate must be between 0.0 and 1.0, got %g", t.SampleRate))
	}
	if t.Enabled() {
		switch strings.ToLower(strings.TrimSpace(t.Protocol)) {
		case "", "grpc", "http":
		default:
			issues = append(issues, fmt.Sprintf("tracing: protocol must be 'grpc' or 'http', got %q", t.Protocol))
		}
	}
	return issues
}
