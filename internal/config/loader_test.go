package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"apistress/internal/config"
)

func writeYAMLConfig(t *testing.T, settings map[string]any) string {
	t.Helper()
	data, err := yaml.Marshal(settings)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := config.NewLoader().Load([]string{"--target", "http://example.com"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.TargetURL != "http://example.com" {
		t.Fatalf("target = %q", cfg.TargetURL)
	}
	if cfg.Method != "GET" {
		t.Fatalf("default method = %q, want GET", cfg.Method)
	}
	if cfg.TotalRequests != config.DefaultTotalRequests {
		t.Fatalf("default total = %d, want %d", cfg.TotalRequests, config.DefaultTotalRequests)
	}
	if cfg.Concurrency != config.DefaultConcurrency {
		t.Fatalf("default concurrency = %d, want %d", cfg.Concurrency, config.DefaultConcurrency)
	}
	if cfg.Timeout != config.DefaultTimeout {
		t.Fatalf("default timeout = %s, want %s", cfg.Timeout, config.DefaultTimeout)
	}
	if cfg.LogFile != config.DefaultLogFile {
		t.Fatalf("default log file = %q, want %q", cfg.LogFile, config.DefaultLogFile)
	}
	if len(cfg.Headers) != 0 || len(cfg.Params) != 0 {
		t.Fatalf("expected empty header/param maps")
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	path := writeYAMLConfig(t, map[string]any{
		"target":              "https://api.example.com/todos",
		"method":              "post",
		"total_requests":      250,
		"concurrent_requests": 25,
		"timeout":             2.5,
		"log_file":            "logs/run.jsonl",
		"headers": map[string]string{
			"User-Agent": "apistress/1.0",
			"Accept":     "application/json",
		},
		"params": map[string]string{
			"page": "1",
		},
	})

	cfg, err := config.NewLoader().Load([]string{"--config", path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.TargetURL != "https://api.example.com/todos" {
		t.Fatalf("target = %q", cfg.TargetURL)
	}
	if cfg.Method != "POST" {
		t.Fatalf("method not uppercased: %q", cfg.Method)
	}
	if cfg.TotalRequests != 250 || cfg.Concurrency != 25 {
		t.Fatalf("counts = %d/%d, want 250/25", cfg.TotalRequests, cfg.Concurrency)
	}
	if cfg.Timeout != 2500*time.Millisecond {
		t.Fatalf("fractional seconds timeout = %s, want 2.5s", cfg.Timeout)
	}
	if cfg.LogFile != "logs/run.jsonl" {
		t.Fatalf("log file = %q", cfg.LogFile)
	}
	if cfg.Headers["User-Agent"] != "apistress/1.0" {
		t.Fatalf("headers not loaded: %v", cfg.Headers)
	}
	if cfg.Params["page"] != "1" {
		t.Fatalf("params not loaded: %v", cfg.Params)
	}
}

func TestLoadFlagOverridesFile(t *testing.T) {
	path := writeYAMLConfig(t, map[string]any{
		"target":              "https://file.example.com",
		"total_requests":      100,
		"concurrent_requests": 10,
	})

	cfg, err := config.NewLoader().Load([]string{
		"--config", path,
		"--target", "https://flag.example.com",
		"-t", "50",
		"-c", "5",
		"--timeout", "10s",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.TargetURL != "https://flag.example.com" {
		t.Fatalf("flag target did not win: %q", cfg.TargetURL)
	}
	if cfg.TotalRequests != 50 || cfg.Concurrency != 5 {
		t.Fatalf("flag counts did not win: %d/%d", cfg.TotalRequests, cfg.Concurrency)
	}
	if cfg.Timeout != 10*time.Second {
		t.Fatalf("flag timeout did not win: %s", cfg.Timeout)
	}
}

func TestLoadParsesHeaderAndParamFlags(t *testing.T) {
	cfg, err := config.NewLoader().Load([]string{
		"--target", "http://example.com",
		"--header", "Authorization=Bearer token",
		"--header", "Accept=application/json",
		"--param", "limit=10",
	})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Headers["Authorization"] != "Bearer token" {
		t.Fatalf("header flag not applied: %v", cfg.Headers)
	}
	if cfg.Headers["Accept"] != "application/json" {
		t.Fatalf("header flag not applied: %v", cfg.Headers)
	}
	if cfg.Params["limit"] != "10" {
		t.Fatalf("param flag not applied: %v", cfg.Params)
	}
}

func TestLoadRejectsMalformedPairs(t *testing.T) {
	_, err := config.NewLoader().Load([]string{
		"--target", "http://example.com",
		"--header", "not-a-pair",
	})
	if err == nil {
		t.Fatalf("expected error for malformed header flag")
	}
}

func TestLoadTracingSection(t *testing.T) {
	path := writeYAMLConfig(t, map[string]any{
		"target": "http://example.com",
		"tracing": map[string]any{
			"endpoint":    "localhost:4317",
			"protocol":    "grpc",
			"insecure":    true,
			"sample_rate": 0.25,
			"propagate":   true,
		},
	})

	cfg, err := config.NewLoader().Load([]string{"--config", path})
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !cfg.Tracing.Enabled() {
		t.Fatalf("tracing should be enabled")
	}
	if !cfg.Tracing.Insecure || !cfg.Tracing.Propagate {
		t.Fatalf("tracing bools not loaded: %+v", cfg.Tracing)
	}
	if cfg.Tracing.SampleRate != 0.25 {
		t.Fatalf("sample rate = %g", cfg.Tracing.SampleRate)
	}
}

func TestLoadHelpRequested(t *testing.T) {
	_, err := config.NewLoader().Load(nil)
	if !errors.Is(err, config.ErrHelpRequested) {
		t.Fatalf("expected ErrHelpRequested for empty args, got %v", err)
	}
}
