package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"apistress/internal/config"
	"apistress/internal/executor"
	"apistress/internal/httpclient"
	"apistress/internal/metrics"
	"apistress/internal/output"
	"apistress/internal/result"
	"apistress/internal/runner"
	"apistress/internal/tracing"
)

const progressInterval = time.Second

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	loader := config.NewLoader()
	cfg, err := loader.Load(args)
	if err != nil {
		if errors.Is(err, config.ErrHelpRequested) {
			return nil
		}
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	runID := ulid.Make().String()
	ctx := context.Background()

	tp, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(shutdownCtx)
	}()

	sink, err := result.NewJSONLSink(cfg.LogFile)
	if err != nil {
		return err
	}
	defer sink.Close()

	client := httpclient.NewClient(cfg.Timeout, cfg.Concurrency)
	defer client.CloseIdleConnections()

	collector := metrics.NewCollector()

	exec, err := executor.New(cfg, client, sink, collector, tp)
	if err != nil {
		return err
	}

	driver := runner.New(runner.Options{
		TotalRequests: cfg.TotalRequests,
		Concurrency:   cfg.Concurrency,
		RatePerSecond: cfg.Rate,
		Executor:      exec,
	})

	var progress *output.ProgressReporter
	if !cfg.JSONOutput {
		progress = output.NewProgressReporter(collector, progressInterval, os.Stdout)
		progress.Start()
	}

	// Mark the actual start time in the collector for accurate RPS calculation.
	collector.Start()
	runResult, runErr := driver.Run(ctx)

	if progress != nil {
		progress.Stop()
		fmt.Fprintln(os.Stdout)
	}
	if runErr != nil {
		return runErr
	}

	report := output.Report{
		RunID:   runID,
		LogFile: cfg.LogFile,
		Stats:   collector.Stats(runResult.Duration),
	}

	if cfg.JSONOutput {
		return output.PrintJSONReport(os.Stdout, report)
	}
	output.PrintReport(os.Stdout, report)
	return nil
}
