package config

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// RegisterFlags registers all CLI flags to a cobra command.
func RegisterFlags(cmd *cobra.Command) {
	configureFlags(cmd.Flags())
}

// newFlagCommand creates a cobra command with all flags configured.
func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "apistress",
		Short:         "Concurrent HTTP load generator with per-request JSONL results",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	configureFlags(cmd.Flags())
	return cmd
}

// configureFlags sets up all CLI flags on the provided flag set.
func configureFlags(flags *pflag.FlagSet) {
	// Request shape flags
	flags.String("target", "", "Target URL to load test")
	flags.String("method", "GET", "HTTP method to use")
	flags.StringSlice("header", nil, "Request header in key=value form (repeatable)")
	flags.StringSlice("param", nil, "Query parameter in key=value form (repeatable)")

	// Dispatch control flags
	flags.IntP("total", "t", DefaultTotalRequests, "Total number of requests to send")
	flags.IntP("concurrency", "c", DefaultConcurrency, "Number of simultaneously in-flight requests")
	flags.Duration("timeout", DefaultTimeout, "Per-request timeout")
	flags.IntP("rate", "r", 0, "Requests per second limit (0 means unpaced)")

	// Output flags
	flags.String("log-file", DefaultLogFile, "Path of the JSONL result log")
	flags.Bool("json-output", false, "Emit the summary report as JSON")
	flags.String("config", "", "Path to configuration file (JSON or YAML)")

	// Tracing flags
	flags.String("otlp-endpoint", "", "OTLP endpoint for span export (empty disables tracing)")
	flags.String("otlp-protocol", "grpc", "OTLP transport: 'grpc' or 'http'")
	flags.Bool("otlp-insecure", false, "Disable TLS for the OTLP exporter")
	flags.Float64("trace-sample-rate", 1.0, "Fraction of requests to trace (0.0-1.0)")
	flags.Bool("trace-propagate", false, "Inject W3C trace headers into requests")
}

func displayHelp(cmd *cobra.Command) {
	_ = cmd.Help()
}
