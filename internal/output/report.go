// Package output renders the run summary and live progress line.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"apistress/internal/metrics"
)

// Report pairs the aggregated stats with the run's identity for serialization.
type Report struct {
	RunID   string `json:"run_id"`
	LogFile string `json:"log_file"`
	metrics.Stats
}

// PrintReport outputs a human-readable summary report.
func PrintReport(w io.Writer, report Report) {
	fmt.Fprintln(w, "\n--- Load Test Results ---")
	fmt.Fprintf(w, "Run ID:            %s\n", report.RunID)
	fmt.Fprintf(w, "Result Log:        %s\n", report.LogFile)
	fmt.Fprintf(w, "Total Requests:    %d\n", report.Total)
	fmt.Fprintf(w, "Successful:        %d\n", report.Successes)
	fmt.Fprintf(w, "Failed:            %d\n", report.Failures)
	fmt.Fprintf(w, "Duration:          %s\n", report.Duration)
	fmt.Fprintf(w, "Requests/sec:      %.2f\n", report.RequestsPerSec)
	fmt.Fprintln(w, "\nLatency:")
	fmt.Fprintf(w, "  Min:             %s\n", report.MinLatency)
	fmt.Fprintf(w, "  Max:             %s\n", report.MaxLatency)
	fmt.Fprintf(w, "  Mean:            %s\n", report.MeanLatency)
	fmt.Fprintf(w, "  P50:             %s\n", report.P50Latency)
	fmt.Fprintf(w, "  P90:             %s\n", report.P90Latency)
	fmt.Fprintf(w, "  P99:             %s\n", report.P99Latency)

	if len(report.StatusCodes) > 0 {
		fmt.Fprintln(w, "\nStatus Codes:")
		codes := make([]string, 0, len(report.StatusCodes))
		for code := range report.StatusCodes {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			fmt.Fprintf(w, "  %s: %d\n", code, report.StatusCodes[code])
		}
	}

	if len(report.Errors) > 0 {
		fmt.Fprintln(w, "\nErrors:")
		names := make([]string, 0, len(report.Errors))
		for name := range report.Errors {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if report.Errors[names[i]] == report.Errors[names[j]] {
				return names[i] < names[j]
			}
			return report.Errors[names[i]] > report.Errors[names[j]]
		})
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %d\n", name, report.Errors[name])
		}
	}
}

// PrintJSONReport outputs a JSON-formatted report.
func PrintJSONReport(w io.Writer, report Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
