package metrics_test

import (
	"testing"

	"apistress/internal/metrics"
)

func TestFriendlyErrorName(t *testing.T) {
	cases := []struct {
		typeName string
		want     string
	}{
		{"", "Unknown error"},
		{"*url.Error", "Request URL error"},
		{"*context.deadlineExceededError", "Context deadline exceeded"},
		{"*net.OpError", "Network error"},
		{"*net.DNSError", "DNS Error (net)"},
	}
	for _, tc := range cases {
		if got := metrics.FriendlyErrorName(tc.typeName); got != tc.want {
			t.Errorf("FriendlyErrorName(%q) = %q, want %q", tc.typeName, got, tc.want)
		}
	}
}
