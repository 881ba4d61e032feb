// Package result defines the per-request record produced by a load test run
// and the sink that persists records as newline-delimited JSON.
package result

import (
	"encoding/json"
	"math"
	"time"

	"github.com/tidwall/gjson"
)

// Result captures one request's outcome. Exactly one of StatusCode or Error
// is populated: a completed exchange always carries a status code (any code,
// including 4xx/5xx), a transport or timeout failure carries an error string.
type Result struct {
	RequestID       int               `json:"request_id"`
	Timestamp       time.Time         `json:"timestamp"`
	URL             string            `json:"url"`
	Method          string            `json:"method"`
	Headers         map[string]string `json:"headers"`
	Params          map[string]string `json:"params"`
	StatusCode      *int              `json:"status_code,omitempty"`
	ResponseTimeMs  float64           `json:"response_time_ms"`
	Success         bool              `json:"success"`
	ResponseHeaders map[string]string `json:"response_headers,omitempty"`
	ContentLength   *int64            `json:"content_length,omitempty"`
	ResponseBody    any               `json:"response_body,omitempty"`
	Error           string            `json:"error,omitempty"`
}

// Completed marks the result as a finished HTTP exchange.
// Success reflects a 2xx status; non-2xx codes are still completed exchanges.
func (r *Result) Completed(statusCode int, headers map[string]string, body []byte) {
	r.StatusCode = &statusCode
	r.Success = statusCode >= 200 && statusCode < 300
	r.ResponseHeaders = headers
	length := int64(len(body))
	r.ContentLength = &length
	r.ResponseBody = DecodeBody(body)
}

// Failed marks the result as a transport-level failure. No status code is
// recorded; the error text is the only diagnostic.
func (r *Result) Failed(err error) {
	r.Success = false
	r.Error = err.Error()
}

// DecodeBody returns the body as a decoded JSON value when it is valid JSON,
// otherwise as the raw text. It never fails; malformed JSON degrades to text.
func DecodeBody(body []byte) any {
	if gjson.ValidBytes(body) {
		var v any
		if err := json.Unmarshal(body, &v); err == nil {
			return v
		}
	}
	return string(body)
}

// RoundMs converts a duration to milliseconds rounded to two decimal places.
func RoundMs(d time.Duration) float64 {
	ms := float64(d) / float64(time.Millisecond)
	return math.Round(ms*100) / 100
}
