package result_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"apistress/internal/result"
)

func TestDecodeBodyValidJSON(t *testing.T) {
	decoded := result.DecodeBody([]byte(`{"id": 7, "title": "hello"}`))
	obj, ok := decoded.(map[string]any)
	if !ok {
		t.Fatalf("expected decoded object, got %T", decoded)
	}
	if obj["title"] != "hello" {
		t.Fatalf("expected title hello, got %v", obj["title"])
	}
}

func TestDecodeBodyArray(t *testing.T) {
	decoded := result.DecodeBody([]byte(`[1, 2, 3]`))
	if _, ok := decoded.([]any); !ok {
		t.Fatalf("expected decoded array, got %T", decoded)
	}
}

func TestDecodeBodyInvalidJSONStoredVerbatim(t *testing.T) {
	decoded := result.DecodeBody([]byte("plain text"))
	text, ok := decoded.(string)
	if !ok {
		t.Fatalf("expected raw text, got %T", decoded)
	}
	if text != "plain text" {
		t.Fatalf("expected body stored verbatim, got %q", text)
	}
}

func TestDecodeBodyEmpty(t *testing.T) {
	decoded := result.DecodeBody(nil)
	if text, ok := decoded.(string); !ok || text != "" {
		t.Fatalf("expected empty string, got %T %v", decoded, decoded)
	}
}

func TestRoundMs(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want float64
	}{
		{0, 0},
		{1500 * time.Microsecond, 1.5},
		{1234567 * time.Nanosecond, 1.23},
		{2 * time.Second, 2000},
	}
	for _, tc := range cases {
		if got := result.RoundMs(tc.d); got != tc.want {
			t.Errorf("RoundMs(%s) = %v, want %v", tc.d, got, tc.want)
		}
	}
}

func TestCompletedSuccessFlag(t *testing.T) {
	cases := []struct {
		code    int
		success bool
	}{
		{199, false},
		{200, true},
		{204, true},
		{299, true},
		{300, false},
		{404, false},
		{500, false},
	}
	for _, tc := range cases {
		var r result.Result
		r.Completed(tc.code, nil, []byte("body"))
		if r.Success != tc.success {
			t.Errorf("status %d: success = %v, want %v", tc.code, r.Success, tc.success)
		}
		if r.StatusCode == nil || *r.StatusCode != tc.code {
			t.Errorf("status %d: status code not recorded", tc.code)
		}
		if r.ContentLength == nil || *r.ContentLength != 4 {
			t.Errorf("status %d: content length not recorded", tc.code)
		}
	}
}

func TestExactlyOneOfStatusOrError(t *testing.T) {
	var completed result.Result
	completed.Completed(500, nil, nil)
	if completed.StatusCode == nil || completed.Error != "" {
		t.Fatalf("completed exchange must carry a status code and no error")
	}

	var failed result.Result
	failed.Failed(errors.New("connection refused"))
	if failed.StatusCode != nil || failed.Error == "" {
		t.Fatalf("failed exchange must carry an error and no status code")
	}
	if failed.Success {
		t.Fatalf("failed exchange cannot be a success")
	}
}

func TestJSONOmitsAbsentFields(t *testing.T) {
	var failed result.Result
	failed.RequestID = 1
	failed.Failed(errors.New("dial tcp: connection refused"))
	data, err := json.Marshal(&failed)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), "status_code") {
		t.Fatalf("failure record must omit status_code: %s", data)
	}
	if !strings.Contains(string(data), `"error"`) {
		t.Fatalf("failure record must include error: %s", data)
	}

	var ok result.Result
	ok.RequestID = 2
	ok.Completed(200, map[string]string{"Content-Type": "application/json"}, []byte(`{}`))
	data, err = json.Marshal(&ok)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(data), `"error"`) {
		t.Fatalf("success record must omit error: %s", data)
	}
	if !strings.Contains(string(data), `"status_code":200`) {
		t.Fatalf("success record must include status_code: %s", data)
	}
}
