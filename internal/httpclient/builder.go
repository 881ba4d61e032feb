package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"apistress/internal/config"
)

// RequestBuilder validates the target request shape once and builds an
// identical *http.Request for every executor invocation.
type RequestBuilder struct {
	method  string
	target  string
	headers http.Header
}

// NewRequestBuilder prepares a builder from configuration. Header keys are
// canonicalized and rejected if they contain CR/LF; query parameters are
// encoded into the target URL up front.
func NewRequestBuilder(cfg *config.Config) (*RequestBuilder, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	target := strings.TrimSpace(cfg.TargetURL)
	if target == "" {
		return nil, errors.New("target URL is required")
	}

	method := strings.TrimSpace(cfg.Method)
	if method == "" {
		method = http.MethodGet
	}
	method = strings.ToUpper(method)

	if len(cfg.Params) > 0 {
		parsed, err := url.Parse(target)
		if err != nil {
			return nil, fmt.Errorf("invalid target URL: %w", err)
		}
		query := parsed.Query()
		for key, value := range cfg.Params {
			if strings.TrimSpace(key) == "" {
				return nil, fmt.Errorf("invalid query parameter key %q", key)
			}
			query.Set(key, value)
		}
		parsed.RawQuery = query.Encode()
		target = parsed.String()
	}

	headers := http.Header{}
	for key, value := range cfg.Headers {
		trimmedKey := strings.TrimSpace(key)
		if trimmedKey == "" {
			return nil, fmt.Errorf("invalid header key %q", key)
		}
		if strings.ContainsAny(trimmedKey, "\r\n") {
			return nil, fmt.Errorf("invalid header key %q", key)
		}
		canonicalKey := http.CanonicalHeaderKey(trimmedKey)
		if strings.ContainsAny(value, "\r\n") {
			return nil, fmt.Errorf("invalid header value for %s", canonicalKey)
		}
		headers.Set(canonicalKey, value)
	}

	return &RequestBuilder{
		method:  method,
		target:  target,
		headers: headers,
	}, nil
}

// Method returns the normalized (uppercase) HTTP verb.
func (b *RequestBuilder) Method() string { return b.method }

// Target returns the target URL with query parameters applied.
func (b *RequestBuilder) Target() string { return b.target }

func (b *RequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	if b == nil {
		return nil, errors.New("builder cannot be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, b.method, b.target, nil)
	if err != nil {
		return nil, err
	}

	if len(b.headers) > 0 {
		req.Header = make(http.Header, len(b.headers))
		for key, values := range b.headers {
			for _, val := range values {
				req.Header.Add(key, val)
			}
		}
	}

	return req, nil
}
