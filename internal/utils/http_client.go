package utils

import (
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// RequestIDHeader carries the per-call identifier on outbound requests.
const RequestIDHeader = "X-Request-ID"

// HTTPClient is a wrapper around resty.Client preconfigured for the admin
// API: base URL, optional timeout, JSON accept header and a request id on
// every call.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client for baseURL. A zero timeout
// leaves the transport default in place (no client-side timeout).
//
// The request id is taken from the request context (see WithRequestID) or
// generated with ids when absent.
func NewHTTPClient(baseURL string, timeout time.Duration, ids *UUIDGenerator) *HTTPClient {
	cli := resty.New().
		SetBaseURL(NormalizeBaseURL(baseURL)).
		SetHeader("Accept", "application/json")
	if timeout > 0 {
		cli.SetTimeout(timeout)
	}
	if ids == nil {
		ids = NewUUIDGenerator()
	}

	cli.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
		if r.Header.Get(RequestIDHeader) != "" {
			return nil
		}
		id, ok := RequestIDFromContext(r.Context())
		if !ok {
			id = ids.Generate()
		}
		r.SetHeader(RequestIDHeader, id)
		return nil
	})

	return &HTTPClient{Client: cli}
}

// NormalizeBaseURL adds an http:// scheme when missing and trims trailing
// slashes, so "localhost:8080/" becomes "http://localhost:8080".
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	return strings.TrimRight(raw, "/")
}
