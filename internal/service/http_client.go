package service

import (
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultClientTimeout = 10 * time.Second

// maxErrorBody bounds how much of a failed upstream response ends up in logs
const maxErrorBody = 512

// NewHTTPClient returns the client used for outbound calls. Spans are
// emitted through the global tracer provider.
func NewHTTPClient(timeout time.Duration, opts ...otelhttp.Option) *http.Client {
	if timeout <= 0 {
		timeout = defaultClientTimeout
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport, opts...),
	}
}

// NewWebhookHTTPClient returns a client for URLs that carry a secret. Its
// requests produce no client spans, so the URL never reaches url.full.
func NewWebhookHTTPClient(timeout time.Duration) *http.Client {
	return NewHTTPClient(timeout, otelhttp.WithFilter(func(*http.Request) bool { return false }))
}

// readErrorBody reads a bounded prefix of a response body for diagnostics
func readErrorBody(r io.Reader) string {
	body, _ := io.ReadAll(io.LimitReader(r, maxErrorBody))
	return string(body)
}
