// Package transport builds and sends requests to the pilot auth server and
// hands back raw responses. It never interprets status codes.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Transport issues GET and POST requests relative to a base host.
type Transport struct {
	host   string
	doer   Doer
	logger *slog.Logger
}

// Option configures a Transport.
type Option func(*Transport)

// WithDoer replaces the default http.Client.
func WithDoer(d Doer) Option {
	return func(t *Transport) {
		t.doer = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(t *Transport) {
		t.logger = l
	}
}

// New creates a Transport for host.
func New(host string, opts ...Option) *Transport {
	t := &Transport{
		host:   host,
		doer:   http.DefaultClient,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Get issues a GET to host/subPath. The bearer header is attached only when
// token is non-empty.
func (t *Transport) Get(ctx context.Context, subPath, token string) (*Response, error) {
	headers := Headers{}
	if token != "" {
		headers = headers.WithBearer(token)
	}
	return t.send(ctx, http.MethodGet, subPath, nil, headers)
}

// Post encodes body as JSON and POSTs it to host/subPath.
func (t *Transport) Post(ctx context.Context, subPath string, body any, token string) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}
	headers := JSONHeaders()
	if token != "" {
		headers = headers.WithBearer(token)
	}
	return t.send(ctx, http.MethodPost, subPath, bytes.NewReader(payload), headers)
}

func (t *Transport) send(ctx context.Context, method, subPath string, body io.Reader, headers Headers) (*Response, error) {
	target := JoinPaths([]string{t.host, subPath}, Separator)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, subPath, err)
	}
	headers.apply(req)

	resp, err := t.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, subPath, err)
	}
	t.logger.DebugContext(ctx, "request sent", "method", method, "url", target, "status", resp.StatusCode)

	return &Response{
		StatusCode: resp.StatusCode,
		body:       resp.Body,
	}, nil
}
