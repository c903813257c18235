package contactform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrymomot/folio/pkg/contact"
)

// IdempotencyHeader carries the per-submission token to the relay.
const IdempotencyHeader = "Idempotency-Key"

const maxErrorBody = 4 << 10

// Transport delivers one submission. Implementations make exactly one
// attempt; retrying is left to the user.
type Transport interface {
	Submit(ctx context.Context, s contact.Submission, idempotencyKey string) error
}

// TransportFunc adapts a function to Transport.
type TransportFunc func(ctx context.Context, s contact.Submission, idempotencyKey string) error

func (f TransportFunc) Submit(ctx context.Context, s contact.Submission, idempotencyKey string) error {
	return f(ctx, s, idempotencyKey)
}

// HTTPTransport posts submissions as JSON to the relay endpoint.
type HTTPTransport struct {
	client   *http.Client
	endpoint string
}

// HTTPOption configures an HTTPTransport.
type HTTPOption func(*HTTPTransport)

// WithHTTPClient replaces the default client (30s timeout).
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(t *HTTPTransport) {
		if c != nil {
			t.client = c
		}
	}
}

// NewHTTPTransport creates a transport posting to endpoint,
// e.g. "https://example.com/api/contact".
func NewHTTPTransport(endpoint string, opts ...HTTPOption) *HTTPTransport {
	t := &HTTPTransport{
		client:   &http.Client{Timeout: 30 * time.Second},
		endpoint: endpoint,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Submit implements Transport. Only a 200 response counts as success; the
// plain-text body of any other response is kept in a StatusError.
func (t *HTTPTransport) Submit(ctx context.Context, s contact.Submission, idempotencyKey string) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("contactform: encode submission: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("contactform: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if idempotencyKey != "" {
		req.Header.Set(IdempotencyHeader, idempotencyKey)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("contactform: send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
