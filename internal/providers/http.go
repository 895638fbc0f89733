package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// maxErrorBodySize limits the amount of response body read for error reporting.
const maxErrorBodySize = 64 * 1024

// NewHTTPClient returns an instrumented client with an overall request timeout.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// readBodyForError reads at most 64KB of the response body for error reporting.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// GetJSON issues a GET to reqURL and decodes a 200 response into out.
// Failures come back as *Error classified for provider.
func GetJSON(ctx context.Context, client *http.Client, provider, reqURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return NewError(provider, KindUpstreamError, fmt.Errorf("create request failed: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return ClassifyTransport(provider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ClassifyStatus(provider, resp.StatusCode, readBodyForError(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return NewError(provider, KindUpstreamError, fmt.Errorf("failed to decode response: %w", err))
	}
	return nil
}

// ClassifyTransport maps a failed round trip to Timeout or NetworkFailure.
// The request URL is dropped from the message since it may carry an API key.
func ClassifyTransport(provider string, err error) *Error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewError(provider, KindTimeout, err)
	}
	return NewError(provider, KindNetworkFailure, err)
}

// ClassifyStatus maps a non 200 response: 401 and 403 are AuthFailure,
// 408 and 504 are Timeout, everything else UpstreamError.
func ClassifyStatus(provider string, status int, body []byte) *Error {
	err := fmt.Errorf("request failed with status %d: %s", status, string(body))
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return NewError(provider, KindAuthFailure, err)
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return NewError(provider, KindTimeout, err)
	default:
		return NewError(provider, KindUpstreamError, err)
	}
}
