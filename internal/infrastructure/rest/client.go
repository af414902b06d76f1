// Package rest implements the remote storefront API client: a thin JSON
// request helper plus a Gateway that speaks the Petunia wire protocol.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultTimeout = 15 * time.Second

// RequestError is the only error type the gateway returns for remote,
// application, or transport failures. Status is the HTTP status code, or 0
// when the request never got a response.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// errorEnvelope matches the backend's error payload.
type errorEnvelope struct {
	Message string `json:"message"`
}

// Client issues JSON requests against a fixed base URL.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient builds a Client. A non-positive timeout falls back to a default;
// the original app configured none and hung forever on a dead backend.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

// do performs one call. On 2xx the body is decoded into out (when non-nil);
// anything else becomes a *RequestError carrying the server's message when
// the envelope provides one.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Message: fmt.Sprintf("encode request: %v", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RequestError{Message: fmt.Sprintf("build request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		RequestsTotal.WithLabelValues(method, "transport_error").Inc()
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return &RequestError{Message: err.Error()}
	}
	defer resp.Body.Close()
	RequestDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		RequestsTotal.WithLabelValues(method, "transport_error").Inc()
		return &RequestError{Status: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		RequestsTotal.WithLabelValues(method, "error").Inc()
		var envelope errorEnvelope
		msg := fmt.Sprintf("request failed with status %d", resp.StatusCode)
		if json.Unmarshal(data, &envelope) == nil && envelope.Message != "" {
			msg = envelope.Message
		}
		c.log.Debug().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Str("message", msg).Msg("api error")
		return &RequestError{Status: resp.StatusCode, Message: msg}
	}

	RequestsTotal.WithLabelValues(method, "success").Inc()
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &RequestError{Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return nil
}
