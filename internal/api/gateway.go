// Package api is the client's single chokepoint for talking to the backend.
// Every request goes through the Gateway so that bearer-token injection and
// 401 handling are defined once, and each backend resource gets a thin
// service with one method per endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const maxBodySize = 8 << 20

// TokenSource supplies the current bearer token. The session store
// implements it.
type TokenSource interface {
	Token() string
}

// Error is a failed backend call: the HTTP status plus the human-readable
// message from the error envelope (or a generic fallback).
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Gateway issues authenticated HTTP requests against the backend base URL.
type Gateway struct {
	base           string
	client         *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// New returns a gateway for the given base URL, e.g. "/api" when the wasm
// bundle is served behind the host proxy.
func New(base string, tokens TokenSource) *Gateway {
	return &Gateway{
		base:   base,
		client: &http.Client{},
		tokens: tokens,
	}
}

// SetClient swaps the underlying HTTP client (tests, custom timeouts).
func (g *Gateway) SetClient(c *http.Client) { g.client = c }

// OnUnauthorized registers the hook invoked whenever the backend answers
// 401. The wiring clears the session and redirects to the login page; the
// session's Clear guarantees the pair happens exactly once even when several
// in-flight calls get 401 together.
func (g *Gateway) OnUnauthorized(fn func()) { g.onUnauthorized = fn }

// Get fetches path and decodes the JSON response into out.
func (g *Gateway) Get(ctx context.Context, path string, out any) error {
	return g.doJSON(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON and decodes the response into out. A nil body
// sends no payload.
func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	return g.doJSON(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON and decodes the response into out.
func (g *Gateway) Put(ctx context.Context, path string, body, out any) error {
	return g.doJSON(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE. Most delete endpoints answer 204.
func (g *Gateway) Delete(ctx context.Context, path string, out any) error {
	return g.doJSON(ctx, http.MethodDelete, path, nil, out)
}

func (g *Gateway) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
		contentType = "application/json"
	}
	return g.Do(ctx, method, path, reader, contentType, out)
}

// Do executes a request with the standard headers and response handling.
// contentType is left empty for body-less requests and set by the caller for
// multipart uploads (the multipart writer owns the boundary).
func (g *Gateway) Do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	resp, err := g.send(ctx, method, path, body, contentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := g.check(resp); err != nil {
		return err
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Bytes fetches path and returns the raw response body, for file downloads.
func (g *Gateway) Bytes(ctx context.Context, path string) ([]byte, error) {
	resp, err := g.send(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := g.check(resp); err != nil {
		return nil, err
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
}

func (g *Gateway) send(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, g.base+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	// The header is sent even with an empty token; the backend rejects it.
	token := ""
	if g.tokens != nil {
		token = g.tokens.Token()
	}
	if token != "" {
		token = "Bearer " + token
	}
	req.Header.Set("Authorization", token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// check maps non-2xx responses to *Error and runs the 401 hook.
func (g *Gateway) check(resp *http.Response) error {
	if resp.StatusCode < 400 {
		return nil
	}
	apiErr := decodeError(resp)
	if resp.StatusCode == http.StatusUnauthorized && g.onUnauthorized != nil {
		g.onUnauthorized()
	}
	return apiErr
}

func decodeError(resp *http.Response) *Error {
	fallback := fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return &Error{Status: resp.StatusCode, Message: fallback}
	}

	var envelope struct {
		Message string `json:"message"`
		Err     *struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Message != "" {
			return &Error{Status: resp.StatusCode, Message: envelope.Message}
		}
		if envelope.Err != nil && envelope.Err.Message != "" {
			return &Error{Status: resp.StatusCode, Message: envelope.Err.Message}
		}
	}
	return &Error{Status: resp.StatusCode, Message: fallback}
}
