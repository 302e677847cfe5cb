// Package client implements the HTTP client for a codepad execution service.
//
// Execute is the execution contract: POST {language, code, input_data} to
// the execute path and decode {output, error}. The judge methods talk to the
// problem catalogue and submission endpoints of the same service.
//
// Failures are typed. *NetworkError means no response arrived, *ProtocolError
// means the response was unusable. Request validation failures are
// *api.APIError and never reach the network.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/debug"
	"github.com/rhuss/codepad/pkg/observability"
)

const (
	// DefaultExecutePath is the route of the execution endpoint.
	DefaultExecutePath = "/api/execute"

	maxResponseBytes = 10 << 20
	maxErrorBody     = 512
)

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client calls a codepad execution service.
type Client struct {
	baseURL     string
	executePath string
	timeout     time.Duration
	httpClient  Doer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. WithTimeout has no
// effect when a custom client is supplied.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithExecutePath overrides DefaultExecutePath.
func WithExecutePath(path string) Option {
	return func(c *Client) { c.executePath = path }
}

// WithTimeout bounds each request. Zero means no limit, so a hung backend
// blocks until the caller's context ends.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid backend URL %q", baseURL)
	}

	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		executePath: DefaultExecutePath,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	if !strings.HasPrefix(c.executePath, "/") {
		c.executePath = "/" + c.executePath
	}
	return c, nil
}

// BaseURL returns the service root the client was created with.
func (c *Client) BaseURL() string { return c.baseURL }

// Execute submits code for execution and returns the decoded result.
// A result with Error set is a successful call: the backend ran the code
// and reported a failure in Output.
func (c *Client) Execute(ctx context.Context, req *api.ExecutionRequest) (*api.ExecutionResult, error) {
	if apiErr := api.ValidateExecutionRequest(req); apiErr != nil {
		lang := "unknown"
		if req != nil && req.Language.Supported() {
			lang = string(req.Language)
		}
		observability.ObserveExecution(lang, observability.OutcomeRejected, 0)
		return nil, apiErr
	}

	observability.ExecutionsInFlight.Inc()
	defer observability.ExecutionsInFlight.Dec()

	start := time.Now()
	var result api.ExecutionResult
	err := c.doJSON(ctx, http.MethodPost, c.executePath, req, &result)

	outcome := observability.OutcomeOK
	switch {
	case err != nil:
		outcome = observability.OutcomeFailure
	case bool(result.Error):
		outcome = observability.OutcomeError
	}
	observability.ObserveExecution(string(req.Language), outcome, time.Since(start))

	if err != nil {
		slog.Warn("execution failed", "language", req.Language, "error", err)
		return nil, err
	}
	debug.Log("client", "execution finished",
		"language", req.Language,
		"error", bool(result.Error),
		"output_len", len(result.Output),
		"duration", time.Since(start),
	)
	return &result, nil
}

// doJSON sends body (if non-nil) as JSON and decodes a 2xx response into out.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	target := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		debug.Log("client", "request", "method", method, "url", target, "bytes", len(data))
		debug.Raw("client", fmt.Sprintf("%s %s\n%s", method, target, data))
		reqBody = bytes.NewReader(data)
	} else {
		debug.Log("client", "request", "method", method, "url", target)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return &NetworkError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return &ProtocolError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	if len(respBody) > maxResponseBytes {
		return &ProtocolError{Err: fmt.Errorf("response exceeds %d bytes", maxResponseBytes)}
	}
	debug.Log("client", "response", "status", resp.StatusCode, "bytes", len(respBody))
	debug.Raw("client", fmt.Sprintf("HTTP %d\n%s", resp.StatusCode, respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProtocolError{
			StatusCode: resp.StatusCode,
			APIError:   api.ParseErrorBody(respBody),
			Body:       debug.Truncate(strings.TrimSpace(string(respBody)), maxErrorBody),
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return &ProtocolError{
			StatusCode: resp.StatusCode,
			Body:       debug.Truncate(string(respBody), maxErrorBody),
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}
