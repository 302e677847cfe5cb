package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rhuss/codepad/pkg/api"
)

// NetworkError reports a request that never produced a response: the
// connection failed, the context ended or the transport gave up.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ProtocolError reports a response that could not be used: a non-2xx
// status, an unreadable or oversized body, or a body that does not decode
// into the expected shape.
type ProtocolError struct {
	StatusCode int
	// APIError is the decoded backend error body, if it had a known shape.
	APIError *api.APIError
	// Body is the raw response body, truncated.
	Body string
	Err  error
}

func (e *ProtocolError) Error() string {
	switch {
	case e.StatusCode == http.StatusTooManyRequests:
		if e.APIError != nil {
			return fmt.Sprintf("backend at capacity (HTTP 429): %s", e.APIError.Message)
		}
		return "backend at capacity (HTTP 429)"
	case e.StatusCode != 0 && (e.StatusCode < 200 || e.StatusCode > 299):
		if e.APIError != nil {
			return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.APIError.Message)
		}
		if e.Body != "" {
			return fmt.Sprintf("backend returned HTTP %d: %s", e.StatusCode, e.Body)
		}
		return fmt.Sprintf("backend returned HTTP %d", e.StatusCode)
	default:
		return fmt.Sprintf("invalid response: %v", e.Err)
	}
}

func (e *ProtocolError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	if e.APIError != nil {
		return e.APIError
	}
	return nil
}

// IsTransportFailure reports whether err means the request could not
// complete or its response could not be parsed.
func IsTransportFailure(err error) bool {
	var netErr *NetworkError
	var protoErr *ProtocolError
	return errors.As(err, &netErr) || errors.As(err, &protoErr)
}
