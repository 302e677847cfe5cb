package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ErrorType represents the category of an API error.
type ErrorType string

const (
	ErrorTypeServerError     ErrorType = "server_error"
	ErrorTypeInvalidRequest  ErrorType = "invalid_request"
	ErrorTypeNotFound        ErrorType = "not_found"
	ErrorTypeTooManyRequests ErrorType = "too_many_requests"
)

// APIError represents a structured API error with type, param, and message.
type APIError struct {
	Type    ErrorType `json:"type"`
	Param   string    `json:"param,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("%s: %s (param: %s)", e.Type, e.Message, e.Param)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ErrorResponse wraps an APIError for JSON serialization as the top-level error response.
type ErrorResponse struct {
	Error *APIError `json:"error"`
}

// NewInvalidRequestError creates an APIError for invalid request parameters.
func NewInvalidRequestError(param, message string) *APIError {
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: message,
	}
}

// NewNotFoundError creates an APIError for resources that cannot be found.
func NewNotFoundError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeNotFound,
		Message: message,
	}
}

// NewServerError creates an APIError for internal server errors.
func NewServerError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeServerError,
		Message: message,
	}
}

// NewTooManyRequestsError creates an APIError for rate limiting.
func NewTooManyRequestsError(message string) *APIError {
	return &APIError{
		Type:    ErrorTypeTooManyRequests,
		Message: message,
	}
}

// ParseErrorBody extracts a human-readable error from a non-2xx response body.
//
// Two shapes are recognised: {"error": {"type", "message"}} as written by
// codepad's own servers, and FastAPI's {"detail": "..."} or
// {"detail": [{"loc": [...], "msg": "..."}]}. It returns nil when the body
// matches neither.
func ParseErrorBody(body []byte) *APIError {
	var wrapped ErrorResponse
	if err := json.Unmarshal(body, &wrapped); err == nil && wrapped.Error != nil && wrapped.Error.Message != "" {
		return wrapped.Error
	}

	var detail struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &detail); err != nil || len(detail.Detail) == 0 {
		return nil
	}

	var msg string
	if err := json.Unmarshal(detail.Detail, &msg); err == nil {
		return &APIError{Type: ErrorTypeInvalidRequest, Message: msg}
	}

	var items []struct {
		Loc []any  `json:"loc"`
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(detail.Detail, &items); err != nil || len(items) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(items))
	param := ""
	for _, it := range items {
		msgs = append(msgs, it.Msg)
		if param == "" && len(it.Loc) > 0 {
			param = fmt.Sprint(it.Loc[len(it.Loc)-1])
		}
	}
	return &APIError{
		Type:    ErrorTypeInvalidRequest,
		Param:   param,
		Message: strings.Join(msgs, "; "),
	}
}
