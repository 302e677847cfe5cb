package api

import (
	"encoding/json"
	"testing"
)

func TestAPIErrorInterface(t *testing.T) {
	var _ error = &APIError{}
}

func TestAPIErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			"with param",
			&APIError{Type: ErrorTypeInvalidRequest, Param: "language", Message: "is required"},
			"invalid_request: is required (param: language)",
		},
		{
			"without param",
			&APIError{Type: ErrorTypeServerError, Message: "internal failure"},
			"server_error: internal failure",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("APIError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *APIError
		wantType  ErrorType
		wantParam string
	}{
		{"invalid request", NewInvalidRequestError("language", "is required"), ErrorTypeInvalidRequest, "language"},
		{"not found", NewNotFoundError("problem not found"), ErrorTypeNotFound, ""},
		{"server error", NewServerError("internal failure"), ErrorTypeServerError, ""},
		{"too many requests", NewTooManyRequestsError("rate limit exceeded"), ErrorTypeTooManyRequests, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", tt.err.Type, tt.wantType)
			}
			if tt.err.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", tt.err.Param, tt.wantParam)
			}
		})
	}
}

func TestErrorResponseJSON(t *testing.T) {
	resp := ErrorResponse{Error: NewInvalidRequestError("language", "is required")}
	data, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got ErrorResponse
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.Error.Type != ErrorTypeInvalidRequest {
		t.Errorf("Error.Type = %q, want %q", got.Error.Type, ErrorTypeInvalidRequest)
	}
	if got.Error.Param != "language" {
		t.Errorf("Error.Param = %q, want %q", got.Error.Param, "language")
	}
}

func TestAPIErrorOmitEmpty(t *testing.T) {
	err := &APIError{Type: ErrorTypeServerError, Message: "fail"}
	data, marshalErr := json.Marshal(err)
	if marshalErr != nil {
		t.Fatalf("Marshal: %v", marshalErr)
	}

	var m map[string]interface{}
	if unmarshalErr := json.Unmarshal(data, &m); unmarshalErr != nil {
		t.Fatalf("Unmarshal: %v", unmarshalErr)
	}

	if _, ok := m["param"]; ok {
		t.Error("empty param should be omitted from JSON")
	}
}

func TestParseErrorBody(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNil   bool
		wantType  ErrorType
		wantParam string
		wantMsg   string
	}{
		{
			name:     "wrapped error",
			body:     `{"error":{"type":"too_many_requests","message":"slow down"}}`,
			wantType: ErrorTypeTooManyRequests,
			wantMsg:  "slow down",
		},
		{
			name:     "fastapi string detail",
			body:     `{"detail":"Problem not found"}`,
			wantType: ErrorTypeInvalidRequest,
			wantMsg:  "Problem not found",
		},
		{
			name:      "fastapi validation detail",
			body:      `{"detail":[{"loc":["body","language"],"msg":"field required","type":"value_error.missing"},{"loc":["body","code"],"msg":"field required"}]}`,
			wantType:  ErrorTypeInvalidRequest,
			wantParam: "language",
			wantMsg:   "field required; field required",
		},
		{name: "plain text", body: `Internal Server Error`, wantNil: true},
		{name: "unrelated json", body: `{"status":"down"}`, wantNil: true},
		{name: "empty detail list", body: `{"detail":[]}`, wantNil: true},
		{name: "wrapped without message", body: `{"error":{"type":"server_error"}}`, wantNil: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseErrorBody([]byte(tt.body))
			if tt.wantNil {
				if got != nil {
					t.Fatalf("ParseErrorBody() = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("ParseErrorBody() = nil, want error")
			}
			if got.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", got.Type, tt.wantType)
			}
			if got.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", got.Param, tt.wantParam)
			}
			if got.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMsg)
			}
		})
	}
}
