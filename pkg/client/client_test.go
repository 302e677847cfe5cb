package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/observability"
)

func TestClient_Execute(t *testing.T) {
	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantErr    string
		wantOutput string
		wantError  bool
	}{
		{
			name: "successful execution",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"output":"Hello, Ada!\n"}`))
			},
			wantOutput: "Hello, Ada!\n",
		},
		{
			name: "backend reported error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"output":"NameError: name 'x' is not defined","error":true}`))
			},
			wantOutput: "NameError: name 'x' is not defined",
			wantError:  true,
		},
		{
			name: "string error indicator",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"output":"boom","error":"RuntimeError"}`))
			},
			wantOutput: "boom",
			wantError:  true,
		},
		{
			name: "empty output",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"output":"","error":false,"execution_time":3,"memory_used":0}`))
			},
			wantOutput: "",
		},
		{
			name: "backend at capacity",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
				w.Write([]byte(`{"error":{"type":"too_many_requests","message":"slow down"}}`))
			},
			wantErr: "backend at capacity (HTTP 429): slow down",
		},
		{
			name: "server error with fastapi detail",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`{"detail":"Execution error: disk full"}`))
			},
			wantErr: "backend returned HTTP 500: Execution error: disk full",
		},
		{
			name: "server error with plain body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte("upstream down\n"))
			},
			wantErr: "backend returned HTTP 502: upstream down",
		},
		{
			name: "invalid JSON response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{invalid json`))
			},
			wantErr: "invalid response: decode response",
		},
		{
			name: "missing output field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"error":false}`))
			},
			wantErr: "response has no output field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c, err := New(srv.URL)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			res, err := c.Execute(context.Background(), &api.ExecutionRequest{
				Language: api.LanguagePython,
				Code:     "print(1)",
			})

			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
				}
				var protoErr *ProtocolError
				if !errors.As(err, &protoErr) {
					t.Errorf("error %T should be a *ProtocolError", err)
				}
				if !IsTransportFailure(err) {
					t.Error("IsTransportFailure should be true")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if res.Output != tt.wantOutput {
				t.Errorf("output = %q, want %q", res.Output, tt.wantOutput)
			}
			if bool(res.Error) != tt.wantError {
				t.Errorf("error flag = %v, want %v", res.Error, tt.wantError)
			}
		})
	}
}

func TestClient_Execute_WireFormat(t *testing.T) {
	var (
		gotMethod, gotPath, gotContentType string
		gotBody                            map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		data, _ := io.ReadAll(r.Body)
		json.Unmarshal(data, &gotBody)
		w.Write([]byte(`{"output":"ok"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL + "/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Execute(context.Background(), &api.ExecutionRequest{Language: api.LanguageJavaScript}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/api/execute" {
		t.Errorf("request = %s %s, want POST /api/execute", gotMethod, gotPath)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}
	want := map[string]any{"language": "javascript", "code": "", "input_data": ""}
	for k, v := range want {
		got, ok := gotBody[k]
		if !ok {
			t.Errorf("body missing %q", k)
			continue
		}
		if got != v {
			t.Errorf("body[%q] = %v, want %v", k, got, v)
		}
	}
}

func TestClient_Execute_CustomPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v2/run" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"output":"ok"}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL, WithExecutePath("v2/run"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.Execute(context.Background(), &api.ExecutionRequest{Language: api.LanguagePython}); err != nil {
		t.Errorf("Execute: %v", err)
	}
}

func TestClient_Execute_RejectsInvalidRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	_, err := c.Execute(context.Background(), &api.ExecutionRequest{Language: "ruby", Code: "puts 1"})

	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *api.APIError", err)
	}
	if IsTransportFailure(err) {
		t.Error("validation errors are not transport failures")
	}
	if called {
		t.Error("no request should be sent for an unsupported language")
	}
}

func TestClient_Execute_RejectedLanguageLabel(t *testing.T) {
	tests := []struct {
		name  string
		req   *api.ExecutionRequest
		label string
	}{
		{"nil request", nil, "unknown"},
		{"empty language", &api.ExecutionRequest{Code: "x"}, "unknown"},
		{"unsupported language", &api.ExecutionRequest{Language: "cobol-rejected", Code: "x"}, "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := New("http://127.0.0.1:1")
			before := rejectedCount(t, tt.label)
			if _, err := c.Execute(context.Background(), tt.req); err == nil {
				t.Fatal("expected validation error")
			}
			if delta := rejectedCount(t, tt.label) - before; delta != 1 {
				t.Errorf("rejected[%s] delta = %f, want 1", tt.label, delta)
			}
		})
	}

	// Caller-supplied names must not become label values.
	ch := make(chan prometheus.Metric, 64)
	observability.ExecutionsTotal.Collect(ch)
	close(ch)
	for m := range ch {
		var out dto.Metric
		if err := m.Write(&out); err != nil {
			t.Fatalf("writing metric: %v", err)
		}
		for _, lp := range out.GetLabel() {
			if lp.GetValue() == "cobol-rejected" {
				t.Errorf("unsupported language leaked into labels: %v", out.GetLabel())
			}
		}
	}
}

func rejectedCount(t *testing.T, language string) float64 {
	t.Helper()
	var m dto.Metric
	if err := observability.ExecutionsTotal.WithLabelValues(language, observability.OutcomeRejected).Write(&m); err != nil {
		t.Fatalf("writing counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func TestClient_Execute_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	c, _ := New(srv.URL)
	_, err := c.Execute(ctx, &api.ExecutionRequest{Language: api.LanguagePython, Code: "while True: pass"})

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error should wrap context.DeadlineExceeded: %v", err)
	}
}

func TestClient_Execute_ClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	c, _ := New(srv.URL, WithTimeout(100*time.Millisecond))
	_, err := c.Execute(context.Background(), &api.ExecutionRequest{Language: api.LanguagePython})
	if !IsTransportFailure(err) {
		t.Errorf("error = %v, want a transport failure", err)
	}
}

func TestClient_Execute_Unreachable(t *testing.T) {
	c, _ := New("http://localhost:1")
	_, err := c.Execute(context.Background(), &api.ExecutionRequest{Language: api.LanguagePython, Code: "print(1)"})

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
	if !strings.HasPrefix(err.Error(), "network error: ") {
		t.Errorf("error = %q, want network error prefix", err)
	}
}

func TestClient_Execute_OversizedResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output":"`))
		w.Write([]byte(strings.Repeat("a", maxResponseBytes)))
		w.Write([]byte(`"}`))
	}))
	defer srv.Close()

	c, _ := New(srv.URL)
	_, err := c.Execute(context.Background(), &api.ExecutionRequest{Language: api.LanguagePython})
	if err == nil || !strings.Contains(err.Error(), "response exceeds") {
		t.Errorf("error = %v, want size limit error", err)
	}
}

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(r *http.Request) (*http.Response, error) { return f(r) }

func TestClient_WithHTTPClient(t *testing.T) {
	var gotURL string
	d := doerFunc(func(r *http.Request) (*http.Response, error) {
		gotURL = r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(`{"output":"stub"}`)),
			Header:     make(http.Header),
		}, nil
	})

	c, err := New("https://exec.example.com", WithHTTPClient(d))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := c.Execute(context.Background(), &api.ExecutionRequest{Language: api.LanguagePython})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.Output != "stub" {
		t.Errorf("output = %q, want stub", res.Output)
	}
	if gotURL != "https://exec.example.com/api/execute" {
		t.Errorf("url = %q", gotURL)
	}
}

func TestNew_InvalidURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8000", "ftp://host", "http://"} {
		if _, err := New(raw); err == nil {
			t.Errorf("New(%q) expected error", raw)
		}
	}
}
