package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimitPerClient(t *testing.T) {
	handler := RateLimit(1, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(ip string) int {
		req := httptest.NewRequest("POST", "/api/execute", nil)
		req.RemoteAddr = ip + ":5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	for i := 0; i < 2; i++ {
		if code := do("10.0.0.1"); code != http.StatusOK {
			t.Fatalf("request %d within burst = %d, want 200", i, code)
		}
	}
	if code := do("10.0.0.1"); code != http.StatusTooManyRequests {
		t.Errorf("request over burst = %d, want 429", code)
	}
	if code := do("10.0.0.2"); code != http.StatusOK {
		t.Errorf("other client = %d, want 200", code)
	}
}

func TestRateLimitDisabled(t *testing.T) {
	handler := RateLimit(0, 0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for i := 0; i < 50; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d, want 200", i, rec.Code)
		}
	}
}

func TestClientLimiterEvictsIdle(t *testing.T) {
	l := NewClientLimiter(1, 1)
	now := time.Unix(1000, 0)
	l.now = func() time.Time { return now }

	l.Allow("a")
	l.Allow("b")
	if l.Len() != 2 {
		t.Fatalf("Len = %d, want 2", l.Len())
	}

	now = now.Add(idleLimiterTTL + time.Second)
	if !l.Allow("c") {
		t.Error("new client should be allowed")
	}
	if l.Len() != 1 {
		t.Errorf("Len after eviction = %d, want 1", l.Len())
	}
}

func TestClientLimiterRefills(t *testing.T) {
	l := NewClientLimiter(1, 1)
	now := time.Unix(1000, 0)
	l.now = func() time.Time { return now }

	if !l.Allow("a") {
		t.Fatal("first request should pass")
	}
	if l.Allow("a") {
		t.Fatal("second request should be limited")
	}
	now = now.Add(time.Second)
	if !l.Allow("a") {
		t.Error("token should refill after one second")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name, remote, forwarded, want string
	}{
		{"remote addr", "192.0.2.1:1234", "", "192.0.2.1"},
		{"forwarded single", "192.0.2.1:1234", "203.0.113.7", "203.0.113.7"},
		{"forwarded chain", "192.0.2.1:1234", "203.0.113.7, 10.0.0.1", "203.0.113.7"},
		{"no port", "192.0.2.1", "", "192.0.2.1"},
		{"forwarded overrides remote", "192.0.2.1:1234", "198.51.100.9", "198.51.100.9"},
		{"blank forwarded falls back", "192.0.2.1:1234", " , 10.0.0.1", "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tt.forwarded)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
