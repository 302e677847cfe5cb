package transport

import (
	"net/http"

	"github.com/rhuss/codepad/pkg/api"
)

// ConcurrencyLimit returns middleware that serves at most n requests at a
// time and answers the rest with 429 "at capacity". n <= 0 disables it.
func ConcurrencyLimit(n int) Middleware {
	if n <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	slots := make(chan struct{}, n)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case slots <- struct{}{}:
				defer func() { <-slots }()
				next.ServeHTTP(w, r)
			default:
				WriteAPIError(w, api.NewTooManyRequestsError("at capacity"))
			}
		})
	}
}
