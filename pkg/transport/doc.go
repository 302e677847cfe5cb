// Package transport provides the net/http middleware chain used by codepad's
// HTTP servers.
//
// Middleware is applied with Chain, outermost first:
//
//	h := transport.Chain(
//		transport.Recovery(),
//		transport.RequestID(),
//		transport.Logging(logger),
//		transport.RateLimit(10, 20),
//	)(mux)
//
// Errors are written as api.ErrorResponse JSON bodies so that clients can
// decode them with api.ParseErrorBody.
package transport
