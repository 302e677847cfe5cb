// Package mockbackend is a deterministic stand-in for a codepad execution
// service. It serves the execution contract and the judge endpoints from an
// in-memory catalogue, and never runs submitted code: Simulate recognises a
// handful of statement shapes and fakes their output.
package mockbackend

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/debug"
	"github.com/rhuss/codepad/pkg/observability"
	"github.com/rhuss/codepad/pkg/transport"
)

// maxRequestBytes bounds request bodies.
const maxRequestBytes = 1 << 20

// Options configures a Server.
type Options struct {
	// Catalogue defaults to SampleCatalogue.
	Catalogue *Catalogue
	Logger    *slog.Logger
	// RateLimit is requests per second per client IP; 0 disables it.
	RateLimit float64
	Burst     int
	// MaxConcurrent caps simultaneous requests; 0 means unlimited.
	MaxConcurrent int
	// MetricsPath, when set, serves Prometheus metrics on that path.
	MetricsPath string
}

// Server serves the mock execution API.
type Server struct {
	opts        Options
	catalogue   *Catalogue
	logger      *slog.Logger
	submissions atomic.Int64
}

// New creates a Server.
func New(opts Options) *Server {
	cat := opts.Catalogue
	if cat == nil {
		cat = SampleCatalogue()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{opts: opts, catalogue: cat, logger: logger}
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/execute", s.handleExecute)
	mux.HandleFunc("POST /api/submit", s.handleSubmit)
	mux.HandleFunc("GET /api/problems", s.handleProblems)
	mux.HandleFunc("GET /api/problem/{id}", s.handleProblem)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})
	if s.opts.MetricsPath != "" {
		mux.Handle("GET "+s.opts.MetricsPath, observability.Handler())
	}

	return transport.Chain(
		transport.Recovery(),
		transport.RequestID(),
		transport.Logging(s.logger),
		observability.MetricsMiddleware,
		transport.RateLimit(s.opts.RateLimit, s.opts.Burst),
		transport.ConcurrencyLimit(s.opts.MaxConcurrent),
	)(mux)
}

func (s *Server) handleExecute(w http.ResponseWriter, r *http.Request) {
	var req api.ExecutionRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}
	if apiErr := api.ValidateExecutionRequest(&req); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	run := Simulate(req.Language, req.Code, req.InputData)
	debug.Log("backend", "execute",
		"request_id", transport.RequestIDFromContext(r.Context()),
		"language", req.Language,
		"outcome", run.Outcome,
	)
	transport.WriteJSON(w, http.StatusOK, run.Result())
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req api.SubmissionRequest
	if apiErr := decodeJSON(w, r, &req); apiErr != nil {
		transport.WriteAPIError(w, apiErr)
		return
	}

	res := Judge(s.catalogue, &req)
	res.SubmissionID = int(s.submissions.Add(1))
	debug.Log("backend", "submission judged",
		"submission_id", res.SubmissionID,
		"problem_id", req.ProblemID,
		"verdict", res.Verdict,
	)
	transport.WriteJSON(w, http.StatusOK, res)
}

func (s *Server) handleProblems(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, api.ProblemList{Problems: s.catalogue.Problems()})
}

func (s *Server) handleProblem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		transport.WriteAPIError(w, api.NewInvalidRequestError("problem_id", "problem_id must be an integer"))
		return
	}
	detail, ok := s.catalogue.Problem(id)
	if !ok {
		transport.WriteAPIError(w, api.NewNotFoundError("Problem not found"))
		return
	}
	transport.WriteJSON(w, http.StatusOK, detail)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) *api.APIError {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return api.NewInvalidRequestError("", "request body too large")
		}
		return api.NewInvalidRequestError("", "invalid JSON body: "+err.Error())
	}
	return nil
}
