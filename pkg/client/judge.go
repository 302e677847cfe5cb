package client

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/debug"
	"github.com/rhuss/codepad/pkg/observability"
)

// ListProblems fetches the problem catalogue.
func (c *Client) ListProblems(ctx context.Context) ([]api.Problem, error) {
	var list api.ProblemList
	if err := c.doJSON(ctx, http.MethodGet, "/api/problems", nil, &list); err != nil {
		return nil, err
	}
	return list.Problems, nil
}

// GetProblem fetches one problem and its sample test cases.
func (c *Client) GetProblem(ctx context.Context, id int) (*api.ProblemDetail, error) {
	if id <= 0 {
		return nil, api.NewInvalidRequestError("problem_id", "problem_id must be positive")
	}
	var detail api.ProblemDetail
	if err := c.doJSON(ctx, http.MethodGet, "/api/problem/"+strconv.Itoa(id), nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// SubmitSolution sends code to be judged against every test case of a problem.
func (c *Client) SubmitSolution(ctx context.Context, req *api.SubmissionRequest) (*api.SubmissionResult, error) {
	if apiErr := api.ValidateSubmissionRequest(req); apiErr != nil {
		return nil, apiErr
	}

	var result api.SubmissionResult
	if err := c.doJSON(ctx, http.MethodPost, "/api/submit", req, &result); err != nil {
		return nil, err
	}
	if result.Verdict == "" {
		return nil, &ProtocolError{Err: fmt.Errorf("submission result has no verdict")}
	}

	observability.SubmissionsTotal.WithLabelValues(string(result.Verdict)).Inc()
	debug.Log("client", "submission judged",
		"problem_id", req.ProblemID,
		"verdict", result.Verdict,
		"passed", result.TestCasesPassed,
		"total", result.TotalTestCases,
	)
	return &result, nil
}
