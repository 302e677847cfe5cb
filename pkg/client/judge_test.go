package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rhuss/codepad/pkg/api"
)

func judgeServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/problems", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"problems":[{"id":1,"title":"Two Sum","difficulty":"Easy","time_limit":1000,"memory_limit":256}]}`))
	})
	mux.HandleFunc("GET /api/problem/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "1" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"detail":"Problem not found"}`))
			return
		}
		w.Write([]byte(`{"problem":{"id":1,"title":"Two Sum"},"sample_cases":[{"id":1,"problem_id":1,"input_data":"4 9\n2 7 11 15","expected_output":"0 1","is_sample":1}]}`))
	})
	mux.HandleFunc("POST /api/submit", func(w http.ResponseWriter, r *http.Request) {
		var req api.SubmissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.ProblemID == 99 {
			w.Write([]byte(`{"submission_id":7}`))
			return
		}
		json.NewEncoder(w).Encode(api.SubmissionResult{
			SubmissionID:    3,
			Verdict:         api.VerdictWrongAnswer,
			Message:         "Wrong answer on test case 2",
			TestCasesPassed: 1,
			TotalTestCases:  4,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_ListProblems(t *testing.T) {
	c, _ := New(judgeServer(t).URL)
	problems, err := c.ListProblems(context.Background())
	if err != nil {
		t.Fatalf("ListProblems: %v", err)
	}
	if len(problems) != 1 || problems[0].Title != "Two Sum" || problems[0].TimeLimitMs != 1000 {
		t.Errorf("problems = %+v", problems)
	}
}

func TestClient_GetProblem(t *testing.T) {
	c, _ := New(judgeServer(t).URL)

	detail, err := c.GetProblem(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetProblem: %v", err)
	}
	if len(detail.SampleCases) != 1 || !detail.SampleCases[0].IsSample {
		t.Errorf("sample cases = %+v", detail.SampleCases)
	}

	_, err = c.GetProblem(context.Background(), 2)
	var protoErr *ProtocolError
	if !errors.As(err, &protoErr) || protoErr.StatusCode != http.StatusNotFound {
		t.Fatalf("error = %v, want 404 ProtocolError", err)
	}
	if protoErr.APIError == nil || protoErr.APIError.Message != "Problem not found" {
		t.Errorf("APIError = %+v", protoErr.APIError)
	}

	if _, err := c.GetProblem(context.Background(), 0); IsTransportFailure(err) || err == nil {
		t.Errorf("GetProblem(0) error = %v, want validation error", err)
	}
}

func TestClient_SubmitSolution(t *testing.T) {
	c, _ := New(judgeServer(t).URL)

	res, err := c.SubmitSolution(context.Background(), &api.SubmissionRequest{
		ProblemID: 1, Language: api.LanguagePython, Code: "print('0 1')",
	})
	if err != nil {
		t.Fatalf("SubmitSolution: %v", err)
	}
	if res.Verdict != api.VerdictWrongAnswer || res.TestCasesPassed != 1 || res.TotalTestCases != 4 {
		t.Errorf("result = %+v", res)
	}

	_, err = c.SubmitSolution(context.Background(), &api.SubmissionRequest{
		ProblemID: 99, Language: api.LanguagePython, Code: "x",
	})
	if !IsTransportFailure(err) {
		t.Errorf("missing verdict error = %v, want ProtocolError", err)
	}

	_, err = c.SubmitSolution(context.Background(), &api.SubmissionRequest{ProblemID: 1, Language: "cobol", Code: "x"})
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Errorf("error = %v, want *api.APIError", err)
	}
}
