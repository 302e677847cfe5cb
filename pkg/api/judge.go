package api

// Verdict is the outcome of judging a submission against a problem's test cases.
type Verdict string

const (
	VerdictAccepted            Verdict = "AC"
	VerdictWrongAnswer         Verdict = "WA"
	VerdictTimeLimitExceeded   Verdict = "TLE"
	VerdictMemoryLimitExceeded Verdict = "MLE"
	VerdictRuntimeError        Verdict = "RE"
	VerdictCompilationError    Verdict = "CE"
)

// Problem is a judge problem as listed by GET /api/problems.
type Problem struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	InputFormat  string `json:"input_format,omitempty"`
	OutputFormat string `json:"output_format,omitempty"`
	Constraints  string `json:"constraints,omitempty"`
	TimeLimitMs  int    `json:"time_limit"`
	MemoryLimit  int    `json:"memory_limit"`
	Difficulty   string `json:"difficulty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

// TestCase is one input/expected-output pair of a problem.
// The backend stores IsSample as 0/1, which Flag accepts.
type TestCase struct {
	ID             int    `json:"id"`
	ProblemID      int    `json:"problem_id"`
	InputData      string `json:"input_data"`
	ExpectedOutput string `json:"expected_output"`
	IsSample       Flag   `json:"is_sample"`
}

// ProblemList is the body of GET /api/problems.
type ProblemList struct {
	Problems []Problem `json:"problems"`
}

// ProblemDetail is the body of GET /api/problem/{id}. Only sample cases are exposed.
type ProblemDetail struct {
	Problem     Problem    `json:"problem"`
	SampleCases []TestCase `json:"sample_cases"`
}

// SubmissionRequest is the body of POST /api/submit.
type SubmissionRequest struct {
	ProblemID int      `json:"problem_id"`
	Language  Language `json:"language"`
	Code      string   `json:"code"`
}

// SubmissionResult is the judge's answer to a SubmissionRequest.
type SubmissionResult struct {
	SubmissionID    int     `json:"submission_id"`
	Verdict         Verdict `json:"verdict"`
	Message         string  `json:"message"`
	TestCasesPassed int     `json:"test_cases_passed"`
	TotalTestCases  int     `json:"total_test_cases"`
	ExecutionTimeMs int64   `json:"execution_time"`
	MemoryUsedKB    int64   `json:"memory_used"`
}

// Accepted reports whether every test case passed.
func (r *SubmissionResult) Accepted() bool {
	return r.Verdict == VerdictAccepted
}
