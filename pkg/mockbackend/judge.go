package mockbackend

import (
	"fmt"
	"strings"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/debug"
)

// Judge runs a submission against every test case of a problem and stops
// at the first failing case. Unknown problems and problems without test
// cases are reported as CE, as is an unsupported language.
func Judge(cat *Catalogue, req *api.SubmissionRequest) api.SubmissionResult {
	detail, ok := cat.Problem(req.ProblemID)
	if !ok {
		return api.SubmissionResult{Verdict: api.VerdictCompilationError, Message: "Problem not found"}
	}
	if !req.Language.Supported() {
		return api.SubmissionResult{Verdict: api.VerdictCompilationError, Message: "Unsupported language"}
	}
	cases := cat.TestCases(req.ProblemID)
	if len(cases) == 0 {
		return api.SubmissionResult{Verdict: api.VerdictCompilationError, Message: "No test cases found"}
	}

	res := api.SubmissionResult{TotalTestCases: len(cases)}
	for i, tc := range cases {
		run := Simulate(req.Language, req.Code, tc.InputData)
		res.ExecutionTimeMs = max(res.ExecutionTimeMs, run.ExecutionTimeMs)
		res.MemoryUsedKB = max(res.MemoryUsedKB, run.MemoryUsedKB)

		if run.Outcome == OutcomeOK && run.ExecutionTimeMs > int64(detail.Problem.TimeLimitMs) {
			run.Outcome = OutcomeTimeLimit
		}
		if run.Outcome == OutcomeOK && run.MemoryUsedKB > int64(detail.Problem.MemoryLimit)<<10 {
			run.Outcome = OutcomeMemoryLimit
		}

		switch run.Outcome {
		case OutcomeTimeLimit:
			res.Verdict = api.VerdictTimeLimitExceeded
			res.Message = fmt.Sprintf("Time Limit Exceeded on test case %d", i+1)
		case OutcomeMemoryLimit:
			res.Verdict = api.VerdictMemoryLimitExceeded
			res.Message = fmt.Sprintf("Memory Limit Exceeded on test case %d", i+1)
		case OutcomeRuntimeError:
			res.Verdict = api.VerdictRuntimeError
			res.Message = fmt.Sprintf("Runtime Error on test case %d: %s", i+1, debug.Truncate(lastLine(run.Stderr), 200))
		default:
			if strings.TrimSpace(run.Stdout) != strings.TrimSpace(tc.ExpectedOutput) {
				res.Verdict = api.VerdictWrongAnswer
				res.Message = fmt.Sprintf("Wrong Answer on test case %d", i+1)
			}
		}
		if res.Verdict != "" {
			return res
		}
		res.TestCasesPassed++
	}

	res.Verdict = api.VerdictAccepted
	res.Message = fmt.Sprintf("Accepted - All %d test cases passed", len(cases))
	return res
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return lines[len(lines)-1]
}
