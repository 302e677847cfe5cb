package api

import "fmt"

// ValidateExecutionRequest checks an ExecutionRequest before it is sent or
// served. Code and InputData are unconstrained; only the language is checked.
func ValidateExecutionRequest(req *ExecutionRequest) *APIError {
	if req == nil {
		return NewInvalidRequestError("", "request is required")
	}
	if req.Language == "" {
		return NewInvalidRequestError("language", "language is required")
	}
	if !req.Language.Supported() {
		return NewInvalidRequestError("language",
			fmt.Sprintf("unsupported language %q", req.Language))
	}
	return nil
}

// ValidateSubmissionRequest checks a SubmissionRequest for the judge endpoint.
func ValidateSubmissionRequest(req *SubmissionRequest) *APIError {
	if req == nil {
		return NewInvalidRequestError("", "request is required")
	}
	if req.ProblemID <= 0 {
		return NewInvalidRequestError("problem_id", "problem_id must be positive")
	}
	if !req.Language.Supported() {
		return NewInvalidRequestError("language",
			fmt.Sprintf("unsupported language %q", req.Language))
	}
	if req.Code == "" {
		return NewInvalidRequestError("code", "code is required")
	}
	return nil
}
