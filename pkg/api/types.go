package api

import (
	"encoding/json"
	"errors"
)

// ErrMissingOutput is returned when decoding a result that has no "output" field.
var ErrMissingOutput = errors.New("response has no output field")

// ExecutionRequest is the body of POST /api/execute.
// Language and Code are always serialized, even when empty.
type ExecutionRequest struct {
	Language  Language `json:"language"`
	Code      string   `json:"code"`
	InputData string   `json:"input_data"`
}

// ExecutionResult is the execution service's answer to an ExecutionRequest.
//
// Error only changes how Output is presented. ExecutionTimeMs and MemoryUsedKB
// are reported by some backends and are nil when absent.
type ExecutionResult struct {
	Output          string `json:"output"`
	Error           Flag   `json:"error,omitempty"`
	ExecutionTimeMs *int64 `json:"execution_time,omitempty"`
	MemoryUsedKB    *int64 `json:"memory_used,omitempty"`
}

// UnmarshalJSON decodes a result and rejects bodies without an output field.
func (r *ExecutionResult) UnmarshalJSON(data []byte) error {
	type alias ExecutionResult
	var raw struct {
		alias
		Output *string `json:"output"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Output == nil {
		return ErrMissingOutput
	}
	*r = ExecutionResult(raw.alias)
	r.Output = *raw.Output
	return nil
}
