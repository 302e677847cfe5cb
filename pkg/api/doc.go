// Package api defines the wire types shared by the codepad execution client,
// the controller and the mock backend.
//
// The execution contract is a single call:
//
//	POST /api/execute  {"language": "...", "code": "...", "input_data": "..."}
//	200 OK             {"output": "...", "error": <truthy or absent>}
//
// The package also carries the judge types (problems, test cases, submissions
// and verdicts) served by the same backend, the supported language set, and
// the structured error body used on non-2xx responses.
//
// Core types:
//   - [ExecutionRequest]: what the client sends
//   - [ExecutionResult]: what the service answers; [Flag] decodes its loose error field
//   - [Language]: the enumerated language set with aliases
//   - [APIError]: structured error with type, param and message
//
// The package performs no I/O.
package api
