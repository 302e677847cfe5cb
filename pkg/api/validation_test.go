package api

import "testing"

func TestValidateExecutionRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       *ExecutionRequest
		wantParam string
		wantErr   bool
	}{
		{"valid", &ExecutionRequest{Language: LanguagePython, Code: "print(1)"}, "", false},
		{"empty code allowed", &ExecutionRequest{Language: LanguageJavaScript}, "", false},
		{"nil request", nil, "", true},
		{"missing language", &ExecutionRequest{Code: "x"}, "language", true},
		{"alias not accepted on the wire", &ExecutionRequest{Language: "py"}, "language", true},
		{"unsupported", &ExecutionRequest{Language: "cobol"}, "language", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateExecutionRequest(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateExecutionRequest() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && err.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", err.Param, tt.wantParam)
			}
		})
	}
}

func TestValidateSubmissionRequest(t *testing.T) {
	tests := []struct {
		name      string
		req       *SubmissionRequest
		wantParam string
	}{
		{"valid", &SubmissionRequest{ProblemID: 1, Language: LanguagePython, Code: "print(1)"}, ""},
		{"zero problem", &SubmissionRequest{Language: LanguagePython, Code: "x"}, "problem_id"},
		{"bad language", &SubmissionRequest{ProblemID: 1, Language: "c", Code: "x"}, "language"},
		{"empty code", &SubmissionRequest{ProblemID: 1, Language: LanguagePython}, "code"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubmissionRequest(tt.req)
			if tt.wantParam == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Param != tt.wantParam {
				t.Errorf("Param = %q, want %q", err.Param, tt.wantParam)
			}
		})
	}
}
