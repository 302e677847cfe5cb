package api

import (
	"errors"
	"testing"
)

func TestParseLanguage(t *testing.T) {
	tests := []struct {
		in      string
		want    Language
		wantErr bool
	}{
		{"python", LanguagePython, false},
		{"Python", LanguagePython, false},
		{"py", LanguagePython, false},
		{" python3 ", LanguagePython, false},
		{"javascript", LanguageJavaScript, false},
		{"js", LanguageJavaScript, false},
		{"node", LanguageJavaScript, false},
		{"", "", true},
		{"ruby", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLanguage(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLanguage(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLanguage(%q) = %q, want %q", tt.in, got, tt.want)
			}
			if err != nil {
				var apiErr *APIError
				if !errors.As(err, &apiErr) || apiErr.Param != "language" {
					t.Errorf("error = %v, want APIError with param language", err)
				}
			}
		})
	}
}

func TestLanguageSupported(t *testing.T) {
	for _, l := range Languages() {
		if !l.Supported() {
			t.Errorf("%q should be supported", l)
		}
		if l.Extension() == "" {
			t.Errorf("%q has no extension", l)
		}
	}
	if Language("py").Supported() {
		t.Error("aliases are not canonical names")
	}
	if !DefaultLanguage.Supported() {
		t.Error("default language must be supported")
	}
}

func TestLanguageFromFilename(t *testing.T) {
	tests := []struct {
		name string
		want Language
		ok   bool
	}{
		{"main.py", LanguagePython, true},
		{"dir/Solve.PY", LanguagePython, true},
		{"index.js", LanguageJavaScript, true},
		{"mod.mjs", LanguageJavaScript, true},
		{"main.go", "", false},
		{"README", "", false},
	}
	for _, tt := range tests {
		got, ok := LanguageFromFilename(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("LanguageFromFilename(%q) = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
