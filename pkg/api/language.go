package api

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Language identifies a runtime the execution service accepts.
type Language string

const (
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
)

// DefaultLanguage is selected when nothing else is configured.
const DefaultLanguage = LanguagePython

var aliases = map[string]Language{
	"python":     LanguagePython,
	"py":         LanguagePython,
	"python3":    LanguagePython,
	"javascript": LanguageJavaScript,
	"js":         LanguageJavaScript,
	"node":       LanguageJavaScript,
}

// Languages returns the supported languages in display order.
func Languages() []Language {
	return []Language{LanguagePython, LanguageJavaScript}
}

// Supported reports whether l is one of the canonical language names.
func (l Language) Supported() bool {
	return l == LanguagePython || l == LanguageJavaScript
}

// Extension returns the source file extension for l, or "" if unsupported.
func (l Language) Extension() string {
	switch l {
	case LanguagePython:
		return ".py"
	case LanguageJavaScript:
		return ".js"
	default:
		return ""
	}
}

// ParseLanguage resolves a name or alias (case-insensitive) to a Language.
func ParseLanguage(s string) (Language, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "" {
		return "", NewInvalidRequestError("language", "language is required")
	}
	if l, ok := aliases[name]; ok {
		return l, nil
	}
	return "", NewInvalidRequestError("language", fmt.Sprintf("unsupported language %q", s))
}

// LanguageFromFilename guesses the language from a file extension.
func LanguageFromFilename(name string) (Language, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".py":
		return LanguagePython, true
	case ".js", ".mjs", ".cjs":
		return LanguageJavaScript, true
	default:
		return "", false
	}
}
