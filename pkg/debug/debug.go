// Package debug provides category-based debug logging for codepad.
//
// Categories select which subsystems log (CODEPAD_DEBUG or logging.debug in
// the config file). The level selects how much detail is written
// (CODEPAD_LOG_LEVEL or logging.level). Environment overrides config.
//
//	debug.Log("client", "execute", "language", req.Language)
//	debug.Raw("client", string(body)) // TRACE only
//
// Categories: client, ide, terminal, mcp, backend, config, all.
// Levels: ERROR, WARN, INFO, DEBUG, TRACE.
package debug

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

const (
	envCategories = "CODEPAD_DEBUG"
	envLevel      = "CODEPAD_LOG_LEVEL"
)

// LevelTrace is below slog.LevelDebug. At TRACE, raw HTTP bodies are written.
const LevelTrace = slog.LevelDebug - 4

// KnownCategories lists the categories codepad's packages log under.
var KnownCategories = []string{"client", "ide", "terminal", "mcp", "backend", "config"}

// categories and out are written by Init only, before any goroutines log.
var (
	categories map[string]bool
	out        io.Writer = os.Stderr
)

func init() {
	categories = parseCategories(os.Getenv(envCategories))
}

// Init configures categories and the default slog logger writing to stderr.
func Init(configCategories, configLevel string) {
	InitWriter(os.Stderr, configCategories, configLevel)
}

// InitWriter is Init with an explicit destination for log and raw output.
func InitWriter(w io.Writer, configCategories, configLevel string) {
	cats := os.Getenv(envCategories)
	if cats == "" {
		cats = configCategories
	}
	categories = parseCategories(cats)

	level := os.Getenv(envLevel)
	if level == "" {
		level = configLevel
	}

	out = w
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})))
}

// Enabled reports whether debug output is active for the given category.
func Enabled(category string) bool {
	return categories["all"] || categories[category]
}

// Log emits a debug message tagged with the category when it is enabled.
func Log(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Debug(msg, append([]any{"debug", category}, args...)...)
}

// Trace emits a TRACE message tagged with the category when it is enabled.
func Trace(category string, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Log(context.Background(), LevelTrace, msg, append([]any{"debug", category}, args...)...)
}

// TraceIsEnabled reports whether TRACE output would be written for the category.
func TraceIsEnabled(category string) bool {
	return Enabled(category) && slog.Default().Enabled(context.Background(), LevelTrace)
}

// Raw writes text unformatted, for copy-paste-ready request and response bodies.
func Raw(category string, text string) {
	if !TraceIsEnabled(category) {
		return
	}
	fmt.Fprintln(out, text)
}

// ParseLevel converts a level name to a slog.Level. Unknown names map to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ValidLevel reports whether s names a level ParseLevel understands.
func ValidLevel(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "TRACE", "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
		return true
	}
	return false
}

// Categories returns the enabled categories in sorted order.
func Categories() []string {
	result := make([]string, 0, len(categories))
	for k := range categories {
		result = append(result, k)
	}
	sort.Strings(result)
	return result
}

// UnknownCategories returns the entries of a comma list that are neither
// "all" nor one of KnownCategories.
func UnknownCategories(s string) []string {
	var unknown []string
	for cat := range parseCategories(s) {
		if cat == "all" {
			continue
		}
		found := false
		for _, k := range KnownCategories {
			if k == cat {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, cat)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// Truncate shortens s to at most maxLen runes, appending "..." when cut.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}

func parseCategories(s string) map[string]bool {
	m := make(map[string]bool)
	for _, cat := range strings.Split(s, ",") {
		cat = strings.TrimSpace(strings.ToLower(cat))
		if cat != "" {
			m[cat] = true
		}
	}
	return m
}
