package debug

import (
	"bytes"
	"log/slog"
	"reflect"
	"strings"
	"testing"
)

func TestParseCategories(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  map[string]bool
	}{
		{"empty", "", map[string]bool{}},
		{"single", "client", map[string]bool{"client": true}},
		{"multiple", "client,ide", map[string]bool{"client": true, "ide": true}},
		{"all", "all", map[string]bool{"all": true}},
		{"with spaces", " client , ide ", map[string]bool{"client": true, "ide": true}},
		{"uppercase normalized", "CLIENT,Ide", map[string]bool{"client": true, "ide": true}},
		{"empty segments", "client,,ide", map[string]bool{"client": true, "ide": true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseCategories(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseCategories(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	orig := categories
	defer func() { categories = orig }()

	categories = parseCategories("client,mcp")

	if !Enabled("client") {
		t.Error("client should be enabled")
	}
	if Enabled("terminal") {
		t.Error("terminal should not be enabled")
	}

	categories = parseCategories("all")
	if !Enabled("anything") {
		t.Error("anything should be enabled via 'all'")
	}
}

func TestInitWriterAndRaw(t *testing.T) {
	origCats, origOut, origLogger := categories, out, slog.Default()
	defer func() {
		categories, out = origCats, origOut
		slog.SetDefault(origLogger)
	}()
	t.Setenv(envCategories, "")
	t.Setenv(envLevel, "")

	var buf bytes.Buffer
	InitWriter(&buf, "client", "TRACE")

	Log("client", "execute", "language", "python")
	Raw("client", `{"output":"hi"}`)
	Log("ide", "hidden")

	got := buf.String()
	if !strings.Contains(got, "msg=execute") || !strings.Contains(got, "debug=client") {
		t.Errorf("missing debug line in %q", got)
	}
	if !strings.Contains(got, `{"output":"hi"}`+"\n") {
		t.Errorf("missing raw body in %q", got)
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("disabled category logged: %q", got)
	}
}

func TestInitEnvOverridesConfig(t *testing.T) {
	origCats, origOut, origLogger := categories, out, slog.Default()
	defer func() {
		categories, out = origCats, origOut
		slog.SetDefault(origLogger)
	}()
	t.Setenv(envCategories, "mcp")
	t.Setenv(envLevel, "INFO")

	var buf bytes.Buffer
	InitWriter(&buf, "client", "TRACE")

	if Enabled("client") || !Enabled("mcp") {
		t.Errorf("categories = %v, want [mcp]", Categories())
	}
	if TraceIsEnabled("mcp") {
		t.Error("TRACE should be disabled at INFO")
	}
	Raw("mcp", "body")
	if buf.Len() != 0 {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"TRACE", LevelTrace},
		{"trace", LevelTrace},
		{"DEBUG", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"WARNING", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	if ValidLevel("verbose") {
		t.Error("verbose is not a level")
	}
	if !ValidLevel("warning") {
		t.Error("warning is a level")
	}
}

func TestUnknownCategories(t *testing.T) {
	got := UnknownCategories("client, all, engine,Providers")
	want := []string{"engine", "providers"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnknownCategories = %v, want %v", got, want)
	}
	if got := UnknownCategories(""); len(got) != 0 {
		t.Errorf("UnknownCategories(\"\") = %v, want none", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("Truncate short = %q, want %q", got, "short")
	}
	if got := Truncate("this is a long string", 10); got != "this is a ..." {
		t.Errorf("Truncate long = %q, want %q", got, "this is a ...")
	}
	if got := Truncate("héllo wörld", 5); got != "héllo..." {
		t.Errorf("Truncate runes = %q, want %q", got, "héllo...")
	}
}
