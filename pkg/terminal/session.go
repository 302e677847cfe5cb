// Package terminal hosts an ide.Controller in an interactive terminal.
//
// Lines typed at the prompt build up the program. Commands start with a
// colon (:run, :clear, :lang, ...). The run and clear key bindings work
// mid-line: the line typed so far is kept, then the action fires.
package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/debug"
	"github.com/rhuss/codepad/pkg/ide"
)

const helpText = `Type code line by line. Commands:
  :run            run the buffer
  :clear          clear buffer, input and output
  :lang [name]    show or switch language (resets the buffer)
  :input [text]   show or set program input ("quoted" strings allow \n)
  :load <file>    load a file into the buffer
  :show           print the buffer
  :undo           delete the last line
  :help           show this help
  :quit           exit
`

// LineReader reads one edited line at a time. *readline.Instance
// satisfies it.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(string)
	Close() error
}

// Options configures a Session.
type Options struct {
	Executor        ide.Executor
	Out             io.Writer
	Color           bool
	DefaultLanguage api.Language
	Placeholders    map[api.Language]string
	Keybindings     map[string]string
	Theme           string
	FontSize        int
	Logger          *slog.Logger
}

// Session is an interactive terminal editing session.
type Session struct {
	ctrl     *ide.Controller
	editor   *Editor
	host     *Host
	out      io.Writer
	color    bool
	bindings map[string]string
}

// NewSession creates the controller with a terminal editor and host.
// Key binding callbacks run with ctx.
func NewSession(ctx context.Context, opts Options) (*Session, error) {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	bindings := opts.Keybindings
	if bindings == nil {
		bindings = ide.DefaultKeybindings()
	}

	s := &Session{
		editor:   NewEditor(),
		host:     NewHost(out, opts.Color),
		out:      out,
		color:    opts.Color,
		bindings: bindings,
	}
	ctrl, err := ide.New(ctx, ide.Options{
		Executor:        opts.Executor,
		EditorFactory:   s.editor.Factory(),
		Host:            s.host,
		Placeholders:    opts.Placeholders,
		Theme:           opts.Theme,
		FontSize:        opts.FontSize,
		Keybindings:     bindings,
		DefaultLanguage: opts.DefaultLanguage,
		Logger:          opts.Logger,
	})
	if err != nil {
		return nil, err
	}
	ctrl.OnTransition(func(t ide.Transition) {
		debug.Log("terminal", "transition", "from", t.From, "to", t.To, "run_id", t.RunID)
	})
	s.ctrl = ctrl
	return s, nil
}

// Controller returns the session's controller.
func (s *Session) Controller() *ide.Controller { return s.ctrl }

// Editor returns the session's editor.
func (s *Session) Editor() *Editor { return s.editor }

// Host returns the session's host.
func (s *Session) Host() *Host { return s.host }

// ReadlineConfig returns a readline configuration that routes key bindings
// to the editor. An empty historyFile disables history.
func (s *Session) ReadlineConfig(historyFile string) *readline.Config {
	return &readline.Config{
		Prompt:              s.prompt(),
		HistoryFile:         historyFile,
		HistoryLimit:        1000,
		InterruptPrompt:     "^C",
		EOFPrompt:           ":quit",
		HistorySearchFold:   true,
		FuncFilterInputRune: s.editor.FilterRune,
	}
}

// Serve reads lines from rl until :quit, EOF or ctx is done.
func (s *Session) Serve(ctx context.Context, rl LineReader) error {
	lang := s.ctrl.State().Language
	fmt.Fprintf(s.out, "codepad %s (:help for commands, %s to run, Ctrl+D to exit)\n", lang, s.bindings[ide.ActionRun])
	s.show()

	for ctx.Err() == nil {
		rl.SetPrompt(s.prompt())
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				s.editor.TakeShortcut()
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		shortcut := s.editor.TakeShortcut()
		if cmd, ok := strings.CutPrefix(line, ":"); ok && shortcut == nil {
			quit, err := s.command(ctx, cmd)
			if err != nil {
				fmt.Fprintf(s.out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}
		if line != "" || shortcut == nil {
			s.editor.Append(line)
		}
		if shortcut != nil {
			shortcut()
		}
	}
	return nil
}

func (s *Session) prompt() string {
	return fmt.Sprintf("%s %d> ", s.editor.Language(), s.editor.Lines()+1)
}

// command runs one colon command. It reports whether the session should end.
func (s *Session) command(ctx context.Context, line string) (bool, error) {
	name, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	debug.Log("terminal", "command", "name", name)

	switch name {
	case "run", "r":
		res, err := s.ctrl.Run(ctx)
		if err == nil {
			s.stats(res)
		}
	case "clear", "c":
		s.ctrl.Clear()
		fmt.Fprintln(s.out, "cleared")
	case "lang", "l":
		if arg == "" {
			fmt.Fprintf(s.out, "language: %s (available: %s)\n", s.ctrl.State().Language, languageList())
			return false, nil
		}
		if err := s.ctrl.ChangeLanguage(arg); err != nil {
			return false, err
		}
		s.show()
	case "input", "i":
		if arg == "" {
			fmt.Fprintf(s.out, "input: %q\n", s.host.InputData())
			return false, nil
		}
		s.host.SetInputData(parseInput(arg))
	case "load":
		if arg == "" {
			return false, errors.New("usage: :load <file>")
		}
		return false, s.load(arg)
	case "show", "s":
		s.show()
	case "undo", "u":
		if !s.editor.DeleteLast() {
			return false, errors.New("buffer is empty")
		}
	case "help", "h", "?":
		fmt.Fprint(s.out, helpText)
	case "quit", "q", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command :%s (try :help)", name)
	}
	return false, nil
}

func (s *Session) load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if lang, ok := api.LanguageFromFilename(path); ok {
		if err := s.ctrl.ChangeLanguage(string(lang)); err != nil {
			return err
		}
	}
	s.editor.SetValue(strings.TrimRight(string(data), "\n"))
	s.show()
	return nil
}

func (s *Session) show() {
	code := s.editor.GetValue()
	if code == "" {
		fmt.Fprintln(s.out, "(empty)")
		return
	}
	for i, line := range strings.Split(code, "\n") {
		fmt.Fprintf(s.out, "%3d | %s\n", i+1, line)
	}
}

func (s *Session) stats(res api.ExecutionResult) {
	if res.ExecutionTimeMs == nil && res.MemoryUsedKB == nil {
		return
	}
	var parts []string
	if res.ExecutionTimeMs != nil {
		parts = append(parts, fmt.Sprintf("%d ms", *res.ExecutionTimeMs))
	}
	if res.MemoryUsedKB != nil {
		parts = append(parts, fmt.Sprintf("%d KB", *res.MemoryUsedKB))
	}
	text := "(" + strings.Join(parts, ", ") + ")"
	if s.color {
		text = ansiDim + text + ansiReset
	}
	fmt.Fprintln(s.out, text)
}

// parseInput accepts a Go-quoted string or raw text with literal \n
// sequences for line breaks.
func parseInput(arg string) string {
	if v, err := strconv.Unquote(arg); err == nil {
		return v
	}
	return strings.ReplaceAll(arg, `\n`, "\n")
}

func languageList() string {
	langs := api.Languages()
	names := make([]string, len(langs))
	for i, l := range langs {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}
