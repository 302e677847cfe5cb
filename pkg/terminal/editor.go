package terminal

import (
	"fmt"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/ide"
)

// Editor is a line buffer edited through readline. Lines typed at the
// prompt are appended to the buffer; bound key combos are intercepted
// before readline sees them.
type Editor struct {
	mu        sync.Mutex
	lines     []string
	language  api.Language
	shortcuts map[rune]func()
	pending   func()
}

var _ ide.Editor = (*Editor)(nil)

// NewEditor creates an empty editor.
func NewEditor() *Editor {
	return &Editor{shortcuts: make(map[rune]func())}
}

// Factory returns an ide.EditorFactory that initialises e and hands it to
// the controller.
func (e *Editor) Factory() ide.EditorFactory {
	return func(opts ide.EditorOptions) (ide.Editor, error) {
		e.SetValue(opts.InitialValue)
		e.SetLanguage(opts.Language)
		return e, nil
	}
}

func (e *Editor) GetValue() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return strings.Join(e.lines, "\n")
}

func (e *Editor) SetValue(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if v == "" {
		e.lines = nil
		return
	}
	e.lines = strings.Split(v, "\n")
}

func (e *Editor) SetLanguage(l api.Language) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.language = l
}

// Language returns the current language mode.
func (e *Editor) Language() api.Language {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.language
}

// Append adds a line at the end of the buffer.
func (e *Editor) Append(line string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = append(e.lines, line)
}

// DeleteLast removes the last line. It reports whether there was one.
func (e *Editor) DeleteLast() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.lines) == 0 {
		return false
	}
	e.lines = e.lines[:len(e.lines)-1]
	return true
}

// Lines returns the number of lines in the buffer.
func (e *Editor) Lines() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines)
}

// RegisterShortcut binds combo to fn. Only combos a terminal can deliver
// as a single control character are accepted: ctrl+enter and ctrl+<letter>.
func (e *Editor) RegisterShortcut(combo string, fn func()) error {
	r, ok := comboRune(ide.NormalizeCombo(combo))
	if !ok {
		return fmt.Errorf("key combo %q cannot be read from a terminal", combo)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, bound := e.shortcuts[r]; bound {
		return fmt.Errorf("key combo %q already bound", combo)
	}
	e.shortcuts[r] = fn
	return nil
}

// FilterRune is a readline.Config.FuncFilterInputRune. A bound key ends
// the current line, and its callback is queued for TakeShortcut.
func (e *Editor) FilterRune(r rune) (rune, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn, ok := e.shortcuts[r]
	if !ok {
		return r, true
	}
	e.pending = fn
	return readline.CharEnter, true
}

// TakeShortcut returns and clears the callback queued by FilterRune.
func (e *Editor) TakeShortcut() func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn := e.pending
	e.pending = nil
	return fn
}

// comboRune maps a normalized combo to the control character a terminal
// sends for it. Terminals report ctrl+enter as a line feed.
func comboRune(combo string) (rune, bool) {
	if combo == "ctrl+enter" {
		return readline.CharCtrlJ, true
	}
	key, ok := strings.CutPrefix(combo, "ctrl+")
	if !ok || len(key) != 1 || key[0] < 'a' || key[0] > 'z' {
		return 0, false
	}
	return rune(key[0]-'a') + 1, true
}
