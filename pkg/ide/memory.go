package ide

import (
	"fmt"
	"sync"

	"github.com/rhuss/codepad/pkg/api"
)

// MemoryEditor is an Editor with no UI. It backs headless hosts such as
// the MCP server, and tests.
type MemoryEditor struct {
	mu        sync.Mutex
	opts      EditorOptions
	value     string
	language  api.Language
	shortcuts map[string]func()
}

// NewMemoryEditor creates an editor holding opts.InitialValue.
func NewMemoryEditor(opts EditorOptions) *MemoryEditor {
	return &MemoryEditor{
		opts:      opts,
		value:     opts.InitialValue,
		language:  opts.Language,
		shortcuts: make(map[string]func()),
	}
}

func (e *MemoryEditor) GetValue() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.value
}

func (e *MemoryEditor) SetValue(v string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value = v
}

func (e *MemoryEditor) SetLanguage(l api.Language) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.language = l
}

// Language returns the current language mode.
func (e *MemoryEditor) Language() api.Language {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.language
}

// Options returns the options the editor was created with.
func (e *MemoryEditor) Options() EditorOptions {
	return e.opts
}

func (e *MemoryEditor) RegisterShortcut(combo string, fn func()) error {
	combo = NormalizeCombo(combo)
	if combo == "" {
		return fmt.Errorf("empty key combo")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.shortcuts[combo]; ok {
		return fmt.Errorf("key combo %q already bound", combo)
	}
	e.shortcuts[combo] = fn
	return nil
}

// Trigger simulates pressing combo. It reports whether a shortcut was bound.
// The callback runs synchronously.
func (e *MemoryEditor) Trigger(combo string) bool {
	e.mu.Lock()
	fn, ok := e.shortcuts[NormalizeCombo(combo)]
	e.mu.Unlock()
	if ok {
		fn()
	}
	return ok
}

// MemoryHost is a Host that records what it is asked to show.
type MemoryHost struct {
	mu       sync.Mutex
	selected string
	input    string
	renders  []Display
}

// NewMemoryHost creates a host with empty input and no selection.
func NewMemoryHost() *MemoryHost {
	return &MemoryHost{}
}

func (h *MemoryHost) SelectedLanguage() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.selected
}

func (h *MemoryHost) SelectLanguage(l api.Language) {
	h.SetSelector(string(l))
}

// SetSelector sets the selector to a raw value, as a user would.
func (h *MemoryHost) SetSelector(v string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selected = v
}

func (h *MemoryHost) InputData() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.input
}

func (h *MemoryHost) SetInputData(v string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.input = v
}

func (h *MemoryHost) Render(d Display) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.renders = append(h.renders, d)
}

// Display returns the most recent render.
func (h *MemoryHost) Display() Display {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.renders) == 0 {
		return Display{}
	}
	return h.renders[len(h.renders)-1]
}

// Renders returns every render in order.
func (h *MemoryHost) Renders() []Display {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Display(nil), h.renders...)
}
