// Package ide binds an editor widget and its host page to an execution
// service.
//
// A Controller owns the display state. Each submission moves it from idle
// or rendered to pending ("Executing..."), then to rendered with either the
// backend's output or an "Error: ..." message. Clear returns it to idle;
// changing the language swaps in that language's placeholder without
// touching the backend.
package ide

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/debug"
)

// PendingText is displayed while a submission is in flight.
const PendingText = "Executing..."

// Keybinding actions understood by the controller.
const (
	ActionRun   = "run"
	ActionClear = "clear"
)

// DefaultKeybindings binds run and clear.
func DefaultKeybindings() map[string]string {
	return map[string]string{
		ActionRun:   "ctrl+enter",
		ActionClear: "ctrl+l",
	}
}

// Options configures a Controller.
type Options struct {
	Executor      Executor
	EditorFactory EditorFactory
	Host          Host

	// Placeholders override DefaultPlaceholders per language.
	Placeholders map[api.Language]string
	Theme        string
	FontSize     int
	// Keybindings maps an action (ActionRun, ActionClear) to a key combo.
	// Nil means DefaultKeybindings.
	Keybindings     map[string]string
	DefaultLanguage api.Language
	Logger          *slog.Logger
}

// Controller runs code from an editor against an Executor and renders the
// outcome to a Host. It is safe for concurrent use.
type Controller struct {
	executor     Executor
	host         Host
	placeholders map[api.Language]string
	logger       *slog.Logger

	mu        sync.Mutex
	editor    Editor
	state     State
	observers []func(Transition)
}

// New creates the editor through opts.EditorFactory, selects the default
// language and registers the keyboard shortcuts. Shortcut-triggered runs
// use ctx.
func New(ctx context.Context, opts Options) (*Controller, error) {
	if opts.Executor == nil {
		return nil, errors.New("ide: executor is required")
	}
	if opts.EditorFactory == nil {
		return nil, errors.New("ide: editor factory is required")
	}
	if opts.Host == nil {
		return nil, errors.New("ide: host is required")
	}

	lang := opts.DefaultLanguage
	if lang == "" {
		lang = api.DefaultLanguage
	}
	if !lang.Supported() {
		return nil, fmt.Errorf("ide: unsupported default language %q", lang)
	}

	placeholders := DefaultPlaceholders()
	for l, text := range opts.Placeholders {
		placeholders[l] = text
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Controller{
		executor:     opts.Executor,
		host:         opts.Host,
		placeholders: placeholders,
		logger:       logger,
		state:        State{Phase: PhaseIdle, Language: lang},
	}

	opts.Host.SelectLanguage(lang)

	editor, err := opts.EditorFactory(EditorOptions{
		InitialValue: c.Placeholder(lang),
		Language:     lang,
		Theme:        opts.Theme,
		FontSize:     opts.FontSize,
	})
	if err != nil {
		return nil, fmt.Errorf("ide: creating editor: %w", err)
	}
	if editor == nil {
		return nil, errors.New("ide: editor factory returned nil")
	}

	keys := opts.Keybindings
	if keys == nil {
		keys = DefaultKeybindings()
	}
	if combo := keys[ActionRun]; combo != "" {
		if err := editor.RegisterShortcut(NormalizeCombo(combo), func() { c.Run(ctx) }); err != nil {
			return nil, fmt.Errorf("ide: registering %s shortcut: %w", ActionRun, err)
		}
	}
	if combo := keys[ActionClear]; combo != "" {
		if err := editor.RegisterShortcut(NormalizeCombo(combo), c.Clear); err != nil {
			return nil, fmt.Errorf("ide: registering %s shortcut: %w", ActionClear, err)
		}
	}

	c.mu.Lock()
	c.editor = editor
	c.mu.Unlock()

	debug.Log("ide", "controller ready", "language", lang, "theme", opts.Theme)
	return c, nil
}

// Placeholder returns the starter code for lang, or "" if it has none.
func (c *Controller) Placeholder(lang api.Language) string {
	return c.placeholders[lang]
}

// Run submits the editor's code with the host's selected language and input.
// It does nothing while the editor is still being created.
func (c *Controller) Run(ctx context.Context) (api.ExecutionResult, error) {
	c.mu.Lock()
	editor := c.editor
	c.mu.Unlock()
	if editor == nil {
		debug.Log("ide", "run ignored, editor not ready")
		return api.ExecutionResult{}, nil
	}

	raw := c.host.SelectedLanguage()
	lang, err := api.ParseLanguage(raw)
	if err != nil {
		lang = api.Language(raw)
	}
	return c.Submit(ctx, lang, editor.GetValue(), c.host.InputData())
}

// Submit sends one execution request and renders its outcome.
//
// The display shows PendingText until the call returns. A backend result is
// rendered verbatim, flagged as an error when the backend set its error
// indicator. Any failure is rendered as "Error: <description>" and also
// returned. If another submission or a clear happens while this one is in
// flight, its outcome is returned but not rendered.
func (c *Controller) Submit(ctx context.Context, lang api.Language, code, input string) (api.ExecutionResult, error) {
	runID := uuid.NewString()
	c.transition(PhasePending, runID, Display{Text: PendingText}, "")

	req := &api.ExecutionRequest{Language: lang, Code: code, InputData: input}
	if apiErr := api.ValidateExecutionRequest(req); apiErr != nil {
		c.transition(PhaseRendered, runID, Display{Text: "Error: " + apiErr.Message, IsError: true}, runID)
		return api.ExecutionResult{}, apiErr
	}

	debug.Log("ide", "submit", "run_id", runID, "language", lang, "code_len", len(code), "input_len", len(input))
	res, err := c.executor.Execute(ctx, req)
	if err == nil && res == nil {
		err = errors.New("executor returned no result")
	}
	if err != nil {
		c.logger.Warn("execution failed", "run_id", runID, "language", lang, "error", err)
		c.transition(PhaseRendered, runID, Display{Text: "Error: " + err.Error(), IsError: true}, runID)
		return api.ExecutionResult{}, err
	}

	c.transition(PhaseRendered, runID, Display{Text: res.Output, IsError: bool(res.Error)}, runID)
	return *res, nil
}

// Clear empties the output, the editor and the input field, and drops any
// in-flight submission's display update.
func (c *Controller) Clear() {
	c.mu.Lock()
	editor := c.editor
	c.mu.Unlock()
	if editor != nil {
		editor.SetValue("")
	}
	c.host.SetInputData("")
	c.transition(PhaseIdle, "", Display{}, "")
}

// ChangeLanguage switches the editor to lang (a name or alias) and replaces
// its content with that language's placeholder. No request is sent and the
// output display is left alone.
func (c *Controller) ChangeLanguage(name string) error {
	lang, err := c.selectLanguage(name)
	if err != nil {
		return err
	}
	if editor := c.currentEditor(); editor != nil {
		editor.SetValue(c.Placeholder(lang))
	}
	debug.Log("ide", "language changed", "language", lang)
	return nil
}

// SelectLanguage switches the language mode, the host selector and the
// controller state to lang but keeps the editor content.
func (c *Controller) SelectLanguage(name string) error {
	lang, err := c.selectLanguage(name)
	if err != nil {
		return err
	}
	debug.Log("ide", "language selected", "language", lang)
	return nil
}

func (c *Controller) selectLanguage(name string) (api.Language, error) {
	lang, err := api.ParseLanguage(name)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	editor := c.editor
	c.state.Language = lang
	c.mu.Unlock()

	if editor != nil {
		editor.SetLanguage(lang)
	}
	c.host.SelectLanguage(lang)
	return lang, nil
}

func (c *Controller) currentEditor() Editor {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editor
}

// State returns a snapshot of the controller state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// OnTransition registers fn to be called after every phase change.
// Observers run on the goroutine that caused the change.
func (c *Controller) OnTransition(fn func(Transition)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, fn)
}

// transition moves to phase `to` and renders d. When owner is non-empty the
// move only happens if owner is still the current run, so a superseded or
// cleared submission cannot overwrite the display.
func (c *Controller) transition(to Phase, runID string, d Display, owner string) {
	c.mu.Lock()
	if owner != "" && c.state.RunID != owner {
		c.mu.Unlock()
		debug.Log("ide", "stale completion dropped", "run_id", owner)
		return
	}

	from := c.state.Phase
	changed := from != to
	if changed {
		if err := ValidateTransition(from, to); err != nil {
			c.mu.Unlock()
			c.logger.Error("phase transition rejected", "error", err)
			return
		}
	}
	if to == PhasePending {
		changed = true
	}

	c.state.Phase = to
	c.state.RunID = runID
	c.state.Display = d
	c.host.Render(d)

	var observers []func(Transition)
	if changed {
		observers = append(observers, c.observers...)
	}
	c.mu.Unlock()

	t := Transition{From: from, To: to, RunID: runID, Display: d}
	for _, fn := range observers {
		fn(t)
	}
}
