package ide

import (
	"context"
	"strings"

	"github.com/rhuss/codepad/pkg/api"
)

// Editor is the code editing widget the controller drives.
type Editor interface {
	GetValue() string
	SetValue(string)
	SetLanguage(api.Language)
	// RegisterShortcut binds a key combo such as "ctrl+enter" to fn.
	RegisterShortcut(combo string, fn func()) error
}

// EditorOptions are passed to an EditorFactory when the controller starts.
type EditorOptions struct {
	InitialValue string
	Language     api.Language
	Theme        string
	FontSize     int
}

// EditorFactory creates the editor widget.
type EditorFactory func(EditorOptions) (Editor, error)

// Host is the page around the editor: the language selector, the input
// field and the output region.
type Host interface {
	// SelectedLanguage returns the selector's raw value.
	SelectedLanguage() string
	SelectLanguage(api.Language)
	InputData() string
	SetInputData(string)
	Render(Display)
}

// Executor submits an execution request. *client.Client satisfies it.
type Executor interface {
	Execute(ctx context.Context, req *api.ExecutionRequest) (*api.ExecutionResult, error)
}

// NormalizeCombo canonicalizes a key combo: lower case, "+" separated,
// with "cmd"/"ctrlcmd" folded to "ctrl" and "return" to "enter".
func NormalizeCombo(combo string) string {
	parts := strings.FieldsFunc(strings.ToLower(combo), func(r rune) bool {
		return r == '+' || r == '-' || r == ' '
	})
	for i, p := range parts {
		switch p {
		case "cmd", "ctrlcmd", "control", "meta":
			parts[i] = "ctrl"
		case "return":
			parts[i] = "enter"
		}
	}
	return strings.Join(parts, "+")
}
