package terminal

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rhuss/codepad/pkg/api"
	"github.com/rhuss/codepad/pkg/ide"
)

const (
	ansiRed   = "\x1b[31m"
	ansiDim   = "\x1b[2m"
	ansiReset = "\x1b[0m"
)

// Host renders controller output to a writer and holds the language
// selection and program input for the session.
type Host struct {
	mu       sync.Mutex
	out      io.Writer
	color    bool
	selected string
	input    string
}

var _ ide.Host = (*Host)(nil)

// NewHost creates a host writing to out. With color set, errors are shown
// in red and the pending message dimmed.
func NewHost(out io.Writer, color bool) *Host {
	return &Host{out: out, color: color}
}

func (h *Host) SelectedLanguage() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.selected
}

func (h *Host) SelectLanguage(l api.Language) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.selected = string(l)
}

func (h *Host) InputData() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.input
}

func (h *Host) SetInputData(v string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.input = v
}

// Render prints d. An empty display prints nothing.
func (h *Host) Render(d ide.Display) {
	if d.Text == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	text := d.Text
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	switch {
	case !h.color:
	case d.IsError:
		text = ansiRed + text + ansiReset
	case d.Text == ide.PendingText:
		text = ansiDim + text + ansiReset
	}
	fmt.Fprint(h.out, text)
}
