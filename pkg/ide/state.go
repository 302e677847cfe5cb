package ide

import (
	"fmt"

	"github.com/rhuss/codepad/pkg/api"
)

// Phase is the controller's position in the execution lifecycle.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhasePending  Phase = "pending"
	PhaseRendered Phase = "rendered"
)

// validTransitions defines the allowed phase changes.
// A submit may interrupt a pending one, and clear may interrupt either.
var validTransitions = map[Phase][]Phase{
	PhaseIdle:     {PhasePending},
	PhasePending:  {PhasePending, PhaseRendered, PhaseIdle},
	PhaseRendered: {PhasePending, PhaseIdle},
}

// ValidateTransition checks whether moving from one phase to another is allowed.
func ValidateTransition(from, to Phase) error {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("invalid phase transition from %q to %q", from, to)
}

// Display is what the host's output region shows.
type Display struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error"`
}

// State is a snapshot of the controller.
type State struct {
	Phase    Phase        `json:"phase"`
	Display  Display      `json:"display"`
	Language api.Language `json:"language"`
	// RunID identifies the current submission; empty when idle.
	RunID string `json:"run_id,omitempty"`
}

// Transition is delivered to observers after every phase change.
type Transition struct {
	From    Phase
	To      Phase
	RunID   string
	Display Display
}
