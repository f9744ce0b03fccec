// Package consent tracks the operator's batch-wide decision about running
// whisper fallback transcription. The state machine is separated from
// console I/O so the decision logic is testable without a terminal.
package consent

import (
	"fmt"
	"strings"

	"github.com/yiApollo/yttx/internal/model"
	"github.com/yiApollo/yttx/internal/prompt"
)

// State is the batch-wide consent value. It is monotone: once AcceptAll or
// DeclineAll is reached it never returns to Ask within the same batch.
type State int

const (
	StateAsk State = iota
	StateAcceptAll
	StateDeclineAll
)

func (s State) String() string {
	switch s {
	case StateAcceptAll:
		return "accept-all"
	case StateDeclineAll:
		return "decline-all"
	default:
		return "ask"
	}
}

// Manager resolves whether fallback transcription may run for the current
// video, prompting the operator only while the state is Ask.
type Manager struct {
	state    State
	prompter prompt.Prompter
}

// NewManager creates a Manager starting in the Ask state.
func NewManager(p prompt.Prompter) *Manager {
	return NewManagerWithState(p, StateAsk)
}

// NewManagerWithState creates a Manager with a preset state, used when a
// command-line flag answers the question up front.
func NewManagerWithState(p prompt.Prompter, state State) *Manager {
	return &Manager{state: state, prompter: p}
}

// State returns the current consent state.
func (m *Manager) State() State {
	return m.state
}

// Decide reports whether fallback transcription should run for the given
// video. Unrecognized input is re-prompted. A prompt failure (EOF, closed
// stdin) moves the state to DeclineAll: an unattended run must never start
// transcription work on its own.
func (m *Manager) Decide(ref *model.VideoRef) bool {
	switch m.state {
	case StateAcceptAll:
		return true
	case StateDeclineAll:
		return false
	}

	question := fmt.Sprintf(
		"%q has no captions on YouTube. Generate the transcript with Whisper? [Y]es / [A]ll / [N]o / [D]ecline all: ",
		ref.DisplayTitle(),
	)
	for {
		answer, err := m.prompter.Ask(question)
		if err != nil {
			m.state = StateDeclineAll
			return false
		}
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true
		case "a", "all":
			m.state = StateAcceptAll
			return true
		case "n", "no":
			return false
		case "d", "decline", "decline all":
			m.state = StateDeclineAll
			return false
		}
		// anything else: ask again
	}
}
