// Package session implements the interactive state machine that
// collects variable values between picking a snippet and rendering it.
//
// Exactly one session is live at a time. However a session ends,
// whether by completion, cancellation or a render failure, every
// variable value is cleared before the next Selecting turn, so nothing
// leaks into a later selection.
package session

import (
	"strings"

	"github.com/mikebarkmin/ulauncher-snippets/pkg/errors"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/logging"
	"github.com/mikebarkmin/ulauncher-snippets/pkg/types"
)

// State is the session's position in the collection flow
type State int

const (
	// StateSelecting means no snippet is picked yet
	StateSelecting State = iota
	// StateCollectingVariable means a variable awaits input
	StateCollectingVariable
	// StateReady means all variables are resolved
	StateReady
	// StateCancelled marks a cancelled turn; the session itself rests
	// in Selecting again afterwards
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateCollectingVariable:
		return "collecting-variable"
	case StateReady:
		return "ready"
	case StateCancelled:
		return "cancelled"
	}
	return "unknown"
}

// DefaultSentinel assigns the variable's declared default when
// submitted as input
const DefaultSentinel = "-"

// Session drives one selection from pick to completion or cancellation
type Session struct {
	state      State
	definition *types.SnippetDefinition
	current    *types.VariableSpec
}

// New creates a session in Selecting
func New() *Session {
	return &Session{state: StateSelecting}
}

// State returns the current state
func (s *Session) State() State {
	return s.state
}

// Definition returns the selected snippet, or nil outside a selection
func (s *Session) Definition() *types.SnippetDefinition {
	return s.definition
}

// Current returns the variable awaiting input, or nil
func (s *Session) Current() *types.VariableSpec {
	return s.current
}

// Select picks a definition. With unresolved variables the session
// moves to CollectingVariable on the first one in declared order;
// otherwise straight to Ready.
func (s *Session) Select(def *types.SnippetDefinition) error {
	if s.state != StateSelecting {
		return errors.Newf(errors.ErrState, "select is not valid in state %s", s.state)
	}
	if def == nil {
		return errors.New(errors.ErrInvalidInput, "select requires a definition")
	}

	s.definition = def
	s.advance()

	logger := logging.GetLogger("session")
	logger.Debug().Str("snippet", def.Name).Stringer("state", s.state).Msg("snippet selected")
	return nil
}

// Submit assigns raw input to the current variable. Input is trimmed;
// the "-" sentinel assigns the variable's declared default instead.
func (s *Session) Submit(raw string) error {
	if s.state != StateCollectingVariable {
		return errors.Newf(errors.ErrState, "submit is not valid in state %s", s.state)
	}

	value := strings.TrimSpace(raw)
	if value == DefaultSentinel {
		value = s.current.Default
	}
	s.current.Value = value
	s.current.IsSet = true

	s.advance()
	return nil
}

// Cancel aborts the selection, clearing the definition and every
// assigned variable value, and returns the session to Selecting.
func (s *Session) Cancel() {
	if s.definition != nil {
		logger := logging.GetLogger("session")
		logger.Debug().Str("snippet", s.definition.Name).Msg("session cancelled")
	}
	s.reset()
}

// Complete runs the render from Ready. Success or failure, the session
// is reset before returning so a failed render cannot leave stale
// values behind.
func (s *Session) Complete(render func(*types.SnippetDefinition) (types.RenderResult, error)) (types.RenderResult, error) {
	if s.state != StateReady {
		return types.RenderResult{}, errors.Newf(errors.ErrState, "complete is not valid in state %s", s.state)
	}
	defer s.reset()

	return render(s.definition)
}

// advance moves to the next unresolved variable, or Ready
func (s *Session) advance() {
	if next := s.definition.NextVariable(); next != nil {
		s.current = next
		s.state = StateCollectingVariable
		return
	}
	s.current = nil
	s.state = StateReady
}

// reset atomically clears all session-owned state
func (s *Session) reset() {
	if s.definition != nil {
		s.definition.ResetVariables()
	}
	s.definition = nil
	s.current = nil
	s.state = StateSelecting
}
