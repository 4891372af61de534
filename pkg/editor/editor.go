package editor

import (
	"strings"

	"github.com/arthur-debert/wpstack/pkg/errors"
	"github.com/arthur-debert/wpstack/pkg/logging"
	"github.com/arthur-debert/wpstack/pkg/settings"
)

// State is a state of the menu loop
type State int

const (
	StateDisplay State = iota
	StateAwaitSelection
	StateEditField
	StateCommitted
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateDisplay:
		return "display"
	case StateAwaitSelection:
		return "await-selection"
	case StateEditField:
		return "edit-field"
	case StateCommitted:
		return "committed"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further input is accepted.
func (s State) Terminal() bool {
	return s == StateCommitted || s == StateAborted
}

// Editor is the menu state machine. It holds the Settings being edited and
// replaces them wholesale on every accepted edit.
type Editor struct {
	options    []Option
	bySelector map[string]Option
	current    settings.Settings
	state      State
	editing    Option
}

// New creates an editor in the Display state.
func New(initial settings.Settings, options []Option) (*Editor, error) {
	if err := validateOptions(options); err != nil {
		return nil, err
	}

	bySelector := make(map[string]Option, len(options))
	for _, opt := range options {
		bySelector[opt.Selector] = opt
	}

	return &Editor{
		options:    options,
		bySelector: bySelector,
		current:    initial,
		state:      StateDisplay,
	}, nil
}

// State returns the current state.
func (e *Editor) State() State { return e.state }

// Settings returns the settings as edited so far.
func (e *Editor) Settings() settings.Settings { return e.current }

// Options returns the menu options in display order.
func (e *Editor) Options() []Option {
	out := make([]Option, len(e.options))
	copy(out, e.options)
	return out
}

// Editing returns the option being edited while in StateEditField.
func (e *Editor) Editing() (Option, bool) {
	if e.state != StateEditField {
		return Option{}, false
	}
	return e.editing, true
}

// Selectors lists every valid top-level input: the menu selectors followed
// by the commit and abort controls.
func (e *Editor) Selectors() []string {
	out := make([]string, 0, len(e.options)+2)
	for _, opt := range e.options {
		out = append(out, opt.Selector)
	}
	return append(out, CommitSelector, AbortSelector)
}

// Displayed records that the menu was rendered and moves to
// StateAwaitSelection.
func (e *Editor) Displayed() {
	if e.state == StateDisplay {
		e.state = StateAwaitSelection
	}
}

// Feed applies one line of input. Surrounding whitespace is trimmed first.
// INVALID_SELECTION and EMPTY_FIELD_VALUE errors leave the editor unchanged
// and expect the caller to prompt again.
func (e *Editor) Feed(line string) error {
	input := strings.TrimSpace(line)
	logger := logging.GetLogger("editor")

	switch e.state {
	case StateAwaitSelection:
		switch input {
		case CommitSelector:
			e.state = StateCommitted
		case AbortSelector:
			e.state = StateAborted
		default:
			opt, ok := e.bySelector[input]
			if !ok {
				return errors.Newf(errors.ErrInvalidSelection, "'%s' is not a valid response", input).
					WithDetail("input", input)
			}
			e.editing = opt
			e.state = StateEditField
		}
		logger.Debug().Str("input", input).Stringer("state", e.state).Msg("selection accepted")
		return nil

	case StateEditField:
		if input == "" {
			return errors.New(errors.ErrEmptyFieldValue, "a value is required").
				WithDetail("field", string(e.editing.Field))
		}
		e.current = e.current.Merge(e.editing.Field, input)
		logger.Debug().Str("field", string(e.editing.Field)).Msg("field updated")
		e.editing = Option{}
		e.state = StateDisplay
		return nil

	default:
		return errors.Newf(errors.ErrInternal, "editor does not accept input in state %s", e.state)
	}
}
