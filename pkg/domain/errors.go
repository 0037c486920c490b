package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Construction errors. They are wrapped by DefinitionError and can be matched with errors.Is.
var (
	ErrEmptyStates      = errors.New("automaton has no states")
	ErrEmptyAlphabet    = errors.New("automaton has an empty alphabet")
	ErrDuplicateState   = errors.New("duplicate state")
	ErrUnknownState     = errors.New("unknown state")
	ErrUnknownSymbol    = errors.New("symbol outside the alphabet")
	ErrNondeterministic = errors.New("conflicting transitions for the same state and symbol")
)

// ErrDefinitionNotFound is returned by loaders when a definition name is not known.
var ErrDefinitionNotFound = errors.New("definition not found")

// ErrUnknownAutomaton is returned when a recognizer name is not registered.
var ErrUnknownAutomaton = errors.New("unknown automaton")

// ErrRunNotFound is returned when a run ID cannot be found in the store.
var ErrRunNotFound = errors.New("run not found")

// DefinitionError collects every problem found while validating a Definition.
type DefinitionError struct {
	Name   string
	Errors []error
}

func (e *DefinitionError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("invalid automaton %q: %s", e.Name, e.Errors[0])
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "invalid automaton %q: %d errors:\n", e.Name, len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err)
	}
	return sb.String()
}

// Unwrap exposes the collected errors to errors.Is and errors.As.
func (e *DefinitionError) Unwrap() []error {
	return e.Errors
}
