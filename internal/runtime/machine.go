package runtime

import (
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Machine adapts a plain automaton to ports.Recognizer.
type Machine struct {
	automaton *domain.Automaton
}

var _ ports.Recognizer = (*Machine)(nil)

// NewMachine wraps a.
func NewMachine(a *domain.Automaton) *Machine {
	return &Machine{automaton: a}
}

// Name returns the automaton name.
func (m *Machine) Name() string { return m.automaton.Name() }

// Automaton returns the wrapped automaton.
func (m *Machine) Automaton() *domain.Automaton { return m.automaton }

// Recognize runs input through the automaton.
func (m *Machine) Recognize(input string) domain.Run {
	return Run(m.automaton, input)
}
