package dsl

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

type edge struct {
	class Class
	to    domain.State
}

// StateBuilder provides a fluent API for configuring a state.
type StateBuilder struct {
	id        domain.State
	accepting bool
	edges     []edge
	builder   *Builder
}

// Start marks the state as the initial state.
// Calling Start on another state replaces the previous choice.
func (s *StateBuilder) Start() *StateBuilder {
	s.builder.start = s.id
	return s
}

// Accepting marks the state as accepting.
func (s *StateBuilder) Accepting() *StateBuilder {
	s.accepting = true
	return s
}

// On adds δ(state, c) = to for every symbol in the class.
func (s *StateBuilder) On(c Class, to domain.State) *StateBuilder {
	s.edges = append(s.edges, edge{class: c, to: to})
	return s
}

// OnSpec is On with a class spec such as "1-9".
func (s *StateBuilder) OnSpec(spec string, to domain.State) *StateBuilder {
	c, err := ParseClass(spec)
	if err != nil {
		s.builder.errs = append(s.builder.errs, fmt.Errorf("state %s: %w", s.id, err))
		return s
	}
	return s.On(c, to)
}

// Literal chains one state per character of word, starting here and ending at final.
// Intermediate states are named by next, which receives the 1-based position.
func (s *StateBuilder) Literal(word string, next func(i int) domain.State, final domain.State) *StateBuilder {
	runes := []rune(word)
	cur := s
	for i, r := range runes {
		to := final
		if i < len(runes)-1 {
			to = next(i + 1)
		}
		cur.On(Literal(string(r)), to)
		cur = s.builder.State(to)
	}
	return cur
}
