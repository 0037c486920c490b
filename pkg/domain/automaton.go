package domain

import (
	"fmt"
	"slices"
)

// Automaton is a validated deterministic finite automaton.
// It is immutable after NewAutomaton returns: every accessor hands out copies,
// so a single value can be shared by any number of concurrent runs.
type Automaton struct {
	name        string
	description string

	states   []State
	stateIdx map[State]int

	alphabet    []Symbol
	alphabetSet map[Symbol]struct{}

	start     State
	accepting map[State]struct{}

	transitions map[transitionKey]State
	ordered     []Transition
}

// NewAutomaton validates def and builds an immutable Automaton.
// All violations are reported at once in a *DefinitionError.
func NewAutomaton(def Definition) (*Automaton, error) {
	a := &Automaton{
		name:        def.Name,
		description: def.Description,
		stateIdx:    make(map[State]int, len(def.States)),
		alphabetSet: make(map[Symbol]struct{}, len(def.Alphabet)),
		accepting:   make(map[State]struct{}, len(def.Accepting)),
		transitions: make(map[transitionKey]State, len(def.Transitions)),
	}

	var errs []error

	if len(def.States) == 0 {
		errs = append(errs, ErrEmptyStates)
	}
	for _, s := range def.States {
		if _, dup := a.stateIdx[s]; dup {
			errs = append(errs, fmt.Errorf("%w: %q", ErrDuplicateState, s))
			continue
		}
		a.stateIdx[s] = len(a.states)
		a.states = append(a.states, s)
	}

	if len(def.Alphabet) == 0 {
		errs = append(errs, ErrEmptyAlphabet)
	}
	for _, sym := range def.Alphabet {
		if _, dup := a.alphabetSet[sym]; dup {
			continue
		}
		a.alphabetSet[sym] = struct{}{}
		a.alphabet = append(a.alphabet, sym)
	}
	slices.Sort(a.alphabet)

	if _, ok := a.stateIdx[def.Start]; !ok {
		errs = append(errs, fmt.Errorf("start state %q: %w", def.Start, ErrUnknownState))
	}
	a.start = def.Start

	for _, s := range def.Accepting {
		if _, ok := a.stateIdx[s]; !ok {
			errs = append(errs, fmt.Errorf("accepting state %q: %w", s, ErrUnknownState))
			continue
		}
		a.accepting[s] = struct{}{}
	}

	for _, t := range def.Transitions {
		valid := true
		if _, ok := a.stateIdx[t.From]; !ok {
			errs = append(errs, fmt.Errorf("transition δ(%s,%s): source %q: %w", t.From, t.Symbol, t.From, ErrUnknownState))
			valid = false
		}
		if _, ok := a.stateIdx[t.To]; !ok {
			errs = append(errs, fmt.Errorf("transition δ(%s,%s): destination %q: %w", t.From, t.Symbol, t.To, ErrUnknownState))
			valid = false
		}
		if _, ok := a.alphabetSet[t.Symbol]; !ok {
			errs = append(errs, fmt.Errorf("transition δ(%s,%s): %w", t.From, t.Symbol, ErrUnknownSymbol))
			valid = false
		}
		if !valid {
			continue
		}

		key := transitionKey{from: t.From, symbol: t.Symbol}
		if existing, ok := a.transitions[key]; ok {
			if existing != t.To {
				errs = append(errs, fmt.Errorf("δ(%s,%s) = %s and %s: %w", t.From, t.Symbol, existing, t.To, ErrNondeterministic))
			}
			continue
		}
		a.transitions[key] = t.To
		a.ordered = append(a.ordered, t)
	}

	if len(errs) > 0 {
		return nil, &DefinitionError{Name: def.Name, Errors: errs}
	}

	slices.SortStableFunc(a.ordered, func(x, y Transition) int {
		if d := a.stateIdx[x.From] - a.stateIdx[y.From]; d != 0 {
			return d
		}
		return int(x.Symbol) - int(y.Symbol)
	})

	return a, nil
}

// Name returns the automaton's registry name.
func (a *Automaton) Name() string { return a.name }

// Description returns the human readable language description, if any.
func (a *Automaton) Description() string { return a.description }

// Start returns the initial state.
func (a *Automaton) Start() State { return a.start }

// States returns the states in declaration order.
func (a *Automaton) States() []State {
	return slices.Clone(a.states)
}

// Alphabet returns the alphabet sorted by code point.
func (a *Automaton) Alphabet() []Symbol {
	return slices.Clone(a.alphabet)
}

// Accepting returns the accepting states in declaration order.
func (a *Automaton) Accepting() []State {
	out := make([]State, 0, len(a.accepting))
	for _, s := range a.states {
		if _, ok := a.accepting[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

// IsAccepting reports whether s is an accepting state.
func (a *Automaton) IsAccepting(s State) bool {
	_, ok := a.accepting[s]
	return ok
}

// InAlphabet reports whether sym belongs to the alphabet.
func (a *Automaton) InAlphabet(sym Symbol) bool {
	_, ok := a.alphabetSet[sym]
	return ok
}

// Next returns δ(from, sym). The boolean is false when no transition is defined.
func (a *Automaton) Next(from State, sym Symbol) (State, bool) {
	to, ok := a.transitions[transitionKey{from: from, symbol: sym}]
	return to, ok
}

// Transitions returns every transition ordered by source state, then symbol.
func (a *Automaton) Transitions() []Transition {
	return slices.Clone(a.ordered)
}

// TransitionsFrom returns the outgoing transitions of s ordered by symbol.
func (a *Automaton) TransitionsFrom(s State) []Transition {
	var out []Transition
	for _, t := range a.ordered {
		if t.From == s {
			out = append(out, t)
		}
	}
	return out
}

// IsDeadEnd reports whether s has no outgoing transitions.
func (a *Automaton) IsDeadEnd(s State) bool {
	for _, t := range a.ordered {
		if t.From == s {
			return false
		}
	}
	return true
}

// Unreachable returns the states that cannot be reached from the start state.
func (a *Automaton) Unreachable() []State {
	seen := map[State]bool{a.start: true}
	queue := []State{a.start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, t := range a.TransitionsFrom(cur) {
			if !seen[t.To] {
				seen[t.To] = true
				queue = append(queue, t.To)
			}
		}
	}

	var out []State
	for _, s := range a.states {
		if !seen[s] {
			out = append(out, s)
		}
	}
	return out
}

// Definition returns a serialisable copy of the automaton.
func (a *Automaton) Definition() Definition {
	return Definition{
		Name:        a.name,
		Description: a.description,
		States:      a.States(),
		Alphabet:    a.Alphabet(),
		Start:       a.start,
		Accepting:   a.Accepting(),
		Transitions: a.Transitions(),
	}
}
