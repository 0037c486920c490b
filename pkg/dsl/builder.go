package dsl

import (
	"fmt"

	"github.com/aretw0/automata/pkg/domain"
)

// Builder manages the automaton construction.
type Builder struct {
	name        string
	description string
	alphabet    []domain.Symbol
	start       domain.State
	order       []domain.State
	states      map[domain.State]*StateBuilder
	errs        []error
}

// New creates a new automaton builder.
func New(name string) *Builder {
	return &Builder{
		name:   name,
		states: make(map[domain.State]*StateBuilder),
	}
}

// Describe sets the human readable description of the language.
func (b *Builder) Describe(text string) *Builder {
	b.description = text
	return b
}

// Alphabet adds the symbols of the given classes to the alphabet.
func (b *Builder) Alphabet(classes ...Class) *Builder {
	for _, c := range classes {
		b.alphabet = append(b.alphabet, c.symbols...)
	}
	return b
}

// AlphabetSpec parses class specs such as "a-z0-9@." and adds them to the alphabet.
// Parse errors are reported by Build.
func (b *Builder) AlphabetSpec(specs ...string) *Builder {
	for _, spec := range specs {
		c, err := ParseClass(spec)
		if err != nil {
			b.errs = append(b.errs, fmt.Errorf("alphabet: %w", err))
			continue
		}
		b.Alphabet(c)
	}
	return b
}

// State declares a state in the automaton.
// If the state already exists, it returns the existing builder.
func (b *Builder) State(id domain.State) *StateBuilder {
	if sb, ok := b.states[id]; ok {
		return sb
	}
	sb := &StateBuilder{id: id, builder: b}
	b.states[id] = sb
	b.order = append(b.order, id)
	return sb
}

// Definition expands the declared states and classes into a domain.Definition.
func (b *Builder) Definition() (domain.Definition, error) {
	def := domain.Definition{
		Name:        b.name,
		Description: b.description,
		States:      append([]domain.State(nil), b.order...),
		Alphabet:    append([]domain.Symbol(nil), b.alphabet...),
		Start:       b.start,
	}

	for _, id := range b.order {
		sb := b.states[id]
		if sb.accepting {
			def.Accepting = append(def.Accepting, id)
		}
		for _, edge := range sb.edges {
			for _, sym := range edge.class.symbols {
				def.Transitions = append(def.Transitions, domain.Transition{
					From:   id,
					Symbol: sym,
					To:     edge.to,
				})
			}
		}
	}

	if len(b.errs) > 0 {
		return def, &domain.DefinitionError{Name: b.name, Errors: append([]error(nil), b.errs...)}
	}
	return def, nil
}

// Build compiles the declared states into an immutable Automaton.
func (b *Builder) Build() (*domain.Automaton, error) {
	def, err := b.Definition()
	if err != nil {
		return nil, err
	}

	a, err := domain.NewAutomaton(def)
	if err != nil {
		return nil, fmt.Errorf("failed to build automaton %s: %w", b.name, err)
	}
	return a, nil
}

// MustBuild is like Build but panics on error.
// Intended for package-level tables whose correctness is covered by tests.
func (b *Builder) MustBuild() *domain.Automaton {
	a, err := b.Build()
	if err != nil {
		panic(err)
	}
	return a
}
