package memory

import (
	"fmt"
	"sort"

	"github.com/aretw0/automata/pkg/domain"
)

// Loader implements ports.DefinitionLoader using an in-memory map.
type Loader struct {
	definitions map[string]domain.Definition
}

// NewLoader creates a new Loader from definitions, keyed by their Name.
func NewLoader(defs ...domain.Definition) (*Loader, error) {
	data := make(map[string]domain.Definition, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			return nil, fmt.Errorf("definition missing name")
		}
		if _, dup := data[def.Name]; dup {
			return nil, fmt.Errorf("duplicate definition %q", def.Name)
		}
		data[def.Name] = clone(def)
	}
	return &Loader{definitions: data}, nil
}

// GetDefinition returns a copy of the named definition.
func (l *Loader) GetDefinition(name string) (domain.Definition, error) {
	def, ok := l.definitions[name]
	if !ok {
		return domain.Definition{}, fmt.Errorf("%w: %s", domain.ErrDefinitionNotFound, name)
	}
	return clone(def), nil
}

// ListDefinitions returns all definition names.
func (l *Loader) ListDefinitions() ([]string, error) {
	keys := make([]string, 0, len(l.definitions))
	for k := range l.definitions {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}

func clone(def domain.Definition) domain.Definition {
	out := def
	out.States = append([]domain.State(nil), def.States...)
	out.Alphabet = append([]domain.Symbol(nil), def.Alphabet...)
	out.Accepting = append([]domain.State(nil), def.Accepting...)
	out.Transitions = append([]domain.Transition(nil), def.Transitions...)
	return out
}
