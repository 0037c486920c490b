package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// DefinitionLoader defines how automaton definitions are retrieved.
// This allows the storage layer (Loam, Memory) to be decoupled.
type DefinitionLoader interface {
	// GetDefinition retrieves a definition by name.
	// Returns domain.ErrDefinitionNotFound if the name is unknown.
	GetDefinition(name string) (domain.Definition, error)

	// ListDefinitions returns the names of every available definition, sorted.
	ListDefinitions() ([]string, error)
}

// Watchable is implemented by loaders that can report changes to their definitions.
type Watchable interface {
	// Watch emits the ID of each changed document until ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
