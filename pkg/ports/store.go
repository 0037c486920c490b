package ports

import (
	"context"

	"github.com/aretw0/automata/pkg/domain"
)

// RunStore defines the interface for persisting run records.
type RunStore interface {
	// Save persists the record under record.ID.
	Save(ctx context.Context, record *domain.RunRecord) error

	// Load retrieves a record.
	// Returns domain.ErrRunNotFound if the record does not exist.
	Load(ctx context.Context, id string) (*domain.RunRecord, error)

	// Delete removes a record.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of the stored records.
	List(ctx context.Context) ([]string, error)
}
