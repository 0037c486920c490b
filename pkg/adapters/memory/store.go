package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.RunStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.RunRecord
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.RunRecord),
	}
}

// Save persists the record in memory.
func (s *Store) Save(ctx context.Context, record *domain.RunRecord) error {
	// Deep copy to ensure isolation, similar to serialization
	copied := *record
	copied.Run = record.Run.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[record.ID] = &copied
	return nil
}

// Load retrieves the record from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.data[id]
	if !ok {
		return nil, domain.ErrRunNotFound
	}

	// Copy on read so callers can't mutate stored traces through the pointer
	ret := *record
	ret.Run = record.Run.Clone()
	return &ret, nil
}

// Delete removes the record.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored record IDs, oldest first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*domain.RunRecord, 0, len(s.data))
	for _, r := range s.data {
		records = append(records, r)
	}
	slices.SortFunc(records, func(a, b *domain.RunRecord) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	ids := make([]string, len(records))
	for i, r := range records {
		ids[i] = r.ID
	}
	return ids, nil
}
