package ports

import (
	"context"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunRunStoreContract runs a suite of tests to verify that a RunStore implementation
// adheres to the defined interface contract.
func RunRunStoreContract(t *testing.T, store RunStore) {
	ctx := context.Background()
	prefix := "contract-run-" + time.Now().Format("20060102150405")

	newRecord := func(id string) *domain.RunRecord {
		return &domain.RunRecord{
			ID: id,
			Run: domain.Run{
				Automaton: "ab-pattern",
				Input:     "aa",
				Trace:     []domain.State{"q0", "q1", "q4"},
				Accepted:  true,
				Verdict:   domain.VerdictAccepted,
				Consumed:  2,
			},
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("Save and Load", func(t *testing.T) {
		id := prefix + "-save"
		record := newRecord(id)
		sym := domain.Symbol('c')
		record.Run.Offending = &sym

		err := store.Save(ctx, record)
		require.NoError(t, err, "Save should not return error")
		defer func() { _ = store.Delete(ctx, id) }()

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, record.ID, loaded.ID)
		assert.Equal(t, record.Run.Trace, loaded.Run.Trace)
		assert.Equal(t, record.Run.Verdict, loaded.Run.Verdict)
		assert.True(t, loaded.Run.Accepted)
		require.NotNil(t, loaded.Run.Offending)
		assert.Equal(t, domain.Symbol('c'), *loaded.Run.Offending)
		assert.True(t, record.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Replacement character survives", func(t *testing.T) {
		id := prefix + "-fffd"
		record := newRecord(id)
		record.Run.Input = "A\xff1"
		record.Run.Accepted = false
		record.Run.Verdict = domain.VerdictInvalidSymbol
		sym := domain.Symbol(utf8.RuneError)
		record.Run.Offending = &sym

		require.NoError(t, store.Save(ctx, record))
		defer func() { _ = store.Delete(ctx, id) }()

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, loaded.Run.Offending)
		assert.Equal(t, domain.Symbol(utf8.RuneError), *loaded.Run.Offending)
		assert.Equal(t, domain.VerdictInvalidSymbol, loaded.Run.Verdict)
	})

	t.Run("Stored record is isolated from caller", func(t *testing.T) {
		id := prefix + "-isolated"
		record := newRecord(id)
		require.NoError(t, store.Save(ctx, record))
		defer func() { _ = store.Delete(ctx, id) }()

		record.Run.Trace[0] = "mutated"

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.State("q0"), loaded.Run.Trace[0])
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+prefix)
		assert.ErrorIs(t, err, domain.ErrRunNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		id := prefix + "-delete"
		require.NoError(t, store.Save(ctx, newRecord(id)))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, domain.ErrRunNotFound, "Load after Delete should return ErrRunNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := prefix + "-1"
		id2 := prefix + "-2"
		_ = store.Save(ctx, newRecord(id1))
		_ = store.Save(ctx, newRecord(id2))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
