package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/automata/pkg/adapters/memory"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunRunStoreContract(t, store)
}

func TestMemoryStore_ListOrdersByCreation(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "late", CreatedAt: base.Add(time.Minute)}))
	require.NoError(t, store.Save(ctx, &domain.RunRecord{ID: "early", CreatedAt: base}))

	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "late"}, ids)
}
