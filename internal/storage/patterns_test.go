package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faturaflow/faturaflow/internal/common"
)

func TestUpsertCreatesAndReinforces(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	first, err := store.Upsert(ctx, "supermercado abc ltda", "alimentacao")
	require.NoError(t, err)
	assert.Equal(t, 1, first.UsageCount)
	assert.Equal(t, "supermercado abc ltda", first.NormalizedDescription)
	assert.Equal(t, "alimentacao", first.Category)
	assert.InDelta(t, 0.9, first.ConfidenceSeed, 0.0001)

	second, err := store.Upsert(ctx, "supermercado abc ltda", "alimentacao")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 2, second.UsageCount)

	// A different category for the same description is a separate pattern.
	other, err := store.Upsert(ctx, "supermercado abc ltda", "compras")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
	assert.Equal(t, 1, other.UsageCount)
}

func TestUpsertRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_, err := store.Upsert(ctx, "", "alimentacao")
	assert.Error(t, err)

	_, err = store.Upsert(ctx, "supermercado abc", "not-a-category")
	assert.Error(t, err)
}

func TestExactLookup(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_, err := store.ExactLookup(ctx, "never seen")
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.Upsert(ctx, "farmacia central", "saude")
	require.NoError(t, err)
	// Competing category reinforced twice: it should win the lookup.
	for i := 0; i < 2; i++ {
		_, err = store.Upsert(ctx, "farmacia central", "compras")
		require.NoError(t, err)
	}

	got, err := store.ExactLookup(ctx, "farmacia central")
	require.NoError(t, err)
	assert.Equal(t, "compras", got.Category)
	assert.Equal(t, 2, got.UsageCount)
}

func TestKeywordLookup(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_, err := store.Upsert(ctx, "farmacia central", "saude")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = store.Upsert(ctx, "farmacia pague menos", "saude")
		require.NoError(t, err)
	}
	_, err = store.Upsert(ctx, "posto shell", "transporte")
	require.NoError(t, err)

	patterns, err := store.KeywordLookup(ctx, "farmacia", 10)
	require.NoError(t, err)
	require.Len(t, patterns, 2)
	// Descending usage count.
	assert.Equal(t, "farmacia pague menos", patterns[0].NormalizedDescription)
	assert.Equal(t, "farmacia central", patterns[1].NormalizedDescription)

	limited, err := store.KeywordLookup(ctx, "farmacia", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "farmacia pague menos", limited[0].NormalizedDescription)

	none, err := store.KeywordLookup(ctx, "inexistente", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListPatterns(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	_, err := store.Upsert(ctx, "farmacia central", "saude")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = store.Upsert(ctx, "posto shell", "transporte")
		require.NoError(t, err)
	}

	patterns, err := store.ListPatterns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, patterns, 2)
	assert.Equal(t, "posto shell", patterns[0].NormalizedDescription)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStorage(t)

	// newTestStorage already migrated once.
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx))
}
