package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryKV_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	kv := NewInMemoryKV[string]()

	_, ok, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, "k", "v1", map[string]any{"source": "test"}))
	entry, ok, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v1", entry.Data)
	assert.Equal(t, "test", entry.Metadata["source"])
	assert.False(t, entry.CreatedAt.IsZero())
	assert.False(t, entry.UpdatedAt.IsZero())

	deleted, err := kv.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = kv.Delete(ctx, "k")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestInMemoryKV_OverwritePreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	kv := NewInMemoryKV[string]()

	require.NoError(t, kv.Set(ctx, "k", "v1", nil))
	first, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)

	require.NoError(t, kv.Set(ctx, "k", "v2", nil))
	second, _, err := kv.Get(ctx, "k")
	require.NoError(t, err)

	assert.Equal(t, "v2", second.Data)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
}

func TestInMemoryVector_SearchRanksByOverlap(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryVector[string](func(s string) string { return s })

	require.NoError(t, store.Set(ctx, "a", "go concurrency patterns", nil))
	require.NoError(t, store.Set(ctx, "b", "go channels and goroutines", nil))
	require.NoError(t, store.Set(ctx, "c", "python decorators", nil))

	results, err := store.Search(ctx, "go concurrency", SearchOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "a", results[0].Key, "both query words match entry a")
	assert.Equal(t, 1.0, results[0].Score)
}

func TestInMemoryVector_LimitAndThreshold(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryVector[string](func(s string) string { return s })

	require.NoError(t, store.Set(ctx, "a", "go concurrency patterns", nil))
	require.NoError(t, store.Set(ctx, "b", "go channels", nil))
	require.NoError(t, store.Set(ctx, "c", "python decorators", nil))

	results, err := store.Search(ctx, "go concurrency", SearchOptions{Threshold: 0.6})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "a", results[0].Key)

	results, err = store.Search(ctx, "go", SearchOptions{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestInMemoryVector_TieBreaksByKey(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryVector[string](func(s string) string { return s })

	require.NoError(t, store.Set(ctx, "b", "go tooling", nil))
	require.NoError(t, store.Set(ctx, "a", "go modules", nil))

	results, err := store.Search(ctx, "go", SearchOptions{})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "a", results[0].Key)
	assert.Equal(t, "b", results[1].Key)
}

func TestInMemoryVector_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryVector[string](func(s string) string { return s })

	require.NoError(t, store.Set(ctx, "k", "value text", nil))
	entry, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "value text", entry.Data)

	deleted, err := store.Delete(ctx, "k")
	require.NoError(t, err)
	assert.True(t, deleted)

	_, ok, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
