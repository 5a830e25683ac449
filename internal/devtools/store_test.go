package devtools

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "sessions")
	store := NewStore(dir, 0, 0)

	sess := &Session{
		ID:                "sess-1",
		StartedAt:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Budget:            100,
		TotalTokensBefore: 150,
		TotalTokensAfter:  90,
		Iterations:        2,
		Status:            StatusSuccess,
		Snapshots:         Snapshots{Before: 150, After: 90},
	}
	require.NoError(t, store.Save(sess))

	loaded, err := store.Load("sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess.Budget, loaded.Budget)
	assert.Equal(t, sess.Status, loaded.Status)
	assert.True(t, sess.StartedAt.Equal(loaded.StartedAt))
}

func TestStore_RetentionCountKeepsMostRecent(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir, 0, 2)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		sess := &Session{ID: string(rune('a' + i)), StartedAt: base.Add(time.Duration(i) * time.Hour)}
		require.NoError(t, store.Save(sess))
	}

	remaining, err := store.List()
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "c", remaining[0].ID)
	assert.Equal(t, "b", remaining[1].ID)
}

func TestStore_RetentionDaysPrunesOld(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 7, 29, 0, 0, 0, 0, time.UTC)
	store := NewStore(dir, 7, 0)
	store.Now = func() time.Time { return now }

	require.NoError(t, store.Save(&Session{ID: "old", StartedAt: now.AddDate(0, 0, -30)}))
	require.NoError(t, store.Save(&Session{ID: "recent", StartedAt: now.AddDate(0, 0, -1)}))

	remaining, err := store.List()
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "recent", remaining[0].ID)
}
