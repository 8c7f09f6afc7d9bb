package watchlist

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenscout/screenscout/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	return NewStore(db.Conn(), zerolog.Nop())
}

func TestStoreAddAndList(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first, err := store.Add(ctx, "movie", 157336, "Interstellar", "2014", "/poster.jpg")
	require.NoError(t, err)
	assert.NotEmpty(t, first.ID)
	assert.Equal(t, "movie:157336", first.Key)

	_, err = store.Add(ctx, "person", 525, "Christopher Nolan", "", "")
	require.NoError(t, err)

	entries, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	// Newest first.
	assert.Equal(t, "person:525", entries[0].Key)
	assert.Equal(t, "Interstellar", entries[1].Title)
}

func TestStoreDuplicateKey(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Add(ctx, "movie", 157336, "Interstellar", "2014", "")
	require.NoError(t, err)

	_, err = store.Add(ctx, "movie", 157336, "Interstellar (again)", "2014", "")
	assert.ErrorIs(t, err, ErrDuplicate)

	// Same ID under a different kind is a different key.
	_, err = store.Add(ctx, "person", 157336, "Coincidental ID", "", "")
	assert.NoError(t, err)
}

func TestStoreRemove(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry, err := store.Add(ctx, "movie", 1, "Some Film", "", "")
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, entry.ID))

	entries, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorIs(t, store.Remove(ctx, entry.ID), ErrNotFound)
}

func TestStoreListEmpty(t *testing.T) {
	store := newTestStore(t)

	entries, err := store.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}
