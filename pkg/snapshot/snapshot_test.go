package snapshot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestSaveAndLoad(t *testing.T) {
	cache := openTestCache(t)

	saved := payload{Name: "rosters", Items: []string{"a", "b"}}
	require.NoError(t, cache.Save("rosters", saved))

	var loaded payload
	ok, err := cache.Load("rosters", &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, saved, loaded)
}

func TestLoadMissingKey(t *testing.T) {
	cache := openTestCache(t)

	var loaded payload
	ok, err := cache.Load("absent", &loaded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveOverwrites(t *testing.T) {
	cache := openTestCache(t)

	require.NoError(t, cache.Save("k", payload{Name: "first"}))
	require.NoError(t, cache.Save("k", payload{Name: "second"}))

	var loaded payload
	ok, err := cache.Load("k", &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", loaded.Name)
}

func TestReopenKeepsSnapshots(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots.db")

	cache, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, cache.Save("k", payload{Name: "persisted"}))
	require.NoError(t, cache.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	var loaded payload
	ok, err := reopened.Load("k", &loaded)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "persisted", loaded.Name)
}
