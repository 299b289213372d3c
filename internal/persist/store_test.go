package persist

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsername(t *testing.T) {
	assert.Equal(t, "guest", Username(""))
	assert.Equal(t, "guest", Username("   "))
	assert.Equal(t, "ada", Username(" ada "))
}

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	fs, err := NewFileStore(filepath.Join(dir, "data", "sessions.json"))
	require.NoError(t, err)
	db, err := NewSQLiteStore(filepath.Join(dir, "arrays.db"))
	require.NoError(t, err)

	stores := map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
		"sqlite": db,
	}
	t.Cleanup(func() {
		for _, s := range stores {
			s.Close()
		}
	})
	return stores
}

func TestStores(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			got, err := s.Get(ctx, "nobody")
			require.NoError(t, err)
			assert.Nil(t, got)

			require.NoError(t, s.Put(ctx, "bob", []int{3, 1, 2}))
			require.NoError(t, s.Put(ctx, "alice", []int{9}))
			require.NoError(t, s.Put(ctx, "bob", []int{7, 8}))

			got, err = s.Get(ctx, "bob")
			require.NoError(t, err)
			assert.Equal(t, []int{7, 8}, got)

			require.NoError(t, s.Put(ctx, "empty", nil))
			got, err = s.Get(ctx, "empty")
			require.NoError(t, err)
			assert.Empty(t, got)

			users, err := s.Users(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"alice", "bob", "empty"}, users)
		})
	}
}

func TestFileStoreFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	s, err := NewFileStore(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(data))

	require.NoError(t, s.Put(context.Background(), "guest", []int{1, 2}))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"guest":[1,2]}`, string(data))
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, err = s.Get(context.Background(), "guest")
	assert.Error(t, err)
}

func TestSQLiteStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "arrays.db")
	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(context.Background(), "guest", []int{4, 5}))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(context.Background(), "guest")
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5}, got)
}

func TestOpenStore(t *testing.T) {
	_, err := OpenStore("redis", "")
	assert.Error(t, err)

	s, err := OpenStore("memory", "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)
}
