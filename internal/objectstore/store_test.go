package objectstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func openMemStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })
	return s
}

func TestStorePutGet(t *testing.T) {
	s := openMemStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "widget", "w1", doc{Name: "first", Count: 3}))

	var got doc
	require.NoError(t, s.Get(ctx, "widget", "w1", &got))
	assert.Equal(t, doc{Name: "first", Count: 3}, got)
}

func TestStorePutOverwrites(t *testing.T) {
	s := openMemStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "widget", "w1", doc{Name: "v1"}))
	require.NoError(t, s.Put(ctx, "widget", "w1", doc{Name: "v2"}))

	var got doc
	require.NoError(t, s.Get(ctx, "widget", "w1", &got))
	assert.Equal(t, "v2", got.Name)
}

func TestStoreGetMissing(t *testing.T) {
	s := openMemStore(t)

	var got doc
	err := s.Get(context.Background(), "widget", "nope", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreExists(t *testing.T) {
	s := openMemStore(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "widget", "w1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "widget", "w1", doc{}))

	ok, err = s.Exists(ctx, "widget", "w1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStoreDelete(t *testing.T) {
	s := openMemStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "widget", "w1", doc{}))
	require.NoError(t, s.Delete(ctx, "widget", "w1"))

	assert.ErrorIs(t, s.Delete(ctx, "widget", "w1"), ErrNotFound)
}

func TestStoreListInsertionOrder(t *testing.T) {
	s := openMemStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "widget", "b", doc{Name: "b"}))
	require.NoError(t, s.Put(ctx, "widget", "a", doc{Name: "a"}))
	require.NoError(t, s.Put(ctx, "gadget", "x", doc{Name: "x"}))

	docs, err := s.List(ctx, "widget")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Contains(t, string(docs[0]), `"b"`)
	assert.Contains(t, string(docs[1]), `"a"`)
}

func TestStoreOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, "widget", "w1", doc{Name: "persisted"}))
	require.NoError(t, s.Close())

	// Reopen and read back.
	s, err = Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, s.Close()) })

	var got doc
	require.NoError(t, s.Get(ctx, "widget", "w1", &got))
	assert.Equal(t, "persisted", got.Name)
}
