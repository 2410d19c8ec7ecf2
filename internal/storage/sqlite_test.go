package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPutGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Put(ctx, "k", []byte(`{"a":1}`)))

	got, err := db.Get(ctx, "k")
	require.NoError(t, err)
	require.JSONEq(t, `{"a":1}`, string(got))

	// Overwrite
	require.NoError(t, db.Put(ctx, "k", []byte(`{"a":2}`)))
	got, err = db.Get(ctx, "k")
	require.NoError(t, err)
	require.JSONEq(t, `{"a":2}`, string(got))
}

func TestGetMissing(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Get(context.Background(), "nope")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPutAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	entries := map[string][]byte{
		KeyProjects: []byte(`[]`),
		KeyTasks:    []byte(`[{"id":"t1"}]`),
	}
	require.NoError(t, db.PutAll(ctx, entries))

	got, err := db.Get(ctx, KeyTasks)
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"t1"}]`, string(got))
}

func TestDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Put(ctx, "k", []byte(`1`)))
	require.NoError(t, db.Delete(ctx, "k"))

	_, err := db.Get(ctx, "k")
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting again is fine
	require.NoError(t, db.Delete(ctx, "k"))
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := t.TempDir() + "/kv.db"
	ctx := context.Background()

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Put(ctx, "k", []byte(`"v"`)))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	got, err := db.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, `"v"`, string(got))
}
