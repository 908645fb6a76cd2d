package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]KV {
	t.Helper()
	dir, err := OpenDir(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return map[string]KV{
		"memory": NewMemory(),
		"dir":    dir,
		"sqlite": db,
	}
}

func TestKVContract(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := kv.Get("tick-tock-state")
			require.NoError(t, err)
			assert.False(t, ok, "fresh store should be empty")

			require.NoError(t, kv.Set("tick-tock-state", `{"mode":"intro"}`))
			got, ok, err := kv.Get("tick-tock-state")
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, `{"mode":"intro"}`, got)

			require.NoError(t, kv.Set("tick-tock-state", `{"mode":"dashboard"}`))
			got, _, err = kv.Get("tick-tock-state")
			require.NoError(t, err)
			assert.Equal(t, `{"mode":"dashboard"}`, got)

			require.NoError(t, kv.Remove("tick-tock-state"))
			_, ok, err = kv.Get("tick-tock-state")
			require.NoError(t, err)
			assert.False(t, ok, "removed key should be absent")

			require.NoError(t, kv.Remove("tick-tock-state"), "removing a missing key is not an error")
		})
	}
}

func TestKVRejectsInvalidKeys(t *testing.T) {
	for name, kv := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "../escape", " padded", "a/b", ".."} {
				assert.Error(t, kv.Set(key, "x"), "Set(%q)", key)
				_, ok, err := kv.Get(key)
				assert.Error(t, err, "Get(%q)", key)
				assert.False(t, ok, "Get(%q)", key)
				assert.Error(t, kv.Remove(key), "Remove(%q)", key)
			}
		})
	}
}

func TestDirPersistsAcrossReopen(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "data")
	first, err := OpenDir(root)
	require.NoError(t, err)
	require.NoError(t, first.Set("tick-tock-state", "hello"))

	second, err := OpenDir(root)
	require.NoError(t, err)
	got, ok, err := second.Get("tick-tock-state")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "hello", got)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files should not be left behind")
	assert.Equal(t, "tick-tock-state"+dirValueExt, entries[0].Name())
}

func TestSQLitePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "state.db")
	first, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, first.Set("tick-tock-state", "persisted"))
	require.NoError(t, first.Close())

	second, err := OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()
	got, ok, err := second.Get("tick-tock-state")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "persisted", got)
}

func TestOpenSelectsBackend(t *testing.T) {
	kv, err := Open(Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)

	kv, err = Open(Options{Backend: BackendDir, Path: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &Dir{}, kv)

	kv, err = Open(Options{Backend: BackendSQLite, Path: filepath.Join(t.TempDir(), "s.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, kv)
	require.NoError(t, Close(kv))
}

func TestOpenReportsUnavailable(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	_, err := Open(Options{Backend: BackendDir, Path: filepath.Join(blocker, "data")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = Open(Options{Backend: BackendDir, Path: "  "})
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = Open(Options{Backend: "tape"})
	assert.True(t, errors.Is(err, ErrUnavailable))
}

func TestParseBackend(t *testing.T) {
	cases := map[string]Backend{
		"":         BackendDir,
		"dir":      BackendDir,
		" SQLite ": BackendSQLite,
		"memory":   BackendMemory,
	}
	for in, want := range cases {
		got, err := ParseBackend(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseBackend("redis")
	assert.Error(t, err)
}

func TestCloseAcceptsNonClosers(t *testing.T) {
	assert.NoError(t, Close(nil))
	assert.NoError(t, Close(NewMemory()))
}
