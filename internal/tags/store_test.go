package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()
	sqlStore, err := OpenSQLStore(filepath.Join(dir, "tags.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlStore.Close() })
	return map[string]Store{
		"json":   NewFileStore(filepath.Join(dir, "nested", "tags.json")),
		"sqlite": sqlStore,
	}
}

func TestTagRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			msg, err := store.Add("vim", "editor")
			require.NoError(t, err)
			require.Equal(t, "Added tag 'editor' to 'vim'", msg)

			_, err = store.Add("vim", "cli")
			require.NoError(t, err)
			_, err = store.Add("vim", "cli")
			require.NoError(t, err)
			_, err = store.Add("htop", "cli")
			require.NoError(t, err)

			loaded, err := store.Load()
			require.NoError(t, err)
			require.Equal(t, []string{"cli", "editor"}, loaded["vim"])

			all, err := store.All()
			require.NoError(t, err)
			require.Equal(t, []string{"cli", "editor"}, all)

			msg, err = store.Remove("vim", "editor")
			require.NoError(t, err)
			require.Equal(t, "Removed tag 'editor' from 'vim'", msg)
			_, err = store.Remove("vim", "cli")
			require.NoError(t, err)

			loaded, err = store.Load()
			require.NoError(t, err)
			_, present := loaded["vim"]
			require.False(t, present, "empty entries must be dropped")
			require.Equal(t, []string{"cli"}, loaded["htop"])
		})
	}
}

func TestRemoveMissingTag(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Remove("vim", "nope")
			require.ErrorIs(t, err, ErrNotTagged)
		})
	}
}

func TestEmptyTagRejected(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Add("vim", "   ")
			require.ErrorIs(t, err, ErrEmptyTag)
		})
	}
}

func TestFileStoreMissingFileIsEmpty(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	loaded, err := store.Load()
	require.NoError(t, err)
	require.Empty(t, loaded)
}

func TestFileStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tags.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	store := NewFileStore(path)
	_, err := store.Load()
	require.Error(t, err)
	_, err = store.Add("vim", "x")
	require.Error(t, err)
}

func TestOpenRejectsUnknownKind(t *testing.T) {
	_, err := Open("redis", filepath.Join(t.TempDir(), "x"))
	require.Error(t, err)
	s, err := Open("", filepath.Join(t.TempDir(), "tags.json"))
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, s)
}
