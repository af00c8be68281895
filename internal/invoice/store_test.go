package invoice

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveAndPath(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	url, err := store.Save("RE-2026-000001-abc123.pdf", []byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, "/invoices/RE-2026-000001-abc123.pdf", url)

	path, err := store.Path("RE-2026-000001-abc123.pdf")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))
}

func TestFileStore_RejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"../escape.pdf", "a/b.pdf", ""} {
		_, err := store.Save(name, []byte("x"))
		assert.Error(t, err, "name %q", name)

		_, err = store.Path(name)
		assert.Error(t, err, "name %q", name)
	}
}

func TestFileStore_RemoveToleratesMissing(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	require.NoError(t, err)

	assert.NoError(t, store.Remove("/invoices/never-written.pdf"))

	url, err := store.Save("gone.pdf", []byte("x"))
	require.NoError(t, err)
	require.NoError(t, store.Remove(url))
	_, err = os.Stat(filepath.Join(dir, "gone.pdf"))
	assert.True(t, os.IsNotExist(err))
}
