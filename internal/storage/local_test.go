package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *LocalStorage {
	t.Helper()
	st, err := NewLocalStorage(Config{
		BasePath: t.TempDir(),
		BaseURL:  "/reports",
	})
	require.NoError(t, err)
	return st
}

func TestLocalStorage_SaveAndExists(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	err := st.Save(ctx, "doc.pdf", strings.NewReader("%PDF-1.4 test"))
	require.NoError(t, err)

	path := st.Path("doc.pdf")
	exists, err := st.Exists(ctx, path)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 test", string(data))
}

func TestLocalStorage_Delete(t *testing.T) {
	st := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, st.Save(ctx, "doc.pdf", strings.NewReader("data")))
	path := st.Path("doc.pdf")

	require.NoError(t, st.Delete(ctx, path))

	exists, err := st.Exists(ctx, path)
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing file is not an error.
	assert.NoError(t, st.Delete(ctx, path))
}

func TestLocalStorage_URL(t *testing.T) {
	st := newTestStorage(t)
	assert.Equal(t, "/reports/abc.pdf", st.URL("abc.pdf"))

	unrooted, err := NewLocalStorage(Config{BasePath: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, "/reports/abc.pdf", unrooted.URL("abc.pdf"))
}

func TestNewLocalStorage_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "uploads")

	_, err := NewLocalStorage(Config{BasePath: root})
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
