package thumbnails

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SaveAndExists(t *testing.T) {
	store := NewStore(t.TempDir())

	assert.False(t, store.Exists("vol-1"))

	err := store.Save("vol-1", strings.NewReader("jpeg bytes"))
	require.NoError(t, err)

	assert.True(t, store.Exists("vol-1"))
	assert.False(t, store.Exists("vol-2"))

	data, err := os.ReadFile(store.Path("vol-1"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))
}

func TestStore_SaveOverwrites(t *testing.T) {
	store := NewStore(t.TempDir())

	require.NoError(t, store.Save("vol-1", strings.NewReader("first")))
	require.NoError(t, store.Save("vol-1", strings.NewReader("second")))

	data, err := os.ReadFile(store.Path("vol-1"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestStore_CopyTo(t *testing.T) {
	store := NewStore(t.TempDir())
	require.NoError(t, store.Save("vol-1", strings.NewReader("jpeg bytes")))

	destDir := t.TempDir()
	err := store.CopyTo("vol-1", destDir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(destDir, "vol-1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))
}

func TestStore_CopyTo_MissingSource(t *testing.T) {
	store := NewStore(t.TempDir())
	err := store.CopyTo("missing", t.TempDir())
	require.Error(t, err)
}
