package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treykane/cli-gearing/internal/store"
)

func TestFileMissingIsEmpty(t *testing.T) {
	f, err := store.Open(filepath.Join(t.TempDir(), "nested", "store.json"))
	require.NoError(t, err)
	_, ok := f.Get("curPinion")
	assert.False(t, ok)
}

func TestFileSetPersistsAcrossOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	f, err := store.Open(path)
	require.NoError(t, err)
	require.NoError(t, f.Set("curPinion", "20"))
	require.NoError(t, f.Set("curSpur", "48"))
	require.NoError(t, f.Set("curPinion", "21"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	g, err := store.Open(path)
	require.NoError(t, err)
	v, ok := g.Get("curPinion")
	assert.True(t, ok)
	assert.Equal(t, "21", v)
	v, _ = g.Get("curSpur")
	assert.Equal(t, "48", v)
}

func TestFileSetMergesKeysWrittenByAnotherInstance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	a, err := store.Open(path)
	require.NoError(t, err)
	b, err := store.Open(path)
	require.NoError(t, err)

	require.NoError(t, a.Set("theme", "dark"))
	require.NoError(t, b.Set("curTire", "62"))

	c, err := store.Open(path)
	require.NoError(t, err)
	v, _ := c.Get("theme")
	assert.Equal(t, "dark", v)
	v, _ = c.Get("curTire")
	assert.Equal(t, "62", v)
}

func TestFileCorruptIsReportedButUsable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	f, err := store.Open(path)
	assert.Error(t, err)
	require.NotNil(t, f)
	require.NoError(t, f.Set("newSpur", "50"))

	g, err := store.Open(path)
	require.NoError(t, err)
	v, _ := g.Get("newSpur")
	assert.Equal(t, "50", v)
}

func TestMemoryZeroValue(t *testing.T) {
	var m store.Memory
	_, ok := m.Get("x")
	assert.False(t, ok)
	require.NoError(t, m.Set("x", "1"))
	v, ok := m.Get("x")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}
