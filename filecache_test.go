package sir

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCacheAddDuplicateAndFull(t *testing.T) {
	dir := t.TempDir()
	c := newFileCache()

	first, err := c.add(filepath.Join(dir, "a.log"), LevelMaskAll, 0)
	require.Nil(t, err)
	assert.True(t, first.valid(), "expected a valid handle")

	_, err = c.add(filepath.Join(dir, "a.log"), LevelMaskAll, 0)
	require.NotNil(t, err)
	assert.Equal(t, ErrDuplicateFile, err.Kind)

	for i := 1; i < maxCachedFiles; i++ {
		path := filepath.Join(dir, string(rune('b'+i))+".log")
		_, err := c.add(path, LevelMaskAll, 0)
		require.Nilf(t, err, "add %s", path)
	}

	_, err = c.add(filepath.Join(dir, "overflow.log"), LevelMaskAll, 0)
	require.NotNil(t, err)
	assert.Equal(t, ErrCacheFull, err.Kind)
}

func TestFileCacheRemoveIsSingleUse(t *testing.T) {
	dir := t.TempDir()
	c := newFileCache()
	h, err := c.add(filepath.Join(dir, "a.log"), LevelMaskAll, 0)
	require.Nil(t, err)

	assert.Nil(t, c.remove(h), "first remove")

	err = c.remove(h)
	require.NotNil(t, err)
	assert.Equal(t, ErrNoSuchFile, err.Kind, "second remove should fail with ErrNoSuchFile")
}

func TestFileCacheUpdateByHandle(t *testing.T) {
	dir := t.TempDir()
	c := newFileCache()
	h, err := c.add(filepath.Join(dir, "a.log"), LevelMaskAll, 0)
	require.Nil(t, err)

	require.Nil(t, c.updateLevels(h, LevelWarn.bit()))
	cf, ok := c.find(h)
	require.True(t, ok)
	assert.Equal(t, LevelWarn.bit(), cf.levels, "level mask not updated")
}
