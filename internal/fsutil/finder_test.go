package fsutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/wirebox/internal/fsutil"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0750))
	require.NoError(t, os.WriteFile(path, nil, 0600))
}

func TestFindByExtensionSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "graph.hcl")
	touch(t, path)

	found, err := fsutil.FindByExtension(path, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, found)
}

func TestFindByExtensionWalksDirectory(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "b.hcl"))
	touch(t, filepath.Join(dir, "a.hcl"))
	touch(t, filepath.Join(dir, "nested", "c.hcl"))
	touch(t, filepath.Join(dir, "ignored.txt"))

	found, err := fsutil.FindByExtension(dir, ".hcl")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.hcl"),
		filepath.Join(dir, "b.hcl"),
		filepath.Join(dir, "nested", "c.hcl"),
	}, found)
}

func TestFindByExtensionMissingRoot(t *testing.T) {
	_, err := fsutil.FindByExtension(filepath.Join(t.TempDir(), "nope"), ".hcl")
	assert.Error(t, err)
}

func TestFindByExtensionEmptyExtension(t *testing.T) {
	_, err := fsutil.FindByExtension(t.TempDir(), "")
	assert.Error(t, err)
}
