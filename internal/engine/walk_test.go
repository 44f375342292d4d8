package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindBlendFilesRecursive(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets", "props"), 0o755))
	for _, p := range []string{
		"scene.blend",
		filepath.Join("assets", "props", "chair.blend"),
		filepath.Join("assets", "readme.txt"),
	} {
		require.NoError(t, os.WriteFile(filepath.Join(root, p), nil, 0o644))
	}

	files, err := FindBlendFiles(root, "")
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(root, "assets", "props", "chair.blend"), files[0])
	assert.Equal(t, filepath.Join(root, "scene.blend"), files[1])
}

func TestFindBlendFilesSingleFile(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "one.blend")
	require.NoError(t, os.WriteFile(target, nil, 0o644))

	files, err := FindBlendFiles(target, "")
	require.NoError(t, err)
	assert.Equal(t, []string{target}, files)
}

func TestFindBlendFilesCustomGlob(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "top.blend"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "deep", "down.blend"), nil, 0o644))

	files, err := FindBlendFiles(root, "*.blend")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "top.blend")}, files)
}

func TestFindBlendFilesMissingRoot(t *testing.T) {
	_, err := FindBlendFiles(filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}
