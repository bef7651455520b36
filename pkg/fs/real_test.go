package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_RealFS_ReadFile_ReturnsContents(t *testing.T) {
	r := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "exists.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	got, err := r.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), got)
}

func Test_RealFS_ReadFile_ErrorsWhenMissing(t *testing.T) {
	r := NewReal()
	dir := t.TempDir()

	_, err := r.ReadFile(filepath.Join(dir, "does-not-exist.txt"))
	require.True(t, os.IsNotExist(err))
}
