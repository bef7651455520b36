package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
)

// failingFS is an [FS] whose ReadFile always fails, for exercising
// ReadDirect's buffered-fallback error path independent of real I/O faults.
type failingFS struct{}

var errFailingFSRead = errors.New("injected read failure")

func (failingFS) ReadFile(path string) ([]byte, error) {
	return nil, errFailingFSRead
}

func TestReadDirect_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "data.bin")
	want := []byte("some file contents that are not block-aligned")
	require.NoError(t, os.WriteFile(path, want, 0o644))

	got, err := ReadDirect(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestReadDirect_EmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.bin")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	got, err := ReadDirect(path)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestReadDirect_LargerThanOneBlock(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "large.bin")
	want := make([]byte, DirectBlockSize*3+17)
	for i := range want {
		want[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(path, want, 0o644))

	got, err := ReadDirect(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestReadDirect_FallbackSurfacesFilesystemErrors(t *testing.T) {
	// Deliberately not t.Parallel(): swaps the package-level fallbackFS,
	// which every other test in this file also reads through when the
	// platform rejects O_DIRECT (e.g. a tmpfs-backed TempDir).
	restore := setFallbackFS(failingFS{})
	defer restore()

	_, err := readBuffered(filepath.Join(t.TempDir(), "irrelevant.bin"))
	require.ErrorIs(t, err, errFailingFSRead)
}

func TestReadDirect_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := ReadDirect(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
}

func TestAlignedBuffer_StartsOnBoundary(t *testing.T) {
	t.Parallel()

	buf := alignedBuffer(100, DirectBlockSize)
	require.Len(t, buf, 100)
	require.Zero(t, uintptr(unsafe.Pointer(&buf[0]))%DirectBlockSize)
}
