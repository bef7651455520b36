package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/gustrain/minio/pkg/shm"
)

func TestRead_ColdThenHot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	content := []byte("this is the file's real contents, read from disk")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	c := newTestCache(t, Config{CapacityBytes: 1 << 20, Policy: PolicyMinIO})

	out := make([]byte, len(content))

	n, err := c.Read(path, out)
	require.NoError(t, err)
	require.Equal(t, content, out[:n])

	stats, err := c.Stats()
	require.NoError(t, err)
	require.Equal(t, uint64(1), stats.Accesses)
	require.Equal(t, uint64(0), stats.Hits)
	require.Equal(t, uint64(1), stats.ColdMisses)

	found, err := c.Contains(path)
	require.NoError(t, err)
	require.True(t, found, "a successful cold read must admit the file")

	clear(out)
	n, err = c.Read(path, out)
	require.NoError(t, err)
	require.Equal(t, content, out[:n])

	stats, err = c.Stats()
	require.NoError(t, err)
	require.Equal(t, uint64(2), stats.Accesses)
	require.Equal(t, uint64(1), stats.Hits)
	require.Equal(t, uint64(1), stats.ColdMisses)
}

func TestRead_StatsSnapshotMatchesExactly(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	content := []byte("snapshot comparison fixture")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	c := newTestCache(t, Config{CapacityBytes: 1 << 20, Policy: PolicyMinIO})

	out := make([]byte, len(content))
	_, err := c.Read(path, out)
	require.NoError(t, err)
	_, err = c.Read(path, out)
	require.NoError(t, err)

	got, err := c.Stats()
	require.NoError(t, err)

	want := Stats{Accesses: 2, Hits: 1, ColdMisses: 1}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Stats snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestRead_MissingFileCountsAsFail(t *testing.T) {
	t.Parallel()

	c := newTestCache(t, Config{CapacityBytes: 1 << 20, Policy: PolicyMinIO})

	_, err := c.Read(filepath.Join(t.TempDir(), "does-not-exist.bin"), make([]byte, 16))
	require.ErrorIs(t, err, ErrNotFound)

	stats, err := c.Stats()
	require.NoError(t, err)
	require.Equal(t, uint64(1), stats.Accesses)
	require.Equal(t, uint64(1), stats.Fails)
}

func TestRead_OverCapacityStillReturnsDataAsCapacityMiss(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "too-big-to-cache.bin")
	content := make([]byte, 200)
	for i := range content {
		content[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(path, content, 0o644))

	c := newTestCache(t, Config{CapacityBytes: 100, AvgItemSize: 10, Policy: PolicyMinIO})

	out := make([]byte, len(content))

	n, err := c.Read(path, out)
	require.NoError(t, err, "a capacity miss is not a Read failure")
	require.Equal(t, content, out[:n])

	stats, err := c.Stats()
	require.NoError(t, err)
	require.Equal(t, uint64(1), stats.CapacityMisses)
	require.Equal(t, uint64(0), stats.ColdMisses)

	found, err := c.Contains(path)
	require.NoError(t, err)
	require.False(t, found)
}

func TestRead_StoreIOFailureCountsAsCapacityMiss(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "colliding.bin")
	content := []byte("contents that Store will fail to admit")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	// Pre-create the payload segment Store will try to create for this
	// path, so its own shm.CreateSegment call fails with ErrExists,
	// surfacing through Store as ErrIO. The cold read itself must still
	// succeed.
	name := shm.PayloadName(path)
	seg, err := shm.CreateSegment(name, len(content))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = seg.Close()
		_ = shm.Unlink(name)
	})

	c := newTestCache(t, Config{CapacityBytes: 1 << 20, Policy: PolicyMinIO})

	out := make([]byte, len(content))
	n, err := c.Read(path, out)
	require.NoError(t, err, "an admission IO failure is not a Read failure")
	require.Equal(t, content, out[:n])

	stats, err := c.Stats()
	require.NoError(t, err)
	require.Equal(t, uint64(1), stats.CapacityMisses)
	require.Equal(t, uint64(0), stats.ColdMisses)
	require.Equal(t, uint64(0), stats.Fails)

	found, err := c.Contains(path)
	require.NoError(t, err)
	require.False(t, found, "a failed admission must not leave a table entry behind")
}

func TestRead_ShrunkBufferOnHitIsInvalidNotTooLarge(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	content := []byte("a payload that fits the first buffer but not the second")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	c := newTestCache(t, Config{CapacityBytes: 1 << 20, Policy: PolicyMinIO})

	big := make([]byte, len(content))
	_, err := c.Read(path, big)
	require.NoError(t, err)

	found, err := c.Contains(path)
	require.NoError(t, err)
	require.True(t, found, "the first Read must have admitted the entry")

	small := make([]byte, len(content)-1)
	_, err = c.Read(path, small)
	require.ErrorIs(t, err, ErrInvalid)
	require.NotErrorIs(t, err, ErrTooLarge, "Read must translate ErrTooLarge into ErrInvalid per the ABI's error taxonomy")
}

func TestRead_BufferTooSmallIsInvalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 100), 0o644))

	c := newTestCache(t, Config{CapacityBytes: 1 << 20, Policy: PolicyMinIO})

	_, err := c.Read(path, make([]byte, 10))
	require.ErrorIs(t, err, ErrInvalid)
}
