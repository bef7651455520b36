package shm

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// shmDir is the conventional POSIX shared-memory tmpfs mount. Segment names
// are process-global within this directory for the lifetime of the cache
// that created them.
const shmDir = "/dev/shm"

// SegmentPath returns the filesystem path backing the named segment.
func SegmentPath(name string) string {
	return shmDir + name
}

// Segment is a payload segment: a named, shared-memory-backed mapping that
// holds exactly one cached file's bytes. Segments are created once at
// admission and may be mapped on demand by any number of readers
// afterward.
type Segment struct {
	mu   sync.Mutex
	fd   int
	data []byte
}

// CreateSegment creates a new segment of the given size under name,
// truncates it to size, and maps it read/write. Name must not already
// exist — the caller's invariant (each key admitted at most once per flush
// epoch) guarantees this, but CreateSegment still fails closed with
// ErrExists if it does, rather than silently reusing stale bytes.
func CreateSegment(name string, size int) (*Segment, error) {
	if size <= 0 {
		return nil, fmt.Errorf("shm.CreateSegment(%q): size %d must be positive", name, size)
	}

	path := SegmentPath(name)

	fd, err := unix.Open(path, unix.O_CREAT|unix.O_EXCL|unix.O_RDWR, 0o600)
	if err != nil {
		if err == unix.EEXIST {
			return nil, fmt.Errorf("shm.CreateSegment(%q): %w", name, ErrExists)
		}

		return nil, fmt.Errorf("shm.CreateSegment(%q): open: %w", name, err)
	}

	if err := unix.Ftruncate(fd, int64(size)); err != nil {
		_ = unix.Close(fd)
		_ = unix.Unlink(path)

		return nil, fmt.Errorf("shm.CreateSegment(%q): ftruncate: %w", name, err)
	}

	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		_ = unix.Unlink(path)

		return nil, fmt.Errorf("shm.CreateSegment(%q): mmap: %w", name, err)
	}

	return &Segment{fd: fd, data: data}, nil
}

// OpenSegment maps an existing segment of the given size read-only. Used by
// readers that did not create the segment themselves.
func OpenSegment(name string, size int) (*Segment, error) {
	if size <= 0 {
		return nil, fmt.Errorf("shm.OpenSegment(%q): size %d must be positive", name, size)
	}

	path := SegmentPath(name)

	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("shm.OpenSegment(%q): open: %w", name, err)
	}

	data, err := unix.Mmap(fd, 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)

		return nil, fmt.Errorf("shm.OpenSegment(%q): mmap: %w", name, err)
	}

	return &Segment{fd: fd, data: data}, nil
}

// Bytes returns the segment's mapped bytes.
func (s *Segment) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.data
}

// Close unmaps the segment and closes its file descriptor. It does not
// unlink the backing name — callers that own the segment (i.e. created it)
// should call Unlink separately during flush/destroy.
func (s *Segment) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return ErrClosed
	}

	munmapErr := unix.Munmap(s.data)
	s.data = nil

	closeErr := unix.Close(s.fd)

	if munmapErr != nil {
		return fmt.Errorf("shm.Segment.Close: munmap: %w", munmapErr)
	}

	if closeErr != nil {
		return fmt.Errorf("shm.Segment.Close: close: %w", closeErr)
	}

	return nil
}

// Unlink removes the named segment from /dev/shm. Safe to call after the
// segment has already been closed, and idempotent if the name is already
// gone.
func Unlink(name string) error {
	err := unix.Unlink(SegmentPath(name))
	if err != nil && err != unix.ENOENT {
		return fmt.Errorf("shm.Unlink(%q): %w", name, err)
	}

	return nil
}

// PayloadName derives the segment name for a logical cache key, per the
// naming rule in the cache's ABI: a "/" prefix followed by path with every
// "/" replaced by "_". Names are not injective: paths that differ only by
// "/" versus "_" at the same position map to the same name, and a second
// CreateSegment under such a name fails with ErrExists.
func PayloadName(path string) string {
	name := make([]byte, 0, len(path)+1)
	name = append(name, '/')

	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			name = append(name, '_')
		} else {
			name = append(name, path[i])
		}
	}

	return string(name)
}
