package shm

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Region is an anonymous, page-populated, page-locked mapping shared across
// fork. It backs all cache-wide state: the header, the entry table, the
// directory buckets, and the per-entry-bucket lock array.
//
// A Region must be allocated before the owning process forks; descendants
// then observe every write any sibling makes through it, with no copying.
type Region struct {
	mu     sync.Mutex
	data   []byte
	closed bool
}

// Alloc reserves size bytes of anonymous shared memory, pre-faults every
// page (where the platform supports it), and locks the pages so the kernel
// cannot swap cache data out from under a training job. If locking fails,
// the provisional mapping is released and Alloc returns ErrAlloc rather
// than leaving a partially-initialized region behind.
func Alloc(size int) (*Region, error) {
	if size <= 0 {
		return nil, fmt.Errorf("shm.Alloc: size %d must be positive: %w", size, ErrAlloc)
	}

	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_SHARED|mapPopulate)
	if err != nil {
		return nil, fmt.Errorf("shm.Alloc: mmap: %w: %w", err, ErrAlloc)
	}

	if err := unix.Mlock(data); err != nil {
		// Don't allow a double failure: the provisional mapping must not
		// leak just because locking it failed.
		_ = unix.Munmap(data)

		return nil, fmt.Errorf("shm.Alloc: mlock: %w: %w", err, ErrAlloc)
	}

	return &Region{data: data}, nil
}

// Bytes returns the region's backing slice. The slice is valid until Free
// is called; callers must not retain it past that point.
func (r *Region) Bytes() []byte {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.data
}

// Free unlocks and unmaps the region. Safe to call once; a second call
// returns ErrClosed.
func (r *Region) Free() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrClosed
	}

	r.closed = true

	_ = unix.Munlock(r.data)

	err := unix.Munmap(r.data)
	r.data = nil

	if err != nil {
		return fmt.Errorf("shm.Region.Free: munmap: %w", err)
	}

	return nil
}
