package cache

import (
	"fmt"

	"github.com/gustrain/minio/pkg/shm"
)

// Load copies a cached entry's payload into out and returns the number of
// bytes written. It implements the lock hand-off: takeBucket below runs
// while the directory lookup still holds the directory spinlock, so the
// slot's bucket lock is acquired before the directory lock is released —
// there is never a window where the directory is unlocked but the bucket
// a concurrent Flush would need to race on isn't locked yet.
func (c *Cache) Load(path string, out []byte) (int, error) {
	if err := c.checkOpen(); err != nil {
		return 0, err
	}
	if err := validatePath(path); err != nil {
		return 0, err
	}

	var idx uint64
	var bucket spinlock

	found := c.dir.lookupHandoff(path, c.table, func(slot uint64) {
		idx = slot
		bucket = c.locks.at(c.table.bucketID(idx))
		bucket.Lock()
	})
	if !found {
		return 0, ErrMiss
	}
	defer bucket.Unlock()

	if !c.table.isLive(idx) {
		// A concurrent Flush/Destroy reached this slot's bucket lock
		// first and already reset it.
		return 0, ErrMiss
	}

	size := c.table.payloadSize(idx)
	if size > uint64(len(out)) {
		return 0, ErrTooLarge
	}

	name := shm.PayloadName(c.table.path(idx))

	seg, err := shm.OpenSegment(name, int(size))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer seg.Close()

	n := copy(out, seg.Bytes())

	return n, nil
}
