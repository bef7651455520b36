package cache

import (
	"fmt"

	"github.com/gustrain/minio/pkg/shm"
)

// Store admits data under path: admit on first miss if it fits, never
// evict. It is the caller's responsibility to have already established
// this is a miss (via Contains or a failed Load) — Store does not itself
// check for an existing entry, and storing the same path twice wastes a
// slot and a byte reservation rather than overwriting the first copy.
func (c *Cache) Store(path string, data []byte) error {
	if err := c.checkOpen(); err != nil {
		return err
	}
	if err := validatePath(path); err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: zero-length payload", ErrInvalid)
	}
	if c.maxItemSize != 0 && uint64(len(data)) > c.maxItemSize {
		return ErrTooBig
	}

	idx, ok := reserveSlot(c.buf, c.nMax)
	if !ok {
		return ErrOutOfMemory
	}

	if _, ok := c.reserveBytes(uint64(len(data))); !ok {
		// The slot reserved above is now wasted: slot reservations
		// are never rolled back. It stays uninitialized until the next
		// Flush.
		return ErrOutOfMemory
	}

	bucketID := bucketIDFor(idx, c.locks.count)
	name := shm.PayloadName(path)

	seg, err := shm.CreateSegment(name, len(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	copy(seg.Bytes(), data)

	if err := seg.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	c.table.init(idx, path, uint64(len(data)), bucketID)
	c.dir.insert(path, idx)

	return nil
}
