package cache

import (
	"errors"
	"fmt"

	"github.com/gustrain/minio/pkg/fs"
)

// Read serves path through the cache: on a hit it copies straight out of
// shared memory; on a miss it reads the file from the underlying
// filesystem, returns that data to the caller, and — independent of
// whether the caller even wanted it cached — attempts to admit it, so the
// next Read for the same path is a hit. Every call on an open cache with a
// valid path counts exactly one access; any failure admitting the data — too big, out of memory, or an
// IO error creating the payload segment — is recorded as a capacity miss
// rather than a failure, since the read itself still succeeded and the
// caller has no way to distinguish one admission failure from another.
func (c *Cache) Read(path string, out []byte) (int, error) {
	if err := c.checkOpen(); err != nil {
		return 0, err
	}
	if err := validatePath(path); err != nil {
		return 0, err
	}

	atomicAddU64At(c.buf, offAccesses, 1)

	n, err := c.Load(path, out)
	switch {
	case err == nil:
		atomicAddU64At(c.buf, offHits, 1)
		return n, nil
	case errors.Is(err, ErrMiss):
		// fall through to the cold path below
	case errors.Is(err, ErrTooLarge):
		atomicAddU64At(c.buf, offFails, 1)
		return 0, fmt.Errorf("%w: %v", ErrInvalid, err)
	default:
		atomicAddU64At(c.buf, offFails, 1)
		return 0, err
	}

	data, err := fs.ReadDirect(path)
	if err != nil {
		atomicAddU64At(c.buf, offFails, 1)
		return 0, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	if len(data) == 0 {
		atomicAddU64At(c.buf, offFails, 1)
		return 0, fmt.Errorf("%w: zero-length file %q", ErrInvalid, path)
	}
	if len(data) > len(out) {
		atomicAddU64At(c.buf, offFails, 1)
		return 0, fmt.Errorf("%w: %q is %d bytes, buffer is %d", ErrInvalid, path, len(data), len(out))
	}

	written := copy(out, data)

	if err := c.Store(path, data); err != nil {
		// Admission refused for any reason is indistinguishable from the
		// caller's point of view, so every Store failure here — too big,
		// out of memory, or an IO error creating the payload segment —
		// counts as a capacity miss rather than a hard failure.
		atomicAddU64At(c.buf, offCapacityMisses, 1)
	} else {
		atomicAddU64At(c.buf, offColdMisses, 1)
	}

	return written, nil
}
