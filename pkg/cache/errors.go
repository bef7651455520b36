package cache

import "errors"

// Sentinel errors returned by cache operations.
//
// Callers should use [errors.Is] to check error types. Each entry below
// names the semantic category from the cache's error taxonomy and the
// operations that can return it.
var (
	// ErrNotFound indicates Read's filesystem open failed on a miss path.
	ErrNotFound = errors.New("cache: not found")

	// ErrInvalid indicates a zero-size file, a file larger than the
	// caller's buffer, or an otherwise malformed request.
	ErrInvalid = errors.New("cache: invalid")

	// ErrTooLarge indicates a cached entry's size exceeds the buffer
	// passed to Load.
	ErrTooLarge = errors.New("cache: too large for buffer")

	// ErrMiss indicates Load found no directory entry for the given path.
	// Not counted as a failure — it is the expected first-access outcome.
	ErrMiss = errors.New("cache: miss")

	// ErrTooBig indicates Store's payload exceeds the configured
	// MaxItemSize. Not counted in the fails statistic.
	ErrTooBig = errors.New("cache: item exceeds max item size")

	// ErrOutOfMemory indicates entry-slot exhaustion or capacity-byte
	// exhaustion during admission.
	ErrOutOfMemory = errors.New("cache: out of memory")

	// ErrIO indicates a shared-memory segment could not be created or
	// truncated during admission.
	ErrIO = errors.New("cache: io error")

	// ErrInvalidConfig indicates Init was called with a configuration that
	// cannot produce a usable cache (e.g. N_max < 1, or an unimplemented
	// replacement policy).
	ErrInvalidConfig = errors.New("cache: invalid config")

	// ErrClosed indicates an operation was attempted on a destroyed cache.
	ErrClosed = errors.New("cache: closed")
)
