package cache

// Hardcoded implementation limits.
//
// Keys are stored in a fixed-size field rather than a variable-length one,
// so there is a hard cap on key length; the other constants here are
// guardrails that keep admission arithmetic away from overflow.
const (
	// MaxPathLength is the maximum key length in bytes, including the
	// would-be NUL terminator. Paths that do not fit are rejected with
	// ErrInvalid rather than silently truncated, since a
	// silent truncation could alias two distinct keys onto the same entry.
	MaxPathLength = 128

	// defaultAvgItemSize is substituted for Config.AvgItemSize when the
	// caller passes 0: an average item size of 0 means use the default of
	// 100 KiB.
	defaultAvgItemSize = 100 * 1024

	// minBucketLocks is the floor on the entry-bucket lock array size
	// (L = max(8, N_max/16)).
	minBucketLocks = 8
)
