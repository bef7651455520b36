package shm

import "errors"

// Sentinel errors returned by this package.
//
// Callers should use [errors.Is] to check error types.
var (
	// ErrAlloc indicates a shared region could not be mapped or locked.
	//
	// Common causes: the process's locked-memory limit (RLIMIT_MEMLOCK) is
	// too small for the requested size, or the kernel refused the mapping.
	ErrAlloc = errors.New("shm: alloc failed")

	// ErrExists indicates a payload segment with this name is already open.
	//
	// This violates the caller's invariant that each key is admitted at
	// most once per flush epoch.
	ErrExists = errors.New("shm: segment already exists")

	// ErrClosed indicates an operation was attempted on a closed region or
	// segment.
	ErrClosed = errors.New("shm: closed")
)
