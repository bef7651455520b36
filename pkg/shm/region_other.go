//go:build !linux

package shm

// mapPopulate is zero on platforms that have no MAP_POPULATE equivalent in
// golang.org/x/sys/unix. Pages fault in lazily on first touch instead.
const mapPopulate = 0
