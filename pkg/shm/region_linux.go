//go:build linux

package shm

import "golang.org/x/sys/unix"

// mapPopulate is OR'd into the mmap flags on platforms that support
// pre-faulting all pages at mapping time. On platforms without it, pages
// are faulted in lazily on first touch instead.
const mapPopulate = unix.MAP_POPULATE
