// Package shm provides the shared-memory primitives the cache is built on:
// anonymous page-locked regions for cache-wide state, and named payload
// segments under /dev/shm for per-entry file contents.
//
// A Region must be allocated before a data-loader forks its worker
// processes; it is a MAP_SHARED anonymous mapping, so writes made by any
// descendant are visible to the parent and to every sibling without
// copying. Payload segments are named, so any process can create one at
// admission and any other can open it by name afterwards.
package shm
