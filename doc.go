// Package minio is the public binding onto the shared-memory file cache
// implemented in pkg/cache. Each file in this package implements exactly
// one cache operation — Store, Load, Read, Flush, Stats, Destroy — mirroring
// how a CLI binding would dedicate one file per verb, just with Go
// functions standing in for subcommands.
//
// A minio.Cache is safe to share across every process that inherited its
// underlying mapping from the process that called [New] before it forked;
// see pkg/shm's package doc comment for the mechanics.
package minio

import "github.com/gustrain/minio/pkg/cache"

// Policy re-exports [cache.Policy] so callers never need to import
// pkg/cache directly for ordinary use.
type Policy = cache.Policy

const (
	PolicyFIFO  = cache.PolicyFIFO
	PolicyMinIO = cache.PolicyMinIO
)

// Config re-exports [cache.Config].
type Config = cache.Config

// Stats re-exports [cache.Stats].
type Stats = cache.Stats

// Cache is a handle onto a shared-memory cache. The zero value is not
// usable; construct one with [New].
type Cache struct {
	c *cache.Cache
}

// New allocates a new cache region sized for cfg. It must be called before
// the calling process forks any worker that needs to see this cache.
func New(cfg Config) (*Cache, error) {
	c, err := cache.Init(cfg)
	if err != nil {
		return nil, err
	}

	return &Cache{c: c}, nil
}

// Contains reports whether path currently has a live entry.
func (m *Cache) Contains(path string) (bool, error) {
	return m.c.Contains(path)
}
