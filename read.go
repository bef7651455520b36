package minio

// Read serves path through the cache, reading it from the filesystem and
// admitting it on a miss. See [cache.Cache.Read] for the full semantics,
// including how misses are attributed to cold-miss vs. capacity-miss
// statistics.
func (m *Cache) Read(path string, out []byte) (int, error) {
	return m.c.Read(path, out)
}
