package minio

// Load copies a cached entry's payload into out, returning the number of
// bytes written. Returns [cache.ErrMiss] if path has no live entry.
func (m *Cache) Load(path string, out []byte) (int, error) {
	return m.c.Load(path, out)
}
