package minio

// Store admits data under path. See [cache.Cache.Store] for the full
// admission contract.
func (m *Cache) Store(path string, data []byte) error {
	return m.c.Store(path, data)
}
