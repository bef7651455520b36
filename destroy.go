package minio

// Destroy unlinks every admitted payload and releases the cache's shared
// region. After Destroy, every other method on m returns [cache.ErrClosed].
func (m *Cache) Destroy() error {
	return m.c.Destroy()
}
