// Package fs provides a narrow filesystem seam: an [FS] interface satisfied
// by [Real] in production, so the cache's cold-read fallback path (see
// [ReadDirect]) can be driven through a substitute implementation in tests
// without touching real files.
package fs

// FS is the single filesystem operation the buffered fallback path in
// [ReadDirect] depends on. [Real] is the only production implementation;
// tests substitute narrower fakes (see [ReadDirect]'s fallback path).
type FS interface {
	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)
}
