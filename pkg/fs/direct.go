package fs

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DirectBlockSize is the block size O_DIRECT reads are rounded up to.
const DirectBlockSize = 4096

// fallbackFS backs the buffered read path ReadDirect falls through to when
// O_DIRECT isn't available. A package-level [FS] rather than a hardcoded
// os.ReadFile call so tests can substitute a fault-injecting implementation
// without touching ReadDirect's exported signature.
var fallbackFS FS = NewReal()

// setFallbackFS swaps the buffered-path filesystem for the duration of a
// test and returns a restore function.
func setFallbackFS(f FS) func() {
	prev := fallbackFS
	fallbackFS = f

	return func() { fallbackFS = prev }
}

// ReadDirect reads an entire file's contents using O_DIRECT where the
// platform and underlying filesystem support it (most tmpfs and some
// network filesystems reject it with EINVAL), falling back transparently
// to an ordinary buffered read on any error from the direct path.
//
// O_DIRECT requires block-aligned, block-sized buffers and offsets; this
// allocates scratch space rounded up to the next multiple of
// [DirectBlockSize] but returns a slice trimmed to the file's true logical
// size, so the rounding is invisible to callers.
func ReadDirect(path string) ([]byte, error) {
	data, err := readDirectUnix(path)
	if err == nil {
		return data, nil
	}

	return readBuffered(path)
}

func readBuffered(path string) ([]byte, error) {
	data, err := fallbackFS.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}

	return data, nil
}

func readDirectUnix(path string) ([]byte, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|openDirectFlag, 0)
	if err != nil {
		return nil, fmt.Errorf("open %q direct: %w", path, err)
	}
	defer unix.Close(fd)

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		return nil, fmt.Errorf("fstat %q: %w", path, err)
	}

	size := stat.Size
	rounded := roundUp(size, DirectBlockSize)
	buf := alignedBuffer(int(rounded), DirectBlockSize)

	var off int64
	for off < rounded {
		n, err := unix.Pread(fd, buf[off:], off)
		if err != nil {
			return nil, fmt.Errorf("read %q direct: %w", path, err)
		}
		if n == 0 {
			break
		}
		off += int64(n)
	}

	if off < size {
		return nil, fmt.Errorf("short direct read on %q: got %d want %d", path, off, size)
	}

	return buf[:size], nil
}

func roundUp(n, block int64) int64 {
	if n%block == 0 {
		return n
	}

	return n + (block - n%block)
}

// alignedBuffer returns a size-byte slice whose first byte sits on an
// align-byte boundary, by over-allocating and slicing into the aligned
// region. O_DIRECT rejects buffers that aren't block-aligned with EINVAL.
func alignedBuffer(size, align int) []byte {
	if size == 0 {
		size = align
	}

	buf := make([]byte, size+align)

	addr := uintptr(unsafe.Pointer(&buf[0]))
	off := int(addr % uintptr(align))
	if off == 0 {
		return buf[:size]
	}

	return buf[align-off:][:size]
}
