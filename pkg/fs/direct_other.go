//go:build !linux

package fs

// openDirectFlag is 0 on platforms without O_DIRECT, so ReadDirect's first
// attempt degrades to an ordinary cached open and virtually never fails,
// making the buffered-read fallback effectively Linux-only in practice.
const openDirectFlag = 0
