package cache

import "runtime"

// spinlock is a short-critical-section lock backed by a single 4-byte word
// inside the cache's shared mapping. It is the only lock primitive guarding
// the shared mapping: every critical section there is short by construction — the
// directory lock only touches the hash index, and a bucket lock only
// guards one payload's mapping state — so spinning is cheaper than paying
// for a blocking mutex's syscall path on contention.
type spinlock struct {
	buf []byte
	off int
}

const (
	spinUnlocked = uint32(0)
	spinLocked   = uint32(1)
)

func newSpinlock(buf []byte, off int) spinlock {
	return spinlock{buf: buf, off: off}
}

// Lock spins until the word at s.off transitions from unlocked to locked.
// Backs off with runtime.Gosched after a bounded number of bare spins so a
// contended lock doesn't starve other goroutines on a GOMAXPROCS=1 build.
func (s spinlock) Lock() {
	const spinsBeforeYield = 64

	spins := 0

	for !atomicCASU32At(s.buf, s.off, spinUnlocked, spinLocked) {
		spins++
		if spins >= spinsBeforeYield {
			runtime.Gosched()
			spins = 0
		}
	}
}

// TryLock attempts to acquire the lock without blocking.
func (s spinlock) TryLock() bool {
	return atomicCASU32At(s.buf, s.off, spinUnlocked, spinLocked)
}

// Unlock releases the lock. Calling Unlock on an unheld lock is a
// programming error and corrupts lock state for every other holder.
func (s spinlock) Unlock() {
	atomicStoreU32At(s.buf, s.off, spinUnlocked)
}
