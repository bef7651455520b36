package shm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAlloc_RejectsNonPositiveSize(t *testing.T) {
	t.Parallel()

	for _, size := range []int{0, -1, -4096} {
		_, err := Alloc(size)
		require.Error(t, err)
	}
}

func TestAlloc_ReturnsWritableZeroedMemory(t *testing.T) {
	t.Parallel()

	r, err := Alloc(4096)
	require.NoError(t, err)
	defer r.Free()

	data := r.Bytes()
	require.Len(t, data, 4096)

	for _, b := range data {
		require.Equal(t, byte(0), b)
	}

	data[0] = 0xAB
	data[4095] = 0xCD
	require.Equal(t, byte(0xAB), r.Bytes()[0])
	require.Equal(t, byte(0xCD), r.Bytes()[4095])
}

func TestRegion_FreeIsIdempotentSafe(t *testing.T) {
	t.Parallel()

	r, err := Alloc(4096)
	require.NoError(t, err)

	require.NoError(t, r.Free())
	require.ErrorIs(t, r.Free(), ErrClosed)
}
