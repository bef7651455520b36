package shm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPayloadName_ReplacesSlashes(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"a.bin":             "/a.bin",
		"data/train/a.bin":  "/data_train_a.bin",
		"/abs/path/file.jpg": "//abs_path_file.jpg",
	}

	for in, want := range tests {
		require.Equal(t, want, PayloadName(in))
	}
}

func TestSegment_CreateWriteOpenReadRoundTrip(t *testing.T) {
	t.Parallel()

	name := PayloadName(t.Name())
	defer Unlink(name)

	seg, err := CreateSegment(name, 13)
	require.NoError(t, err)

	copy(seg.Bytes(), []byte("hello, world!"))
	require.NoError(t, seg.Close())

	reader, err := OpenSegment(name, 13)
	require.NoError(t, err)
	defer reader.Close()

	require.Equal(t, "hello, world!", string(reader.Bytes()))
}

func TestCreateSegment_RejectsDuplicateName(t *testing.T) {
	t.Parallel()

	name := PayloadName(t.Name())
	defer Unlink(name)

	first, err := CreateSegment(name, 8)
	require.NoError(t, err)
	defer first.Close()

	_, err = CreateSegment(name, 8)
	require.ErrorIs(t, err, ErrExists)
}

func TestUnlink_IdempotentOnMissingSegment(t *testing.T) {
	t.Parallel()

	require.NoError(t, Unlink(PayloadName(t.Name()+"-never-created")))
}
