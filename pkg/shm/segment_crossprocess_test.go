package shm

import (
	"fmt"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSegment_VisibleAcrossRealProcess validates that a named payload
// segment, unlike the anonymous cache-wide region, is genuinely visible to
// an unrelated process that only knows its name — it re-execs this test
// binary as a helper subprocess (the same self-exec pattern the standard
// library's os/exec tests use) rather than a second goroutine, so this
// exercises real cross-process shared memory, not just a shared address
// space.
func TestSegment_VisibleAcrossRealProcess(t *testing.T) {
	name := PayloadName(t.Name())
	defer Unlink(name)

	want := []byte("written by the test process")

	seg, err := CreateSegment(name, len(want))
	require.NoError(t, err)

	copy(seg.Bytes(), want)
	require.NoError(t, seg.Close())

	cmd := exec.Command(os.Args[0], "-test.run=TestSegment_VisibleAcrossRealProcess")
	cmd.Env = append(os.Environ(),
		"MINIO_SHM_HELPER_PROCESS=1",
		fmt.Sprintf("MINIO_SHM_HELPER_SEGMENT=%s", name),
		fmt.Sprintf("MINIO_SHM_HELPER_SIZE=%d", len(want)),
	)

	out, err := cmd.CombinedOutput()
	require.NoErrorf(t, err, "helper process: %s", out)
	require.Equal(t, want, out)
}

// TestMain intercepts the helper-process invocation before any other test
// runs, so the subprocess does real work instead of running the full suite
// a second time.
func TestMain(m *testing.M) {
	if os.Getenv("MINIO_SHM_HELPER_PROCESS") == "1" {
		os.Exit(runHelperProcess())
	}

	os.Exit(m.Run())
}

func runHelperProcess() int {
	name := os.Getenv("MINIO_SHM_HELPER_SEGMENT")

	var size int
	if _, err := fmt.Sscanf(os.Getenv("MINIO_SHM_HELPER_SIZE"), "%d", &size); err != nil {
		fmt.Fprintf(os.Stderr, "parsing size: %v\n", err)
		return 1
	}

	seg, err := OpenSegment(name, size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening segment: %v\n", err)
		return 1
	}
	defer seg.Close()

	os.Stdout.Write(seg.Bytes())

	return 0
}
