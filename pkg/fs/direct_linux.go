//go:build linux

package fs

import "golang.org/x/sys/unix"

const openDirectFlag = unix.O_DIRECT
