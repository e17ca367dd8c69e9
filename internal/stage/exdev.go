package stage

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// crossDeviceErrno is the errno a symlink refusal carries when the source
// and destination live on different filesystems. os.LinkError wraps the
// platform syscall package's Errno, so the unix package's constant is
// converted to that type before comparison.
const crossDeviceErrno = syscall.Errno(unix.EXDEV)
