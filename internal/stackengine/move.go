package stackengine

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sys/unix"
)

// crossDeviceErrno is the errno os.Rename returns across filesystems.
// os.LinkError (which os.Rename's error wraps) carries the platform
// syscall package's Errno, so the unix package's constant is converted to
// that type before comparison.
const crossDeviceErrno = syscall.Errno(unix.EXDEV)

// osRename is a package-level seam so tests can force the EXDEV fallback
// path without requiring two real filesystems.
var osRename = os.Rename

// moveAtomic moves src onto dst. A same-filesystem rename is attempted
// first; when the two paths live on different filesystems it falls back to
// a copy that is fsynced before the source is unlinked, so a process killed
// mid-copy leaves the original untouched rather than a half-written dst.
func moveAtomic(src, dst string) error {
	if err := osRename(src, dst); err == nil {
		return nil
	} else if !errors.Is(err, crossDeviceErrno) {
		return fmt.Errorf("rename %s -> %s: %w", src, dst, err)
	}

	if err := copyFsync(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return fmt.Errorf("remove source after copy %s: %w", src, err)
	}
	return nil
}

// copyFsync copies src to a temp name alongside dst (same directory, so
// the final rename stays on one filesystem and is atomic), fsyncs and
// closes it, then renames it onto dst. A process killed at any point before
// the rename leaves dst untouched rather than a truncated partial file.
func copyFsync(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source %s: %w", src, err)
	}
	defer in.Close()

	tmp := filepath.Join(filepath.Dir(dst), "."+uuid.NewString()+".tmp")
	out, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create temp destination %s: %w", tmp, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("copy %s -> %s: %w", src, tmp, err)
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(tmp)
		return fmt.Errorf("fsync %s: %w", tmp, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("close %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, dst); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename %s -> %s: %w", tmp, dst, err)
	}
	return nil
}
