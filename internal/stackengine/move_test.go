package stackengine

import (
	"os"
	"path/filepath"
	"syscall"
	"testing"
)

func forceCrossDevice(t *testing.T) {
	t.Helper()
	original := osRename
	osRename = func(src, dst string) error {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: crossDeviceErrno}
	}
	t.Cleanup(func() { osRename = original })
}

func TestMoveAtomicFallsBackToCopyOnCrossDeviceRename(t *testing.T) {
	forceCrossDevice(t)

	srcDir := t.TempDir()
	dstDir := t.TempDir()
	src := filepath.Join(srcDir, "master.fits")
	dst := filepath.Join(dstDir, "master.fits")

	if err := os.WriteFile(src, []byte("master pixel data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := moveAtomic(src, dst); err != nil {
		t.Fatalf("moveAtomic: %v", err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read dst: %v", err)
	}
	if string(got) != "master pixel data" {
		t.Fatalf("dst content = %q, want %q", got, "master pixel data")
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatalf("expected source removed after successful copy, stat err = %v", err)
	}

	entries, err := os.ReadDir(dstDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly the final file in dstDir, got %d entries: %+v", len(entries), entries)
	}
}

func TestMoveAtomicPropagatesNonExdevRenameError(t *testing.T) {
	original := osRename
	osRename = func(src, dst string) error {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: syscall.EACCES}
	}
	t.Cleanup(func() { osRename = original })

	if err := moveAtomic(filepath.Join(t.TempDir(), "a"), filepath.Join(t.TempDir(), "b")); err == nil {
		t.Fatal("expected a non-EXDEV rename error to propagate without attempting the copy fallback")
	}
}

func TestCopyFsyncLeavesNoPartialDestinationWhenSourceUnreadable(t *testing.T) {
	dstDir := t.TempDir()
	dst := filepath.Join(dstDir, "master.fits")

	if err := copyFsync(filepath.Join(t.TempDir(), "does-not-exist.fits"), dst); err == nil {
		t.Fatal("expected an error when the source cannot be opened")
	}

	entries, err := os.ReadDir(dstDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no file (partial or otherwise) left behind in dstDir, got %+v", entries)
	}
}
