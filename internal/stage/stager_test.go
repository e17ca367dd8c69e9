package stage

import (
	"os"
	"path/filepath"
	"testing"

	"darkmaster/internal/frame"
)

func writeFrame(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("frame"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestStagerCreatesDenseNumberedEntries(t *testing.T) {
	libDir := t.TempDir()
	root := filepath.Join(t.TempDir(), "staging")

	accepted := []frame.FrameInfo{
		{Path: writeFrame(t, libDir, "a.fits")},
		{Path: writeFrame(t, libDir, "b.fits")},
		{Path: writeFrame(t, libDir, "c.fits")},
	}

	s := New(root)
	dir, err := s.Stage("group-1", accepted)
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	wantNames := []string{"frame_00000.fits", "frame_00001.fits", "frame_00002.fits"}
	for _, want := range wantNames {
		if _, err := os.Lstat(filepath.Join(dir, want)); err != nil {
			t.Errorf("missing staged entry %s: %v", want, err)
		}
	}
}

func TestStagerEntriesAreSymlinksToOriginals(t *testing.T) {
	libDir := t.TempDir()
	root := filepath.Join(t.TempDir(), "staging")

	framePath := writeFrame(t, libDir, "only.fits")
	s := New(root)
	dir, err := s.Stage("group-1", []frame.FrameInfo{{Path: framePath}})
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	link := filepath.Join(dir, "frame_00000.fits")
	info, err := os.Lstat(link)
	if err != nil {
		t.Fatalf("Lstat: %v", err)
	}
	if info.Mode()&os.ModeSymlink == 0 {
		t.Fatalf("expected %s to be a symlink", link)
	}

	target, err := os.Readlink(link)
	if err != nil {
		t.Fatalf("Readlink: %v", err)
	}
	abs, _ := filepath.Abs(framePath)
	if target != abs {
		t.Fatalf("symlink target = %q, want %q", target, abs)
	}
}

func TestStageWipesLeftoverFromInterruptedRun(t *testing.T) {
	libDir := t.TempDir()
	root := filepath.Join(t.TempDir(), "staging")

	// Simulate a directory left behind by a previous run that died before
	// finishing: same deterministic group name, stale unrelated contents.
	leftover := filepath.Join(root, "group-1")
	if err := os.MkdirAll(leftover, 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(leftover, "stale.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	framePath := writeFrame(t, libDir, "a.fits")
	s := New(root)
	dir, err := s.Stage("group-1", []frame.FrameInfo{{Path: framePath}})
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "stale.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected stale.txt to have been wiped, got err=%v", err)
	}
	if _, err := os.Lstat(filepath.Join(dir, "frame_00000.fits")); err != nil {
		t.Fatalf("expected freshly staged entry: %v", err)
	}
}

func TestStageRejectsEmptyAcceptedSet(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "staging"))
	if _, err := s.Stage("group-1", nil); err == nil {
		t.Fatal("expected error for empty accepted set")
	}
}

func TestStageAbortsWholeGroupWhenRootUnwritable(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply when running as root")
	}

	parent := t.TempDir()
	root := filepath.Join(parent, "staging")
	if err := os.MkdirAll(root, 0o500); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(root, 0o700) })

	libDir := t.TempDir()
	framePath := writeFrame(t, libDir, "a.fits")

	s := New(root)
	if _, err := s.Stage("group-1", []frame.FrameInfo{{Path: framePath}}); err == nil {
		t.Fatal("expected error when the staging root rejects new directories")
	}
}
