package stage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"darkmaster/internal/fileutil"
	"darkmaster/internal/frame"
)

// Stager builds the staging directory the stacking engine consumes.
type Stager struct {
	// Root is the parent directory under which each group's staging
	// directory is created.
	Root string
}

// New constructs a Stager rooted at root. root is created on first Stage
// call if it does not already exist.
func New(root string) *Stager {
	return &Stager{Root: root}
}

// Stage wipes and recreates the staging directory for groupName, then
// populates it with one entry per accepted frame, named
// frame_<index:05d><ext> with dense, 0-based indices. groupName must be a
// filesystem-safe, deterministic identifier for the group (the same name
// every run produces for the same group key) so that a directory left
// behind by an interrupted prior run is found and wiped rather than
// accumulating. Stage prefers symlinks and falls back to a copy when the
// staging directory and the frame library live on different filesystems.
// If any frame can be neither linked nor copied, the directory is removed
// and the whole group fails.
func (s *Stager) Stage(groupName string, accepted []frame.FrameInfo) (string, error) {
	if len(accepted) == 0 {
		return "", fmt.Errorf("stage: no accepted frames to stage")
	}

	if err := os.MkdirAll(s.Root, 0o700); err != nil {
		return "", fmt.Errorf("stage: create staging root %s: %w", s.Root, err)
	}

	dir := filepath.Join(s.Root, groupName)

	// Idempotence: wipe any leftover from a previous interrupted run before
	// this one begins; the Stager never reads its own prior output.
	if err := os.RemoveAll(dir); err != nil {
		return "", fmt.Errorf("stage: clear stale staging directory %s: %w", dir, err)
	}
	if err := os.Mkdir(dir, 0o700); err != nil {
		return "", fmt.Errorf("stage: create staging directory %s: %w", dir, err)
	}

	for i, f := range accepted {
		if err := stageOne(dir, i, f.Path); err != nil {
			_ = os.RemoveAll(dir)
			return "", fmt.Errorf("stage: frame %d (%s): %w", i, f.Path, err)
		}
	}

	return dir, nil
}

func stageOne(dir string, index int, framePath string) error {
	abs, err := filepath.Abs(framePath)
	if err != nil {
		return fmt.Errorf("resolve absolute path: %w", err)
	}

	name := fmt.Sprintf("frame_%05d%s", index, filepath.Ext(framePath))
	target := filepath.Join(dir, name)

	if err := os.Symlink(abs, target); err != nil {
		if !isCrossDevice(err) {
			return fmt.Errorf("symlink: %w", err)
		}
		if copyErr := copyAtomic(dir, abs, target); copyErr != nil {
			return fmt.Errorf("copy fallback after cross-device symlink refusal: %w", copyErr)
		}
	}
	return nil
}

// copyAtomic copies src to a temp name inside dir and renames it onto
// target, so a process killed mid-copy never leaves target looking like a
// complete, staged entry.
func copyAtomic(dir, src, target string) error {
	tmp := filepath.Join(dir, "."+uuid.NewString()+".tmp")
	if err := fileutil.CopyFileMode(src, tmp, 0o600); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func isCrossDevice(err error) bool {
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		return errors.Is(linkErr.Err, crossDeviceErrno)
	}
	return errors.Is(err, crossDeviceErrno)
}
