package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"darkmaster/internal/testsupport"
)

func TestRunCommandReportsNoMastersWhenInputRootIsEmpty(t *testing.T) {
	base := t.TempDir()
	inputRoot := filepath.Join(base, "frames")
	if err := os.MkdirAll(inputRoot, 0o755); err != nil {
		t.Fatalf("mkdir input root: %v", err)
	}
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, inputRoot)

	out, _, err := runCLI(t, []string{"run", "--dry-run"}, configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "Updated Masters")
	requireContains(t, out, "no masters updated this run")
}

func TestRunCommandBuildsMasterForCleanGroup(t *testing.T) {
	base := t.TempDir()
	inputRoot := filepath.Join(base, "frames")
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, inputRoot)

	at := time.Date(2026, 5, 1, 2, 0, 0, 0, time.UTC)
	frame := testsupport.FITSFrame{
		AcquiredAt:  at,
		CameraID:    "TestCam",
		BinningH:    1,
		BinningV:    1,
		Gain:        100,
		ExposureS:   300,
		Temperature: -10,
		ImageType:   "dark",
		Width:       8,
		Height:      8,
		Pixels:      make([]float64, 64),
	}
	for i := range frame.Pixels {
		frame.Pixels[i] = 40
	}
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "a.fits"), frame)
	frame.AcquiredAt = at.Add(time.Minute)
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "b.fits"), frame)

	out, _, err := runCLI(t, []string{"run", "--dry-run"}, configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "TestCam")
	requireContains(t, out, "Groups built")
}

func TestRunCommandValidateOnlyNeverWritesAMaster(t *testing.T) {
	base := t.TempDir()
	inputRoot := filepath.Join(base, "frames")
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, inputRoot)

	at := time.Date(2026, 5, 1, 2, 0, 0, 0, time.UTC)
	frame := testsupport.FITSFrame{
		AcquiredAt:  at,
		CameraID:    "TestCam",
		BinningH:    1,
		BinningV:    1,
		Gain:        100,
		ExposureS:   300,
		Temperature: -10,
		ImageType:   "dark",
		Width:       8,
		Height:      8,
		Pixels:      make([]float64, 64),
	}
	for i := range frame.Pixels {
		frame.Pixels[i] = 40
	}
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "a.fits"), frame)
	frame.AcquiredAt = at.Add(time.Minute)
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "b.fits"), frame)

	out, _, err := runCLI(t, []string{"run", "--validate-only"}, configPath)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	requireContains(t, out, "no masters updated this run")

	if _, err := os.Stat(filepath.Join(base, "library", "TestCam_Tm10_E300_G100_B1x1.fits")); !os.IsNotExist(err) {
		t.Fatalf("expected no master file on disk, stat err = %v", err)
	}
}

func TestRunCommandExitsNonZeroWhenAGroupFailsToStage(t *testing.T) {
	base := t.TempDir()
	inputRoot := filepath.Join(base, "frames")
	configPath := filepath.Join(base, "config.toml")
	writeTestConfig(t, configPath, inputRoot)

	// writeTestConfig points staging_dir at base/staging; pre-creating that
	// path as a plain file forces Stager.Stage's MkdirAll to fail, which is
	// the simplest reliable way to exercise a per-group failure without a
	// real filesystem fault.
	if err := os.WriteFile(filepath.Join(base, "staging"), []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("seed staging path collision: %v", err)
	}

	at := time.Date(2026, 5, 1, 2, 0, 0, 0, time.UTC)
	frame := testsupport.FITSFrame{
		AcquiredAt:  at,
		CameraID:    "TestCam",
		BinningH:    1,
		BinningV:    1,
		Gain:        100,
		ExposureS:   300,
		Temperature: -10,
		ImageType:   "dark",
		Width:       8,
		Height:      8,
		Pixels:      make([]float64, 64),
	}
	for i := range frame.Pixels {
		frame.Pixels[i] = 40
	}
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "a.fits"), frame)
	frame.AcquiredAt = at.Add(time.Minute)
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "b.fits"), frame)

	out, _, err := runCLI(t, []string{"run"}, configPath)
	if err == nil {
		t.Fatalf("expected a non-nil error when a group fails to stage, got nil; output:\n%s", out)
	}
	requireContains(t, out, "no masters updated this run")
}
