package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"darkmaster/internal/pipeline"
	"darkmaster/internal/runconfig"
	"darkmaster/internal/stackengine"
	"darkmaster/internal/testsupport"
)

func uniformPixels(value float64, n int) []float64 {
	pixels := make([]float64, n)
	for i := range pixels {
		pixels[i] = value
	}
	return pixels
}

func baseFrame(acquiredAt time.Time, value float64) testsupport.FITSFrame {
	return testsupport.FITSFrame{
		AcquiredAt:  acquiredAt,
		CameraID:    "TestCam",
		BinningH:    1,
		BinningV:    1,
		Gain:        100,
		ExposureS:   300,
		Temperature: -10,
		ImageType:   "dark",
		Width:       10,
		Height:      10,
		Pixels:      uniformPixels(value, 100),
	}
}

func newDryRunConfig(t *testing.T, inputRoot string) runconfig.Params {
	p := testsupport.NewConfig(t)
	p.Scan.InputRoots = []string{inputRoot}
	p.Engine.DryRun = true
	return p
}

func TestRunBuildsMasterForCleanTwoFrameGroup(t *testing.T) {
	inputRoot := t.TempDir()
	base := time.Date(2026, 6, 1, 3, 0, 0, 0, time.UTC)
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "a.fits"), baseFrame(base, 50))
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "b.fits"), baseFrame(base.Add(time.Minute), 52))

	p := newDryRunConfig(t, inputRoot)
	history := testsupport.MustOpenHistory(t, p)
	pl := pipeline.New(p, nil, history)

	rep, err := pl.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	tally := rep.Tally()
	if tally.GroupsBuilt != 1 {
		t.Fatalf("GroupsBuilt = %d, want 1", tally.GroupsBuilt)
	}
	if tally.FramesUsed != 2 {
		t.Fatalf("FramesUsed = %d, want 2", tally.FramesUsed)
	}

	groups := rep.Groups()
	if len(groups) != 1 || !groups[0].Built {
		t.Fatalf("expected one built group outcome, got %+v", groups)
	}

	recent, err := history.RecentDecisions(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentDecisions: %v", err)
	}
	if len(recent) != 1 || recent[0].Decision != "stacked" {
		t.Fatalf("expected one stacked decision, got %+v", recent)
	}
}

func TestRunReportsInsufficientValidFramesWhenOneFrameContaminated(t *testing.T) {
	inputRoot := t.TempDir()
	base := time.Date(2026, 6, 1, 3, 0, 0, 0, time.UTC)
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "clean.fits"), baseFrame(base, 50))
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "contaminated.fits"), baseFrame(base.Add(time.Minute), 5000))

	p := newDryRunConfig(t, inputRoot)
	pl := pipeline.New(p, nil, nil)

	rep, err := pl.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	groups := rep.Groups()
	if len(groups) != 1 {
		t.Fatalf("expected one group outcome, got %d", len(groups))
	}
	g := groups[0]
	if g.Built {
		t.Fatalf("expected group to be skipped for insufficient valid frames, got %+v", g)
	}
	if len(g.Rejected) != 2 {
		t.Fatalf("expected both frames reflected in Rejected (one over-median, one insufficient-valid), got %+v", g.Rejected)
	}
}

func TestRunValidateOnlySkipsStagingAndStacking(t *testing.T) {
	inputRoot := t.TempDir()
	base := time.Date(2026, 6, 1, 3, 0, 0, 0, time.UTC)
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "a.fits"), baseFrame(base, 50))
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "b.fits"), baseFrame(base.Add(time.Minute), 52))

	p := newDryRunConfig(t, inputRoot)
	history := testsupport.MustOpenHistory(t, p)
	pl := pipeline.New(p, nil, history)
	pl.ValidateOnly = true

	rep, err := pl.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	groups := rep.Groups()
	if len(groups) != 1 {
		t.Fatalf("expected one group outcome, got %d", len(groups))
	}
	g := groups[0]
	if g.Built {
		t.Fatalf("validate-only run must never set Built, got %+v", g)
	}
	if g.NFramesUsed != 2 || g.MasterPath != "" {
		t.Fatalf("expected 2 accepted frames and no master path, got %+v", g)
	}

	recent, err := history.RecentDecisions(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentDecisions: %v", err)
	}
	if len(recent) != 1 || recent[0].Decision != "validated" {
		t.Fatalf("expected one validated decision, got %+v", recent)
	}

	if _, err := os.Stat(filepath.Join(p.Paths.LibraryDir, "TestCam_Tm10_E300_G100_B1x1.fits")); !os.IsNotExist(err) {
		t.Fatalf("expected no master file on disk after a validate-only run, stat err = %v", err)
	}
}

func TestRunSkipsGroupWhoseMasterIsAlreadyCurrent(t *testing.T) {
	inputRoot := t.TempDir()
	frameTime := time.Date(2026, 1, 1, 3, 0, 0, 0, time.UTC)
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "a.fits"), baseFrame(frameTime, 50))
	testsupport.WriteFITS(t, filepath.Join(inputRoot, "b.fits"), baseFrame(frameTime.Add(time.Minute), 52))

	p := newDryRunConfig(t, inputRoot)

	signature := stackengine.Params{
		StackMethod:     stackengine.Method(p.Stacking.Method),
		RejectionMethod: stackengine.RejectionMethod(p.Stacking.RejectionMethod),
		RejectionParam1: p.Stacking.RejectionParam1,
		RejectionParam2: p.Stacking.RejectionParam2,
		OutputNorm:      stackengine.OutputNorm(p.Stacking.OutputNorm),
	}.Signature()

	masterFrame := testsupport.FITSFrame{
		AcquiredAt:     frameTime.Add(time.Hour), // newer than every input frame: rule 4 (date not newer) applies
		CameraID:       "TestCam",
		BinningH:       1,
		BinningV:       1,
		Gain:           100,
		ExposureS:      300,
		Temperature:    -10,
		NFramesUsed:    2,
		StackSignature: signature,
		Width:          10,
		Height:         10,
		Pixels:         uniformPixels(51, 100),
	}
	masterPath := filepath.Join(p.Paths.LibraryDir, "TestCam_Tm10_E300_G100_B1x1.fits")
	testsupport.WriteFITS(t, masterPath, masterFrame)

	pl := pipeline.New(p, nil, nil)
	rep, err := pl.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	tally := rep.Tally()
	if tally.GroupsBuilt != 0 {
		t.Fatalf("GroupsBuilt = %d, want 0 (existing master already current)", tally.GroupsBuilt)
	}
	if tally.GroupsSkipped != 1 {
		t.Fatalf("GroupsSkipped = %d, want 1", tally.GroupsSkipped)
	}
}
