package updatepolicy

import (
	"testing"
	"time"

	"darkmaster/internal/frame"
)

func groupAt(frames ...time.Time) frame.Group {
	g := frame.Group{}
	for _, at := range frames {
		g.Frames = append(g.Frames, frame.FrameInfo{AcquiredAt: at})
	}
	return g
}

func TestEvaluateForceAlwaysBuilds(t *testing.T) {
	m := &frame.Master{StackSignature: "sig", NFramesUsed: 99, CreatedAt: time.Now()}
	d := Evaluate(groupAt(time.Now().Add(-time.Hour)), m, "sig", 100, true)
	if !d.Build {
		t.Fatal("expected Build when force is set regardless of other conditions")
	}
}

func TestEvaluateBuildsWhenMasterAbsent(t *testing.T) {
	d := Evaluate(groupAt(time.Now()), nil, "sig", 0, false)
	if !d.Build {
		t.Fatal("expected Build when no existing master")
	}
}

func TestEvaluateBuildsWhenSignatureDiffers(t *testing.T) {
	m := &frame.Master{StackSignature: "old-sig", NFramesUsed: 10, CreatedAt: time.Now().Add(-time.Hour)}
	d := Evaluate(groupAt(time.Now()), m, "new-sig", 0, false)
	if !d.Build {
		t.Fatal("expected Build when stack signature changed")
	}
}

func TestEvaluateSkipsWhenNotNewer(t *testing.T) {
	created := time.Now()
	m := &frame.Master{StackSignature: "sig", NFramesUsed: 10, CreatedAt: created}
	d := Evaluate(groupAt(created.Add(-time.Minute)), m, "sig", 0, false)
	if d.Build || d.Reason != ReasonDateNotNewer {
		t.Fatalf("expected Skip(%s), got %+v", ReasonDateNotNewer, d)
	}
}

func TestEvaluateBuildsWhenNewerAndAboveThreshold(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	m := &frame.Master{StackSignature: "sig", NFramesUsed: 5, CreatedAt: created}
	g := groupAt(created.Add(time.Minute), created.Add(2*time.Minute))
	d := Evaluate(g, m, "sig", 2, false)
	if !d.Build {
		t.Fatal("expected Build when group size meets the minimum threshold")
	}
}

func TestEvaluateBuildsWhenNewerAndMoreFramesThanMaster(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	m := &frame.Master{StackSignature: "sig", NFramesUsed: 1, CreatedAt: created}
	g := groupAt(created.Add(time.Minute), created.Add(2*time.Minute))
	d := Evaluate(g, m, "sig", 100, false)
	if !d.Build {
		t.Fatal("expected Build when group has more frames than the master used")
	}
}

func TestEvaluateSkipsWhenNewerButInsufficientFrames(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	m := &frame.Master{StackSignature: "sig", NFramesUsed: 10, CreatedAt: created}
	g := groupAt(created.Add(time.Minute))
	d := Evaluate(g, m, "sig", 100, false)
	if d.Build || d.Reason != ReasonDateNewerButInsufficient {
		t.Fatalf("expected Skip(%s), got %+v", ReasonDateNewerButInsufficient, d)
	}
}

func TestEvaluateSkipsWhenNewerButShrinkingGroupAtDefaultThreshold(t *testing.T) {
	created := time.Now().Add(-24 * time.Hour)
	m := &frame.Master{StackSignature: "sig", NFramesUsed: 10, CreatedAt: created}
	g := groupAt(
		time.Now().Add(-4*time.Minute),
		time.Now().Add(-3*time.Minute),
		time.Now().Add(-2*time.Minute),
		time.Now().Add(-time.Minute),
		time.Now(),
	)
	d := Evaluate(g, m, "sig", 0, false)
	if d.Build || d.Reason != ReasonDateNewerButInsufficient {
		t.Fatalf("expected Skip(%s) at the default min_darks_threshold=0 when the new group is smaller than the master's frame count, got %+v", ReasonDateNewerButInsufficient, d)
	}
}

func TestEvaluateTreatsMissingNFramesUsedAsZero(t *testing.T) {
	created := time.Now().Add(-time.Hour)
	m := &frame.Master{StackSignature: "sig", NFramesUsed: 0, CreatedAt: created}
	g := groupAt(created.Add(time.Minute))
	d := Evaluate(g, m, "sig", 0, false)
	if !d.Build {
		t.Fatal("expected Build: any non-empty group beats a master with n_frames_used treated as 0")
	}
}
