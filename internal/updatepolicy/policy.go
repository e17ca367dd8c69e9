package updatepolicy

import (
	"log/slog"
	"time"

	"darkmaster/internal/frame"
	"darkmaster/internal/logging"
)

// Decision is the outcome of evaluating a group against its existing
// master: either Build (rebuild the master) or Skip, carrying the reason a
// skip was chosen.
type Decision struct {
	Build  bool
	Reason string
}

const (
	ReasonDateNotNewer             = "date-not-newer"
	ReasonDateNewerButInsufficient = "date-newer-but-insufficient-frames"
)

// Evaluate applies the six-rule decision table against group g and its
// (possibly nil) existing master. currentSignature is the canonical
// stacking-parameter signature this run would produce if it built; T is
// the minimum-frames-to-build threshold; force bypasses every other rule.
func Evaluate(g frame.Group, m *frame.Master, currentSignature string, minDarksThreshold int, force bool) Decision {
	if force {
		return Decision{Build: true}
	}
	if m == nil {
		return Decision{Build: true}
	}
	if m.StackSignature != currentSignature {
		return Decision{Build: true}
	}

	latest := latestAcquisition(g)
	if !latest.After(m.CreatedAt) {
		return Decision{Build: false, Reason: ReasonDateNotNewer}
	}

	nFramesUsed := m.NFramesUsed // absent header field already normalised to 0 by the caller
	meetsThreshold := minDarksThreshold > 0 && len(g.Frames) >= minDarksThreshold
	if meetsThreshold || len(g.Frames) > nFramesUsed {
		return Decision{Build: true}
	}
	return Decision{Build: false, Reason: ReasonDateNewerButInsufficient}
}

func latestAcquisition(g frame.Group) time.Time {
	var latest time.Time
	for _, f := range g.Frames {
		if f.AcquiredAt.After(latest) {
			latest = f.AcquiredAt
		}
	}
	return latest
}

// EvaluateAndLog wraps Evaluate with the policy's structured decision log.
func EvaluateAndLog(logger *slog.Logger, g frame.Group, m *frame.Master, currentSignature string, minDarksThreshold int, force bool) Decision {
	d := Evaluate(g, m, currentSignature, minDarksThreshold, force)
	result := "skip"
	if d.Build {
		result = "build"
	}
	if logger != nil {
		logger.Info("update policy decision",
			logging.Args(logging.DecisionAttrs("update_policy", result, d.Reason)...)...)
	}
	return d
}
