package report

import "darkmaster/internal/frame"

// GroupOutcome is what the Reporter receives for one group processed during
// a run: the decision reached and, depending on that decision, the frames
// that were rejected along the way.
type GroupOutcome struct {
	Key frame.GroupKey

	Built  bool
	Reason string

	// Failed marks a genuine error recovering a group (existing master
	// unreadable, staging failed, the stacking engine failed) as opposed
	// to a benign skip (date-not-newer, insufficient valid frames, a
	// validate-only pass). Run aggregates this across every group to
	// decide the process's exit status.
	Failed bool

	NFramesUsed  int
	NFramesTotal int
	MasterPath   string

	Rejected []frame.RejectedFrame
}
