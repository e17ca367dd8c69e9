package runhistory

import "time"

// Decision enumerates the outcome UpdatePolicy and the validation/stacking
// stages reached for one group in one run.
type Decision string

const (
	DecisionStacked   Decision = "stacked"
	DecisionSkipped   Decision = "skipped"
	DecisionFailed    Decision = "failed"
	DecisionRejected  Decision = "rejected"
	DecisionValidated Decision = "validated"
)

// RunDecision is one row of the audit ledger: what darkmaster decided to do
// about a single group during a single run, and why.
type RunDecision struct {
	ID           int64
	RunStartedAt time.Time
	GroupKey     string
	Decision     Decision
	Reason       string
	Signature    string
	NFramesUsed  int
	NFramesTotal int
	MasterPath   string
	RecordedAt   time.Time
}
