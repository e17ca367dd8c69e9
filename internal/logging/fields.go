package logging

// Field name vocabulary shared by every structured log record. Components
// should reach for these instead of ad-hoc keys so the console handler can
// surface them consistently and operators can grep for a stable name.
const (
	FieldComponent    = "component"
	FieldEventType    = "event_type"
	FieldErrorHint    = "error_hint"
	FieldImpact       = "impact"
	FieldAlert        = "alert"
	FieldDecisionType = "decision_type"
	FieldGroupKey     = "group_key"
	FieldFramePath    = "frame_path"
	FieldReason       = "reason"
)
