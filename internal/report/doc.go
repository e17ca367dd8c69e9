// Package report implements the Reporter: it accumulates the decision and
// outcome for every group a run processes and renders a structured,
// end-of-run summary. The Reporter performs no frame I/O; it only holds and
// formats what earlier stages hand it.
package report
