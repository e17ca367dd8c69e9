// Package pipeline orchestrates one run of the batch: Scanner, Grouper,
// UpdatePolicy, Validator, Stager, StackRunner, HeaderWriter, and Reporter,
// wired together and driven group by group.
//
// Scheduling is single-threaded and cooperative: groups are processed
// strictly sequentially, and at most one stacking-engine invocation is ever
// in flight. The orchestrator checks for a cancelled context between
// groups; the same context is handed to the stacking engine's process,
// which is killed if the context is cancelled while it runs.
package pipeline
