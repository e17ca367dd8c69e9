// Package runhistory persists a lightweight, append-only ledger of every
// run's per-group decisions to a local sqlite database, purely for
// after-the-fact auditing. UpdatePolicy and the core decision loop never
// read from it; it is a supplemental record, not a second source of truth.
package runhistory
