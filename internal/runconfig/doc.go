// Package runconfig loads, normalizes, and validates darkmaster's
// configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads an optional TOML file, and produces a single immutable
// Params record. The core pipeline never mutates this record or reads
// flags/files directly — config parsing is the CLI layer's job, and the
// run is pure given Params plus the input set.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package runconfig
