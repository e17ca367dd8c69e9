// Package logging assembles structured slog loggers and formatting helpers
// used across the pipeline.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes a small field-name vocabulary so stage code tags log
// lines consistently (event type, error hint, user-facing impact). Prefer
// these constructors over hand-rolled slog setup so every component emits
// data with the same shape.
package logging
