package runhistory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const decisionColumns = "id, run_started_at, group_key, decision, reason, signature, n_frames_used, n_frames_total, master_path, recorded_at"

// RecordDecision appends one row to the ledger. It never updates or deletes
// an existing row; the ledger only grows.
func (s *Store) RecordDecision(ctx context.Context, d RunDecision) error {
	recordedAt := d.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now().UTC()
	}

	_, err := s.execWithRetry(
		ctx,
		`INSERT INTO run_decisions (
            run_started_at, group_key, decision, reason, signature,
            n_frames_used, n_frames_total, master_path, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(d.RunStartedAt),
		d.GroupKey,
		string(d.Decision),
		d.Reason,
		d.Signature,
		d.NFramesUsed,
		d.NFramesTotal,
		d.MasterPath,
		formatTime(recordedAt),
	)
	if err != nil {
		return fmt.Errorf("record decision: %w", err)
	}
	return nil
}

// RecentDecisions returns up to limit rows, most recently recorded first.
func (s *Store) RecentDecisions(ctx context.Context, limit int) ([]RunDecision, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+decisionColumns+` FROM run_decisions ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent decisions: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanDecisions(rows)
}

// DecisionsForGroup returns every recorded decision for groupKey, oldest
// first, so callers can see how a group's outcome evolved across runs.
func (s *Store) DecisionsForGroup(ctx context.Context, groupKey string) ([]RunDecision, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT `+decisionColumns+` FROM run_decisions WHERE group_key = ? ORDER BY id ASC`,
		groupKey,
	)
	if err != nil {
		return nil, fmt.Errorf("query decisions for group: %w", err)
	}
	defer func() { _ = rows.Close() }()
	return scanDecisions(rows)
}

func scanDecisions(rows *sql.Rows) ([]RunDecision, error) {
	var out []RunDecision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, fmt.Errorf("scan decision: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate decisions: %w", err)
	}
	return out, nil
}

func scanDecision(scanner interface{ Scan(dest ...any) error }) (RunDecision, error) {
	var (
		id           int64
		runStarted   string
		groupKey     string
		decisionStr  string
		reason       string
		signature    string
		nFramesUsed  int
		nFramesTotal int
		masterPath   string
		recordedAt   string
	)
	if err := scanner.Scan(
		&id, &runStarted, &groupKey, &decisionStr, &reason, &signature,
		&nFramesUsed, &nFramesTotal, &masterPath, &recordedAt,
	); err != nil {
		return RunDecision{}, err
	}

	d := RunDecision{
		ID:           id,
		GroupKey:     groupKey,
		Decision:     Decision(decisionStr),
		Reason:       reason,
		Signature:    signature,
		NFramesUsed:  nFramesUsed,
		NFramesTotal: nFramesTotal,
		MasterPath:   masterPath,
	}
	if t, err := parseTime(runStarted); err == nil {
		d.RunStartedAt = t
	}
	if t, err := parseTime(recordedAt); err == nil {
		d.RecordedAt = t
	}
	return d, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty timestamp")
	}
	return time.Parse(time.RFC3339Nano, value)
}
