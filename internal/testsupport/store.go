package testsupport

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"darkmaster/internal/runconfig"
	"darkmaster/internal/runhistory"
)

// MustOpenHistory opens a runhistory.Store rooted at p.Paths.LogDir for
// tests and registers cleanup.
func MustOpenHistory(t testing.TB, p runconfig.Params) *runhistory.Store {
	t.Helper()

	store, err := runhistory.Open(filepath.Join(p.Paths.LogDir, "history.db"))
	if err != nil {
		t.Fatalf("runhistory.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// RecordDecision appends a decision for tests that only care about the
// group key and outcome, filling in a current timestamp.
func RecordDecision(t testing.TB, store *runhistory.Store, groupKey string, decision runhistory.Decision) {
	t.Helper()

	err := store.RecordDecision(context.Background(), runhistory.RunDecision{
		RunStartedAt: time.Now().UTC(),
		GroupKey:     groupKey,
		Decision:     decision,
	})
	if err != nil {
		t.Fatalf("store.RecordDecision: %v", err)
	}
}
