package testsupport

import (
	"path/filepath"
	"testing"

	"darkmaster/internal/runconfig"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*runconfig.Params)

// NewConfig produces a runconfig.Params seeded with unique temp directories
// per test, with all other fields at their normal defaults. It never reads
// or writes a config file on disk.
func NewConfig(t testing.TB, opts ...ConfigOption) runconfig.Params {
	t.Helper()

	base := t.TempDir()
	p := runconfig.Default()
	p.Paths.LibraryDir = filepath.Join(base, "library")
	p.Paths.StagingDir = filepath.Join(base, "staging")
	p.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&p)
	}

	if err := p.Validate(); err != nil {
		t.Fatalf("invalid test config: %v", err)
	}

	return p
}

// WithEngineMode overrides the stacking engine invocation mode.
func WithEngineMode(mode string) ConfigOption {
	return func(p *runconfig.Params) {
		p.Engine.Mode = mode
	}
}

// WithForceRestack sets the UpdatePolicy force-restack override.
func WithForceRestack(force bool) ConfigOption {
	return func(p *runconfig.Params) {
		p.UpdatePolicy.Force = force
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(p runconfig.Params) string {
	return filepath.Dir(p.Paths.StagingDir)
}
