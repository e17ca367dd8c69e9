package stackengine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"darkmaster/internal/frame"
	"darkmaster/internal/logging"
)

var commandContext = exec.CommandContext

// Runner spawns the external stacking engine against a staged sequence.
// At most one Run call is meant to be in flight system-wide; callers are
// responsible for serialising invocations, mirroring the engine's own
// aggressive RAM and file-descriptor use.
type Runner struct {
	// Binary is the engine executable, used by ModeNative and
	// ModeSelfContainedBundle.
	Binary string
	// ContainerRunner, ContainerEngine and ContainerPackageID are used by
	// ModeContainerised, e.g. "flatpak", "siril" and "org.siril.Siril".
	ContainerRunner    string
	ContainerEngine    string
	ContainerPackageID string
	Mode               Mode

	// DryRun, when true, synthesises the script and logs the command that
	// would run but never spawns the engine; Run returns the command
	// string it would have used.
	DryRun bool

	Logger *slog.Logger
}

// New constructs a Runner. A nil logger is replaced with a no-op one.
func New(binary string, mode Mode, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{Binary: binary, Mode: mode, Logger: logger}
}

// Run synthesises the stacking script for the frames staged under
// stagingDir, spawns the configured engine to execute it, and moves the
// resulting master atomically onto targetPath. Once the engine argv is
// built, it returns the command string actually used (or, in dry-run
// mode, the command that would have been used) whether or not the run
// succeeds; it returns an empty string when the work directory or the
// argv cannot be created.
func (r *Runner) Run(ctx context.Context, stagingDir string, key frame.GroupKey, params Params, targetPath string) (string, error) {
	workDir, err := os.MkdirTemp(filepath.Dir(stagingDir), "darkmaster-stack-*")
	if err != nil {
		return "", fmt.Errorf("stackengine: create work directory: %w", err)
	}
	defer os.RemoveAll(workDir)

	r.Logger.Debug("stacking group",
		logging.String("camera_id", key.CameraID),
		logging.Float64("exposure_s", key.ExposureS),
		logging.Float64("temperature_c", key.TemperatureC),
	)

	script := buildScript(stagingDir, workDir, params)
	scriptPath := scriptPathFor(workDir)
	args, err := argv(r.Mode, r.Binary, r.ContainerRunner, r.ContainerEngine, r.ContainerPackageID, scriptPath)
	if err != nil {
		return "", err
	}
	command := strings.Join(args, " ")

	if r.DryRun {
		r.Logger.Info("dry run: would invoke stacking engine",
			logging.String("command", command),
			logging.String(logging.FieldEventType, "stack_dry_run"),
		)
		return command, nil
	}

	if err := os.WriteFile(scriptPath, []byte(script), 0o600); err != nil {
		return command, fmt.Errorf("stackengine: write script: %w", err)
	}
	defer os.Remove(scriptPath)

	cmd := commandContext(ctx, args[0], args[1:]...) //nolint:gosec
	cmd.Dir = workDir
	output, runErr := cmd.CombinedOutput()
	if runErr != nil {
		logging.ErrorWithContext(r.Logger, "stacking engine invocation failed", "stack_engine_failed",
			logging.String("command", command),
			logging.String("output", string(output)),
			logging.Error(runErr),
		)
		return command, fmt.Errorf("stackengine: engine invocation failed: %w", runErr)
	}
	r.Logger.Debug("stacking engine output", logging.String("output", string(output)))

	intermediate := filepath.Join(workDir, outputName)
	if _, err := os.Stat(intermediate); err != nil {
		return command, fmt.Errorf("stackengine: expected output %s not produced: %w", intermediate, err)
	}
	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return command, fmt.Errorf("stackengine: create library directory: %w", err)
	}
	if err := moveAtomic(intermediate, targetPath); err != nil {
		return command, fmt.Errorf("stackengine: move result to library: %w", err)
	}

	return command, nil
}

func scriptPathFor(workDir string) string {
	return filepath.Join(workDir, "script-"+uuid.NewString()+".sps")
}
