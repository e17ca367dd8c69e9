package pipeline

import (
	"log/slog"

	"darkmaster/internal/headerio/fits"
	"darkmaster/internal/logging"
	"darkmaster/internal/report"
	"darkmaster/internal/runconfig"
	"darkmaster/internal/runhistory"
	"darkmaster/internal/stackengine"
	"darkmaster/internal/stage"
	"darkmaster/internal/validate"
)

// Pipeline wires every stage together for one run. It holds no per-run
// mutable state itself; Run constructs a fresh report.Report and processes
// every group sequentially.
type Pipeline struct {
	params  runconfig.Params
	logger  *slog.Logger
	history *runhistory.Store

	headerReader fits.Reader
	headerWriter fits.Writer
	validator    *validate.Validator
	stager       *stage.Stager
	runner       *stackengine.Runner

	stackParams stackengine.Params

	// ValidateOnly runs Scanner, Grouper, UpdatePolicy and Validator as
	// usual but stops before staging: no stacking engine invocation, no
	// master file written, no header stamped. Every group still gets a
	// GroupOutcome and a runhistory.DecisionValidated row so a dry
	// validation pass reports exactly which frames would be used or
	// rejected.
	ValidateOnly bool
}

// New constructs a Pipeline from an immutable parameter record. history may
// be nil, in which case the supplemented audit ledger is simply not
// written. A nil logger is replaced with a no-op one.
func New(params runconfig.Params, logger *slog.Logger, history *runhistory.Store) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}

	thresholds := validate.Thresholds{
		MedianCeiling:     params.Validation.MedianCeiling,
		HotPixelFraction:  params.Validation.HotPixelFraction,
		RelativeNoise:     params.Validation.RelativeNoise,
		CentralDispersion: params.Validation.CentralDispersion,
	}

	runner := stackengine.New(params.Engine.Binary, stackengine.Mode(params.Engine.Mode), logging.NewComponentLogger(logger, "stackengine"))
	runner.ContainerRunner = params.Engine.ContainerRunner
	runner.ContainerEngine = params.Engine.ContainerEngine
	runner.ContainerPackageID = params.Engine.ContainerPackageID
	runner.DryRun = params.Engine.DryRun

	return &Pipeline{
		params:       params,
		logger:       logger,
		history:      history,
		headerReader: fits.Reader{},
		headerWriter: fits.Writer{},
		validator:    validate.New(fits.PixelReader{}, thresholds, logging.NewComponentLogger(logger, "validate")),
		stager:       stage.New(params.Paths.StagingDir),
		runner:       runner,
		stackParams: stackengine.Params{
			StackMethod:     stackengine.Method(params.Stacking.Method),
			RejectionMethod: stackengine.RejectionMethod(params.Stacking.RejectionMethod),
			RejectionParam1: params.Stacking.RejectionParam1,
			RejectionParam2: params.Stacking.RejectionParam2,
			OutputNorm:      stackengine.OutputNorm(params.Stacking.OutputNorm),
		},
	}
}

func (p *Pipeline) minDarksThreshold() int {
	return p.params.UpdatePolicy.MinDarksThreshold
}

func (p *Pipeline) newReport() *report.Report {
	return report.New()
}
