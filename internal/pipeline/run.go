package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"darkmaster/internal/frame"
	"darkmaster/internal/groupkey"
	"darkmaster/internal/grouping"
	"darkmaster/internal/headerio"
	"darkmaster/internal/logging"
	"darkmaster/internal/report"
	"darkmaster/internal/runhistory"
	"darkmaster/internal/scan"
	"darkmaster/internal/updatepolicy"
	"darkmaster/internal/validate"
)

// Run scans the configured input roots, partitions the result into groups,
// and processes every group sequentially against its existing master (if
// any). It returns the accumulated report.Report regardless of whether
// individual groups failed; only a Scanner failure or a cancelled context
// between groups aborts the run early.
func (p *Pipeline) Run(ctx context.Context) (*report.Report, error) {
	runStartedAt := time.Now().UTC()
	rep := p.newReport()

	scanner := scan.New(p.headerReader, p.params.Scan.MaxAgeDays, logging.NewComponentLogger(p.logger, "scan"))
	frames, skipped, err := scanner.Scan(ctx, p.params.Scan.InputRoots)
	if err != nil {
		return rep, fmt.Errorf("pipeline: scan failed: %w", err)
	}
	for _, s := range skipped {
		p.logger.Debug("scan skipped candidate", logging.String("path", s.Path), logging.String("reason", s.Reason))
	}

	groups := grouping.Partition(frames, p.params.Grouping.TemperaturePrecision)
	grouping.SortByKey(groups)

	p.logger.Info("scan complete",
		logging.Int("frames_found", len(frames)),
		logging.Int("groups_found", len(groups)),
		logging.String(logging.FieldEventType, "scan_complete"),
	)

	for _, g := range groups {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		p.processGroup(ctx, rep, g, runStartedAt)
	}

	return rep, nil
}

func (p *Pipeline) processGroup(ctx context.Context, rep *report.Report, g frame.Group, runStartedAt time.Time) {
	groupLogger := logging.NewComponentLogger(p.logger, "pipeline").With(
		logging.String("camera_id", g.Key.CameraID),
		logging.Float64("exposure_s", g.Key.ExposureS),
		logging.Float64("temperature_c", g.Key.TemperatureC),
	)

	existing, err := p.existingMaster(g.Key)
	if err != nil {
		groupLogger.Error("failed to read existing master", logging.Error(err))
		p.finish(rep, runStartedAt, report.GroupOutcome{
			Key:          g.Key,
			Failed:       true,
			Reason:       "existing-master-unreadable",
			NFramesTotal: len(g.Frames),
		}, runhistory.DecisionFailed, err.Error())
		return
	}

	decision := updatepolicy.EvaluateAndLog(groupLogger, g, existing, p.stackParams.Signature(), p.minDarksThreshold(), p.params.UpdatePolicy.Force)
	if !decision.Build {
		p.finish(rep, runStartedAt, report.GroupOutcome{
			Key:          g.Key,
			Reason:       decision.Reason,
			NFramesTotal: len(g.Frames),
		}, runhistory.DecisionSkipped, decision.Reason)
		return
	}

	accepted, rejected := p.validator.Validate(g)
	if validate.InsufficientlyValid(accepted) {
		groupLogger.Warn("too few valid frames to stack; group skipped",
			logging.Int("accepted", len(accepted)),
			logging.Int("rejected", len(rejected)),
			logging.String(logging.FieldEventType, "insufficient_valid_frames"),
		)
		allRejected := make([]frame.RejectedFrame, len(rejected), len(rejected)+len(accepted))
		copy(allRejected, rejected)
		for _, f := range accepted {
			allRejected = append(allRejected, frame.RejectedFrame{Frame: f, Reason: frame.ReasonInsufficientValid, Stats: f.Stats})
		}
		p.finish(rep, runStartedAt, report.GroupOutcome{
			Key:          g.Key,
			Reason:       string(frame.ReasonInsufficientValid),
			NFramesTotal: len(g.Frames),
			Rejected:     allRejected,
		}, runhistory.DecisionRejected, string(frame.ReasonInsufficientValid))
		return
	}

	if p.ValidateOnly {
		p.finish(rep, runStartedAt, report.GroupOutcome{
			Key:          g.Key,
			NFramesUsed:  len(accepted),
			NFramesTotal: len(g.Frames),
			Rejected:     rejected,
		}, runhistory.DecisionValidated, "validate-only")
		return
	}

	stagingName := groupkey.StagingName(g.Key)
	stagingDir, err := p.stager.Stage(stagingName, accepted)
	if err != nil {
		groupLogger.Error("staging failed", logging.Error(err))
		p.finish(rep, runStartedAt, report.GroupOutcome{
			Key:          g.Key,
			Failed:       true,
			Reason:       "stage-failed",
			NFramesTotal: len(g.Frames),
			Rejected:     rejected,
		}, runhistory.DecisionFailed, err.Error())
		return
	}
	defer os.RemoveAll(stagingDir)

	targetPath := p.masterPathFor(g.Key)
	command, runErr := p.runner.Run(ctx, stagingDir, g.Key, p.stackParams, targetPath)
	groupLogger.Debug("stacking engine command", logging.String("command", command))
	if runErr != nil {
		groupLogger.Error("stacking engine run failed", logging.Error(runErr))
		p.finish(rep, runStartedAt, report.GroupOutcome{
			Key:          g.Key,
			Failed:       true,
			Reason:       "stack-failed",
			NFramesTotal: len(g.Frames),
			Rejected:     rejected,
		}, runhistory.DecisionFailed, runErr.Error())
		return
	}

	signature := p.stackParams.Signature()
	stamp := headerio.Stamp{
		Key:            g.Key,
		AcquiredAt:     latestAcquisition(accepted),
		NFramesUsed:    len(accepted),
		StackSignature: signature,
	}
	outcome := report.GroupOutcome{
		Key:          g.Key,
		Built:        true,
		NFramesUsed:  len(accepted),
		NFramesTotal: len(g.Frames),
		MasterPath:   targetPath,
		Rejected:     rejected,
	}
	if p.params.Engine.DryRun {
		// A dry run writes no master, so there is no header to stamp.
		p.finish(rep, runStartedAt, outcome, runhistory.DecisionStacked, "")
		return
	}
	if err := p.headerWriter.Stamp(targetPath, stamp); err != nil {
		groupLogger.Error("header stamp failed; master was written but its provenance header is stale",
			logging.Error(err),
			logging.String("master_path", targetPath),
		)
		outcome.Failed = true
		outcome.Reason = "header-stamp-failed"
		p.finish(rep, runStartedAt, outcome, runhistory.DecisionFailed, err.Error())
		return
	}

	p.finish(rep, runStartedAt, outcome, runhistory.DecisionStacked, "")
}

// finish records outcome into the report and, when a history store is
// configured, appends the matching ledger row. A ledger write failure is
// logged but never aborts the run; the ledger is a supplemental record.
func (p *Pipeline) finish(rep *report.Report, runStartedAt time.Time, outcome report.GroupOutcome, decision runhistory.Decision, reason string) {
	rep.RecordGroup(outcome)

	if p.history == nil {
		return
	}

	signature := ""
	if decision == runhistory.DecisionStacked {
		signature = p.stackParams.Signature()
	}
	err := p.history.RecordDecision(context.Background(), runhistory.RunDecision{
		RunStartedAt: runStartedAt,
		GroupKey:     groupkey.StagingName(outcome.Key),
		Decision:     decision,
		Reason:       reason,
		Signature:    signature,
		NFramesUsed:  outcome.NFramesUsed,
		NFramesTotal: outcome.NFramesTotal,
		MasterPath:   outcome.MasterPath,
	})
	if err != nil {
		p.logger.Warn("failed to record run-history decision", logging.Error(err))
	}
}

func latestAcquisition(frames []frame.FrameInfo) time.Time {
	var latest time.Time
	for _, f := range frames {
		if f.AcquiredAt.After(latest) {
			latest = f.AcquiredAt
		}
	}
	return latest
}
