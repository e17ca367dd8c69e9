package validate

import (
	"fmt"
	"log/slog"

	"darkmaster/internal/frame"
	"darkmaster/internal/logging"
	"darkmaster/internal/validate/stats"
)

// PixelSource decodes a frame file's pixel array into physical values.
type PixelSource interface {
	ReadPixels(path string) ([]float64, int, int, error)
}

// Thresholds holds the four rejection-test limits. The zero value is
// invalid; use DefaultThresholds.
type Thresholds struct {
	MedianCeiling     float64
	HotPixelFraction  float64
	RelativeNoise     float64
	CentralDispersion float64
}

// DefaultThresholds reproduces the values every behaviourally-compatible
// implementation must default to.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MedianCeiling:     200,
		HotPixelFraction:  0.002,
		RelativeNoise:     0.15,
		CentralDispersion: 0.4,
	}
}

// Validator computes per-frame statistics and applies the rejection
// battery to decide which frames of a group are usable for stacking.
type Validator struct {
	Pixels     PixelSource
	Thresholds Thresholds
	Logger     *slog.Logger
}

// New constructs a Validator. A zero Thresholds is replaced with
// DefaultThresholds; a nil logger is replaced with a no-op one.
func New(pixels PixelSource, thresholds Thresholds, logger *slog.Logger) *Validator {
	if thresholds == (Thresholds{}) {
		thresholds = DefaultThresholds()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Validator{Pixels: pixels, Thresholds: thresholds, Logger: logger}
}

// Validate runs the test battery against every frame in g, preserving
// input order in accepted and returning every rejection with the stats
// that triggered it.
func (v *Validator) Validate(g frame.Group) (accepted []frame.FrameInfo, rejected []frame.RejectedFrame) {
	for _, f := range g.Frames {
		s, err := v.computeStats(f.Path)
		if err != nil {
			rejected = append(rejected, frame.RejectedFrame{
				Frame:  f,
				Reason: frame.ReasonUnreadablePixels,
				Stats:  s,
			})
			v.Logger.Warn("frame pixel data unreadable",
				logging.String("path", f.Path),
				logging.Error(err),
				logging.String(logging.FieldEventType, "validate_unreadable"),
			)
			continue
		}

		if reason, ok := firstFailure(s, v.Thresholds); ok {
			rejected = append(rejected, frame.RejectedFrame{Frame: f, Reason: reason, Stats: s})
			continue
		}

		f.Stats = s
		accepted = append(accepted, f)
	}
	return accepted, rejected
}

func (v *Validator) computeStats(path string) (frame.ImageStats, error) {
	pixels, _, _, err := v.Pixels.ReadPixels(path)
	if err != nil {
		return frame.ImageStats{}, fmt.Errorf("read pixels: %w", err)
	}
	if len(pixels) == 0 {
		return frame.ImageStats{}, fmt.Errorf("empty pixel array")
	}
	return computeImageStats(pixels), nil
}

// computeImageStats derives the full robust summary for one frame's pixel
// rectangle. Every statistic is computed over the whole array; no masking.
func computeImageStats(pixels []float64) frame.ImageStats {
	var acc stats.Accumulator
	for _, p := range pixels {
		acc.Add(p)
	}
	mean, std := acc.Mean(), acc.Std()

	ordered := append([]float64{}, pixels...)
	median := stats.Median(ordered)

	madInput := append([]float64{}, pixels...)
	mad := stats.MAD(madInput, median)

	p10Input := append([]float64{}, pixels...)
	p10 := stats.Percentile(p10Input, 0.10)

	p90Input := append([]float64{}, pixels...)
	p90 := stats.Percentile(p90Input, 0.90)

	p99Input := append([]float64{}, pixels...)
	p99 := stats.Percentile(p99Input, 0.99)

	hotThreshold := mean + 3*std
	hotCount := 0
	for _, p := range pixels {
		if p > hotThreshold {
			hotCount++
		}
	}
	hotFraction := float64(hotCount) / float64(len(pixels))

	s := frame.ImageStats{
		Median:            median,
		MAD:               mad,
		Mean:              mean,
		Std:               std,
		P10:               p10,
		P90:               p90,
		P99:               p99,
		HotPixelFraction:  hotFraction,
		HotPixelThreshold: hotThreshold,
		Valid:             median > 0,
	}
	if s.Valid {
		s.MADRatio = mad / median
		s.CentralDispersion = (p90 - p10) / median
	}
	return s
}

// MinAcceptedFrames is the smallest accepted-frame count the external
// stacker will run on; fewer than this and the whole group must be
// skipped rather than handed to the StackRunner.
const MinAcceptedFrames = 2

// InsufficientlyValid reports whether accepted falls below
// MinAcceptedFrames, the post-validation guard that turns a group with
// too few surviving frames into a whole-group skip.
func InsufficientlyValid(accepted []frame.FrameInfo) bool {
	return len(accepted) < MinAcceptedFrames
}

// firstFailure returns the first rejection test (in spec order) that s
// fails, if any.
func firstFailure(s frame.ImageStats, t Thresholds) (frame.RejectReason, bool) {
	if !s.Valid {
		return frame.ReasonDegenerateStatistics, true
	}
	if s.Median > t.MedianCeiling {
		return frame.ReasonMedianCeiling, true
	}
	if s.HotPixelFraction > t.HotPixelFraction {
		return frame.ReasonHotPixelFraction, true
	}
	if s.MADRatio > t.RelativeNoise {
		return frame.ReasonRelativeNoise, true
	}
	if s.CentralDispersion > t.CentralDispersion {
		return frame.ReasonCentralDispersion, true
	}
	return "", false
}
