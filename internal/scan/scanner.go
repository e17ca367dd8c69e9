package scan

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"darkmaster/internal/frame"
	"darkmaster/internal/headerio"
	"darkmaster/internal/logging"
)

// biasExposureCeilingS is the fallback threshold below which a frame with
// no explicit kind hint in its header is classified as Bias rather than
// Dark.
const biasExposureCeilingS = 0.05

var recognizedExtensions = map[string]bool{
	".fit":  true,
	".fits": true,
	".fts":  true,
}

// Skipped records a file the Scanner chose not to emit a FrameInfo for,
// along with why — never fatal, always continued past.
type Skipped struct {
	Path   string
	Reason string
}

// Scanner walks a set of input roots and yields FrameInfo records for every
// recognised dark or bias frame within the run's age window.
type Scanner struct {
	Reader     headerio.Reader
	MaxAgeDays int
	Logger     *slog.Logger
}

// New constructs a Scanner. A nil logger is replaced with a no-op one.
func New(reader headerio.Reader, maxAgeDays int, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Scanner{Reader: reader, MaxAgeDays: maxAgeDays, Logger: logger}
}

// Scan traverses roots recursively, reading each candidate file's header
// and classifying it, then applies the age-window filter in a second pass
// over the buffered results. An unreachable root is fatal; every other
// failure is recorded as a Skipped diagnostic and the walk continues.
func (s *Scanner) Scan(ctx context.Context, roots []string) ([]frame.FrameInfo, []Skipped, error) {
	var candidates []frame.FrameInfo
	var skipped []Skipped

	for _, root := range roots {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		rootCandidates, rootSkipped, err := s.scanRoot(root)
		if err != nil {
			return nil, nil, fmt.Errorf("scan: root %s unreachable: %w", root, err)
		}
		candidates = append(candidates, rootCandidates...)
		skipped = append(skipped, rootSkipped...)
	}

	return filterByAgeWindow(candidates, s.MaxAgeDays), skipped, nil
}

func (s *Scanner) scanRoot(root string) ([]frame.FrameInfo, []Skipped, error) {
	var candidates []frame.FrameInfo
	var skipped []Skipped

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			skipped = append(skipped, Skipped{Path: path, Reason: err.Error()})
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !recognizedExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		info, err := s.readFrame(path)
		if err != nil {
			skipped = append(skipped, Skipped{Path: path, Reason: err.Error()})
			s.Logger.Warn("skipped unreadable frame candidate",
				logging.String("path", path),
				logging.Error(err),
				logging.String(logging.FieldEventType, "scan_skip"),
			)
			return nil
		}
		if info.Kind == frame.KindOther {
			skipped = append(skipped, Skipped{Path: path, Reason: "frame_kind other"})
			return nil
		}
		candidates = append(candidates, info)
		return nil
	})
	if walkErr != nil {
		return nil, nil, walkErr
	}
	return candidates, skipped, nil
}

func (s *Scanner) readFrame(path string) (frame.FrameInfo, error) {
	hdr, err := s.Reader.Read(path)
	if err != nil {
		return frame.FrameInfo{}, fmt.Errorf("read header: %w", err)
	}

	acquiredAt, ok := hdr.AcquiredAt()
	if !ok {
		return frame.FrameInfo{}, fmt.Errorf("missing or unparsable DATE-OBS")
	}
	cameraID, ok := hdr.CameraID()
	if !ok {
		return frame.FrameInfo{}, fmt.Errorf("missing camera identifier")
	}
	binning, ok := hdr.Binning()
	if !ok {
		binning = frame.Binning{H: 1, V: 1}
	}
	gain, _ := hdr.Gain()
	exposureS, ok := hdr.ExposureS()
	if !ok {
		return frame.FrameInfo{}, fmt.Errorf("missing EXPTIME")
	}
	temperatureC, ok := hdr.TemperatureC()
	if !ok {
		return frame.FrameInfo{}, fmt.Errorf("missing sensor temperature")
	}
	isCFA, _ := hdr.IsCFA()

	kind := classify(hdr, exposureS)

	return frame.FrameInfo{
		Path:         path,
		AcquiredAt:   acquiredAt,
		CameraID:     cameraID,
		Binning:      binning,
		Gain:         gain,
		ExposureS:    exposureS,
		TemperatureC: temperatureC,
		IsCFA:        isCFA,
		Kind:         kind,
	}, nil
}

func classify(hdr headerio.Header, exposureS float64) frame.Kind {
	if hint, ok := hdr.KindHint(); ok && hint != "" {
		return hint
	}
	if exposureS <= biasExposureCeilingS {
		return frame.KindBias
	}
	return frame.KindDark
}

// filterByAgeWindow keeps only frames whose acquired_at falls within
// [latest_seen - maxAgeDays, latest_seen], where latest_seen is the maximum
// acquired_at across all candidates. maxAgeDays <= 0 disables filtering.
func filterByAgeWindow(candidates []frame.FrameInfo, maxAgeDays int) []frame.FrameInfo {
	if maxAgeDays <= 0 || len(candidates) == 0 {
		return candidates
	}

	latest := candidates[0].AcquiredAt
	for _, c := range candidates[1:] {
		if c.AcquiredAt.After(latest) {
			latest = c.AcquiredAt
		}
	}
	cutoff := latest.Add(-time.Duration(maxAgeDays) * 24 * time.Hour)

	kept := make([]frame.FrameInfo, 0, len(candidates))
	for _, c := range candidates {
		if !c.AcquiredAt.Before(cutoff) {
			kept = append(kept, c)
		}
	}
	return kept
}

// sortByPath orders frames by path in place. Scan does not call it and
// makes no ordering guarantee.
func sortByPath(frames []frame.FrameInfo) {
	sort.Slice(frames, func(i, j int) bool { return frames[i].Path < frames[j].Path })
}
