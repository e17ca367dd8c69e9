package fits

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"darkmaster/internal/headerio"
)

// Writer implements headerio.Writer against real FITS files on disk. It
// rewrites the primary header in place, leaving the data unit untouched.
type Writer struct{}

var _ headerio.Writer = Writer{}

// Stamp rewrites path's primary header to record the group key it was
// stacked from, when it was acquired, how many frames went into it, and the
// canonical signature of the stacking parameters used to build it. The file
// is replaced atomically: a sibling temp file is written and renamed over
// path only once it is fully flushed.
func (Writer) Stamp(path string, stamp headerio.Stamp) error {
	existing, err := Open(path)
	if err != nil {
		return fmt.Errorf("fits: stamp %s: %w", path, err)
	}

	updated := upsertStampCards(existing.cards, stamp)
	headerBlock := renderHeaderBlock(updated)

	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("fits: stamp %s: %w", path, err)
	}
	defer src.Close()

	if _, err := src.Seek(existing.headerBytes, 0); err != nil {
		return fmt.Errorf("fits: stamp %s: seek data unit: %w", path, err)
	}

	tmpPath := filepath.Join(filepath.Dir(path), "."+filepath.Base(path)+"."+uuid.NewString()+".tmp")
	dst, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("fits: stamp %s: create temp file: %w", path, err)
	}
	defer os.Remove(tmpPath)

	if _, err := dst.Write(headerBlock); err != nil {
		dst.Close()
		return fmt.Errorf("fits: stamp %s: write header: %w", path, err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("fits: stamp %s: copy data unit: %w", path, err)
	}
	if err := dst.Sync(); err != nil {
		dst.Close()
		return fmt.Errorf("fits: stamp %s: fsync: %w", path, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("fits: stamp %s: close temp file: %w", path, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("fits: stamp %s: rename temp file: %w", path, err)
	}
	return nil
}

// upsertStampCards returns a new card slice with the stamp's fields written
// over any existing cards of the same keyword, preserving the position and
// order of everything else and appending new cards at the end.
func upsertStampCards(existing []card, stamp headerio.Stamp) []card {
	out := make([]card, 0, len(existing)+12)
	seen := map[string]bool{}

	replacements := stampCards(stamp)

	for _, c := range existing {
		if repl, ok := replacements[strings.ToUpper(c.keyword)]; ok {
			out = append(out, repl)
			seen[strings.ToUpper(c.keyword)] = true
			continue
		}
		out = append(out, c)
	}
	for keyword, repl := range replacements {
		if !seen[keyword] {
			out = append(out, repl)
		}
	}
	out = append(out, card{keyword: "HISTORY", value: stampHistoryText(stamp), isHistory: true})
	return out
}

func stampCards(stamp headerio.Stamp) map[string]card {
	m := map[string]card{
		"INSTRUME": {keyword: "INSTRUME", value: "'" + stamp.Key.CameraID + "'"},
		"XBINNING": {keyword: "XBINNING", value: fmt.Sprintf("%d", stamp.Key.Binning.H)},
		"YBINNING": {keyword: "YBINNING", value: fmt.Sprintf("%d", stamp.Key.Binning.V)},
		"GAIN":     {keyword: "GAIN", value: fmt.Sprintf("%d", stamp.Key.Gain)},
		"EXPTIME":  {keyword: "EXPTIME", value: fmt.Sprintf("%g", stamp.Key.ExposureS)},
		"CCD-TEMP": {keyword: "CCD-TEMP", value: fmt.Sprintf("%g", stamp.Key.TemperatureC)},
		"CFA":      {keyword: "CFA", value: boolCardValue(stamp.Key.IsCFA)},
		"DATE-OBS": {keyword: "DATE-OBS", value: "'" + stamp.AcquiredAt.UTC().Format("2006-01-02T15:04:05.000") + "'"},
		"NDARKS":   {keyword: "NDARKS", value: fmt.Sprintf("%d", stamp.NFramesUsed)},
		"STACKCMD": {keyword: "STACKCMD", value: "'" + stamp.StackSignature + "'"},
	}
	return m
}

func boolCardValue(b bool) string {
	if b {
		return "T"
	}
	return "F"
}

func stampHistoryText(stamp headerio.Stamp) string {
	return fmt.Sprintf("master rebuilt from %d frames, signature %s", stamp.NFramesUsed, stamp.StackSignature)
}

// renderHeaderBlock formats cards back into 80-column lines padded to a
// whole number of 2880-byte blocks, terminated by an END card.
func renderHeaderBlock(cards []card) []byte {
	var lines []string
	for _, c := range cards {
		switch {
		case c.isHistory:
			lines = append(lines, formatHistoryCard(c.value))
		default:
			lines = append(lines, formatCard(c.keyword, c.value))
		}
	}
	lines = append(lines, padRight("END", cardSize))

	raw := strings.Join(lines, "")
	if rem := len(raw) % blockSize; rem != 0 {
		raw += strings.Repeat(" ", blockSize-rem)
	}
	return []byte(raw)
}
