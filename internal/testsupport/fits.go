package testsupport

import (
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// FITSFrame describes the header fields and pixel data to bake into a
// minimal synthetic FITS file for tests. Pixels is stored BITPIX=-32
// (IEEE float32), the simplest encoding fits.File.ReadPixels supports.
type FITSFrame struct {
	AcquiredAt time.Time
	CameraID   string
	BinningH   int
	BinningV   int
	Gain       int
	ExposureS  float64
	Temperature float64
	IsCFA      bool
	ImageType  string // e.g. "DARK", "BIAS"; empty omits IMAGETYP

	// NFramesUsed and StackSignature are only meaningful on a synthetic
	// master file; zero/empty omits NDARKS/STACKCMD entirely.
	NFramesUsed    int
	StackSignature string

	Width, Height int
	Pixels        []float64 // row-major, len must equal Width*Height
}

// WriteFITS writes a synthetic FITS file at path with the given header
// fields and pixel payload, in the same 80-column-card / 2880-byte-block
// layout headerio/fits reads and writes.
func WriteFITS(t testing.TB, path string, f FITSFrame) {
	t.Helper()

	if len(f.Pixels) != f.Width*f.Height {
		t.Fatalf("WriteFITS %s: pixels length %d does not match %dx%d", path, len(f.Pixels), f.Width, f.Height)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}

	var lines []string
	lines = append(lines, card("SIMPLE", "T"))
	lines = append(lines, card("BITPIX", "-32"))
	lines = append(lines, card("NAXIS", "2"))
	lines = append(lines, card("NAXIS1", fmt.Sprintf("%d", f.Width)))
	lines = append(lines, card("NAXIS2", fmt.Sprintf("%d", f.Height)))
	lines = append(lines, card("BZERO", "0"))
	lines = append(lines, card("BSCALE", "1"))
	lines = append(lines, card("DATE-OBS", quote(f.AcquiredAt.UTC().Format("2006-01-02T15:04:05.000"))))
	lines = append(lines, card("INSTRUME", quote(f.CameraID)))
	lines = append(lines, card("XBINNING", fmt.Sprintf("%d", f.BinningH)))
	lines = append(lines, card("YBINNING", fmt.Sprintf("%d", f.BinningV)))
	lines = append(lines, card("GAIN", fmt.Sprintf("%d", f.Gain)))
	lines = append(lines, card("EXPTIME", fmt.Sprintf("%g", f.ExposureS)))
	lines = append(lines, card("CCD-TEMP", fmt.Sprintf("%g", f.Temperature)))
	if f.IsCFA {
		lines = append(lines, card("CFA", "T"))
	}
	if f.ImageType != "" {
		lines = append(lines, card("IMAGETYP", quote(f.ImageType)))
	}
	if f.NFramesUsed != 0 {
		lines = append(lines, card("NDARKS", fmt.Sprintf("%d", f.NFramesUsed)))
	}
	if f.StackSignature != "" {
		lines = append(lines, card("STACKCMD", quote(f.StackSignature)))
	}
	lines = append(lines, padRight("END", 80))

	header := strings.Join(lines, "")
	if rem := len(header) % 2880; rem != 0 {
		header += strings.Repeat(" ", 2880-rem)
	}

	buf := make([]byte, 4*len(f.Pixels))
	for i, v := range f.Pixels {
		binary.BigEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(float32(v)))
	}

	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()

	if _, err := file.WriteString(header); err != nil {
		t.Fatalf("write header for %s: %v", path, err)
	}
	if _, err := file.Write(buf); err != nil {
		t.Fatalf("write pixel data for %s: %v", path, err)
	}
	if rem := len(buf) % 2880; rem != 0 {
		if _, err := file.Write(make([]byte, 2880-rem)); err != nil {
			t.Fatalf("pad data unit for %s: %v", path, err)
		}
	}
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func card(keyword, value string) string {
	line := padRight(keyword, 8) + "= " + value
	return padRight(line, 80)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
