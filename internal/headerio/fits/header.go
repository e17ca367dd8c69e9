package fits

import (
	"strconv"
	"strings"
	"time"

	"darkmaster/internal/frame"
)

// AcquiredAt parses DATE-OBS as ISO-8601 UTC.
func (f *File) AcquiredAt() (time.Time, bool) {
	c, ok := lookup(f.cards, "DATE-OBS")
	if !ok {
		return time.Time{}, false
	}
	raw, ok := c.stringValue()
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// CameraID reads INSTRUME, falling back to CAMERA.
func (f *File) CameraID() (string, bool) {
	c, ok := lookupAny(f.cards, "INSTRUME", "CAMERA")
	if !ok {
		return "", false
	}
	v, ok := c.stringValue()
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// Binning reads XBINNING/YBINNING, falling back to a "HxV" BINNING string.
func (f *File) Binning() (frame.Binning, bool) {
	xc, xok := lookup(f.cards, "XBINNING")
	yc, yok := lookup(f.cards, "YBINNING")
	if xok && yok {
		x, xok2 := xc.intValue()
		y, yok2 := yc.intValue()
		if xok2 && yok2 {
			return frame.Binning{H: x, V: y}, true
		}
	}
	if c, ok := lookup(f.cards, "BINNING"); ok {
		if raw, ok := c.stringValue(); ok {
			parts := strings.SplitN(strings.ToLower(raw), "x", 2)
			if len(parts) == 2 {
				h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
				v, errV := strconv.Atoi(strings.TrimSpace(parts[1]))
				if errH == nil && errV == nil {
					return frame.Binning{H: h, V: v}, true
				}
			}
		}
	}
	return frame.Binning{}, false
}

// Gain reads GAIN.
func (f *File) Gain() (int, bool) {
	c, ok := lookup(f.cards, "GAIN")
	if !ok {
		return 0, false
	}
	return c.intValue()
}

// ExposureS reads EXPTIME.
func (f *File) ExposureS() (float64, bool) {
	c, ok := lookup(f.cards, "EXPTIME")
	if !ok {
		return 0, false
	}
	return c.floatValue()
}

// TemperatureC reads the sensor-temperature keyword family.
func (f *File) TemperatureC() (float64, bool) {
	c, ok := lookupAny(f.cards, "CCD-TEMP", "CCDTEMP", "SET-TEMP", "CCD_TEMP", "SENSOR-TEMP", "TEMP")
	if !ok {
		return 0, false
	}
	return c.floatValue()
}

// IsCFA reads the CFA/BAYERPAT presence flag.
func (f *File) IsCFA() (bool, bool) {
	if c, ok := lookup(f.cards, "CFA"); ok {
		return c.boolValue()
	}
	if c, ok := lookup(f.cards, "BAYERPAT"); ok {
		if v, ok := c.stringValue(); ok {
			return strings.TrimSpace(v) != "", true
		}
	}
	return false, false
}

// KindHint reads IMAGETYP and maps it onto frame.Kind.
func (f *File) KindHint() (frame.Kind, bool) {
	c, ok := lookup(f.cards, "IMAGETYP")
	if !ok {
		return "", false
	}
	v, ok := c.stringValue()
	if !ok {
		return "", false
	}
	lower := strings.ToLower(strings.TrimSpace(v))
	switch {
	case strings.Contains(lower, "bias"):
		return frame.KindBias, true
	case strings.Contains(lower, "dark"):
		return frame.KindDark, true
	case lower == "":
		return "", false
	default:
		return frame.KindOther, true
	}
}

// NFramesUsed reads NDARKS, the frame count a master was stacked from.
func (f *File) NFramesUsed() (int, bool) {
	c, ok := lookup(f.cards, "NDARKS")
	if !ok {
		return 0, false
	}
	return c.intValue()
}

// StackSignature reads STACKCMD, the canonical stacking-parameter encoding.
func (f *File) StackSignature() (string, bool) {
	c, ok := lookup(f.cards, "STACKCMD")
	if !ok {
		return "", false
	}
	return c.stringValue()
}
