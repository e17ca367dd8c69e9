package groupkey

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"darkmaster/internal/frame"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

var stripAccents = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// sanitizeCameraID strips accents and collapses every run of non-alphanumeric
// characters to a single underscore, mirroring the original tool's camera
// name normalisation so libraries built by either implementation agree on
// master filenames for the same hardware.
func sanitizeCameraID(id string) string {
	ascii, _, err := transform.String(stripAccents, id)
	if err != nil {
		ascii = id
	}
	cleaned := nonAlnum.ReplaceAllString(ascii, "_")
	return strings.Trim(cleaned, "_")
}

// Filename derives the master's base filename (without directory) for key,
// in the form CAMERA_T<temp>_E<exptime>_G<gain>_B<HxV>[_CFA].fits. Exposure
// alone disambiguates dark masters (exposure_s > 0) from bias masters
// (exposure_s == 0); key carries no separate kind field to encode.
func Filename(key frame.GroupKey) string {
	camera := sanitizeCameraID(key.CameraID)
	if camera == "" {
		camera = "unknown"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s_T%s_E%s_G%d_B%dx%d",
		camera,
		formatNumber(key.TemperatureC),
		formatNumber(key.ExposureS),
		key.Gain,
		key.Binning.H,
		key.Binning.V,
	)
	if key.IsCFA {
		b.WriteString("_CFA")
	}
	b.WriteString(".fits")
	return b.String()
}

// StagingName derives a filesystem-safe, deterministic identifier for key
// suitable as a staging subdirectory name: the same characters as Filename,
// without the extension, so the same group always lands on the same
// staging path across runs.
func StagingName(key frame.GroupKey) string {
	return strings.TrimSuffix(Filename(key), ".fits")
}

// formatNumber renders a float with the minimum digits needed to round-trip
// it, using "m" in place of a leading minus sign so filenames stay free of
// characters shells and filesystems treat specially.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	return strings.ReplaceAll(s, "-", "m")
}
