package runconfig

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directories the run reads and writes.
type Paths struct {
	StagingDir string `toml:"staging_dir"`
	LibraryDir string `toml:"library_dir"`
	LogDir     string `toml:"log_dir"`
	HistoryDB  string `toml:"history_db"`
}

// Scan configures the Scanner's age window.
type Scan struct {
	InputRoots []string `toml:"input_roots"`
	MaxAgeDays int      `toml:"max_age_days"`
}

// Grouping configures the Grouper's temperature quantisation.
type Grouping struct {
	TemperaturePrecision float64 `toml:"temperature_precision"`
}

// UpdatePolicy configures the minimum-frames-to-build threshold and the
// force-rebuild override.
type UpdatePolicy struct {
	MinDarksThreshold int  `toml:"min_darks_threshold"`
	Force             bool `toml:"force"`
}

// ValidationThresholds configures the Validator's four-test battery.
type ValidationThresholds struct {
	MedianCeiling     float64 `toml:"median_ceiling"`
	HotPixelFraction  float64 `toml:"hot_pixel_fraction"`
	RelativeNoise     float64 `toml:"relative_noise"`
	CentralDispersion float64 `toml:"central_dispersion"`
}

// Stacking configures the StackRunner's combine parameters.
type Stacking struct {
	Method          string  `toml:"method"`
	RejectionMethod string  `toml:"rejection_method"`
	RejectionParam1 float64 `toml:"rejection_param1"`
	RejectionParam2 float64 `toml:"rejection_param2"`
	OutputNorm      string  `toml:"output_norm"`
}

// Engine configures how the external stacking engine is invoked.
type Engine struct {
	Mode               string `toml:"mode"`
	Binary             string `toml:"binary"`
	ContainerRunner    string `toml:"container_runner"`
	ContainerEngine    string `toml:"container_engine"`
	ContainerPackageID string `toml:"container_package_id"`
	DryRun             bool   `toml:"dry_run"`
}

// Logging configures the structured logger.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Params is the immutable parameter record every pipeline component is
// constructed from. A run is pure given Params plus the input frames on
// disk: no component reads flags, environment variables, or a config file
// directly.
type Params struct {
	Paths        Paths                `toml:"paths"`
	Scan         Scan                 `toml:"scan"`
	Grouping     Grouping             `toml:"grouping"`
	UpdatePolicy UpdatePolicy         `toml:"update_policy"`
	Validation   ValidationThresholds `toml:"validation"`
	Stacking     Stacking             `toml:"stacking"`
	Engine       Engine               `toml:"engine"`
	Logging      Logging              `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/darkmaster/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// Params has all path fields expanded and normalized. An empty path
// triggers the default-location search; a file that does not exist at
// that location is not an error, Load simply returns the defaults.
func Load(path string) (Params, string, bool, error) {
	p := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return Params{}, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return Params{}, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&p); err != nil {
			return Params{}, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := p.normalize(); err != nil {
		return Params{}, "", false, err
	}
	if err := p.Validate(); err != nil {
		return Params{}, "", false, err
	}

	return p, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/darkmaster/config.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	return defaultPath, false, nil
}

// CreateSample writes the embedded sample configuration file to path.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other
// packages (the CLI layer, when resolving the config init --path flag).
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
