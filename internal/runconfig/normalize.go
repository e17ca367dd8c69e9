package runconfig

import (
	"fmt"
	"strings"
)

func (p *Params) normalize() error {
	if err := p.normalizePaths(); err != nil {
		return err
	}
	p.normalizeScan()
	p.normalizeGrouping()
	p.normalizeValidation()
	p.normalizeStacking()
	p.normalizeEngine()
	p.normalizeLogging()
	return nil
}

func (p *Params) normalizePaths() error {
	var err error
	if p.Paths.StagingDir, err = expandPath(p.Paths.StagingDir); err != nil {
		return fmt.Errorf("paths.staging_dir: %w", err)
	}
	if p.Paths.LibraryDir, err = expandPath(p.Paths.LibraryDir); err != nil {
		return fmt.Errorf("paths.library_dir: %w", err)
	}
	if strings.TrimSpace(p.Paths.LogDir) == "" {
		p.Paths.LogDir = defaultLogDir
	}
	if p.Paths.LogDir, err = expandPath(p.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(p.Paths.HistoryDB) == "" {
		p.Paths.HistoryDB = defaultHistoryPath
	}
	if p.Paths.HistoryDB, err = expandPath(p.Paths.HistoryDB); err != nil {
		return fmt.Errorf("paths.history_db: %w", err)
	}

	roots := make([]string, 0, len(p.Scan.InputRoots))
	for _, root := range p.Scan.InputRoots {
		expanded, err := expandPath(root)
		if err != nil {
			return fmt.Errorf("scan.input_roots: %w", err)
		}
		roots = append(roots, expanded)
	}
	p.Scan.InputRoots = roots
	return nil
}

func (p *Params) normalizeScan() {
	if p.Scan.MaxAgeDays <= 0 {
		p.Scan.MaxAgeDays = defaultMaxAgeDays
	}
}

func (p *Params) normalizeGrouping() {
	if p.Grouping.TemperaturePrecision <= 0 {
		p.Grouping.TemperaturePrecision = defaultTemperaturePrecision
	}
}

func (p *Params) normalizeValidation() {
	zero := ValidationThresholds{}
	if p.Validation == zero {
		p.Validation = Default().Validation
	}
}

func (p *Params) normalizeStacking() {
	p.Stacking.Method = strings.ToLower(strings.TrimSpace(p.Stacking.Method))
	if p.Stacking.Method == "" {
		p.Stacking.Method = "average"
	}
	p.Stacking.RejectionMethod = strings.ToLower(strings.TrimSpace(p.Stacking.RejectionMethod))
	if p.Stacking.RejectionMethod == "" {
		p.Stacking.RejectionMethod = "winsorized_sigma"
	}
	if p.Stacking.RejectionParam1 == 0 {
		p.Stacking.RejectionParam1 = 3.0
	}
	if p.Stacking.RejectionParam2 == 0 {
		p.Stacking.RejectionParam2 = 3.0
	}
	p.Stacking.OutputNorm = strings.ToLower(strings.TrimSpace(p.Stacking.OutputNorm))
	if p.Stacking.OutputNorm == "" {
		p.Stacking.OutputNorm = "noscale"
	}
}

func (p *Params) normalizeEngine() {
	p.Engine.Mode = strings.ToLower(strings.TrimSpace(p.Engine.Mode))
	if p.Engine.Mode == "" {
		p.Engine.Mode = "native"
	}
	p.Engine.Binary = strings.TrimSpace(p.Engine.Binary)
	if p.Engine.Binary == "" {
		p.Engine.Binary = defaultEngineBinary
	}
	p.Engine.ContainerRunner = strings.TrimSpace(p.Engine.ContainerRunner)
	p.Engine.ContainerEngine = strings.TrimSpace(p.Engine.ContainerEngine)
	p.Engine.ContainerPackageID = strings.TrimSpace(p.Engine.ContainerPackageID)
}

func (p *Params) normalizeLogging() {
	p.Logging.Format = strings.ToLower(strings.TrimSpace(p.Logging.Format))
	if p.Logging.Format == "" {
		p.Logging.Format = defaultLogFormat
	}
	p.Logging.Level = strings.ToLower(strings.TrimSpace(p.Logging.Level))
	if p.Logging.Level == "" {
		p.Logging.Level = defaultLogLevel
	}
}
