package runconfig

import (
	"errors"
	"fmt"
)

// Validate ensures p is usable. It must run after normalize, which expands
// paths and fills in zero-value defaults.
func (p *Params) Validate() error {
	if err := p.validatePaths(); err != nil {
		return err
	}
	if err := p.validateGrouping(); err != nil {
		return err
	}
	if err := p.validateUpdatePolicy(); err != nil {
		return err
	}
	if err := p.validateValidation(); err != nil {
		return err
	}
	if err := p.validateStacking(); err != nil {
		return err
	}
	if err := p.validateEngine(); err != nil {
		return err
	}
	return nil
}

func (p *Params) validatePaths() error {
	if p.Paths.LibraryDir == "" {
		return errors.New("paths.library_dir must be set")
	}
	if p.Paths.StagingDir == "" {
		return errors.New("paths.staging_dir must be set")
	}
	return nil
}

func (p *Params) validateGrouping() error {
	if p.Grouping.TemperaturePrecision <= 0 {
		return errors.New("grouping.temperature_precision must be positive")
	}
	return nil
}

func (p *Params) validateUpdatePolicy() error {
	if p.UpdatePolicy.MinDarksThreshold < 0 {
		return errors.New("update_policy.min_darks_threshold must be >= 0")
	}
	return nil
}

func (p *Params) validateValidation() error {
	for name, v := range map[string]float64{
		"validation.median_ceiling":     p.Validation.MedianCeiling,
		"validation.hot_pixel_fraction": p.Validation.HotPixelFraction,
		"validation.relative_noise":     p.Validation.RelativeNoise,
		"validation.central_dispersion": p.Validation.CentralDispersion,
	} {
		if v <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

func (p *Params) validateStacking() error {
	switch p.Stacking.Method {
	case "average", "median":
	default:
		return fmt.Errorf("stacking.method %q is not one of average, median", p.Stacking.Method)
	}
	switch p.Stacking.RejectionMethod {
	case "none", "sigma", "winsorized_sigma", "minmax", "percentile":
	default:
		return fmt.Errorf("stacking.rejection_method %q is not recognised", p.Stacking.RejectionMethod)
	}
	switch p.Stacking.OutputNorm {
	case "noscale", "addscale", "rejection":
	default:
		return fmt.Errorf("stacking.output_norm %q is not recognised", p.Stacking.OutputNorm)
	}
	return nil
}

func (p *Params) validateEngine() error {
	switch p.Engine.Mode {
	case "native", "self-contained-bundle":
		if p.Engine.Binary == "" {
			return fmt.Errorf("engine.binary must be set for mode %q", p.Engine.Mode)
		}
	case "containerised":
		if p.Engine.ContainerRunner == "" || p.Engine.ContainerEngine == "" || p.Engine.ContainerPackageID == "" {
			return errors.New("engine.container_runner, engine.container_engine, and engine.container_package_id must all be set for containerised mode")
		}
	default:
		return fmt.Errorf("engine.mode %q is not one of native, containerised, self-contained-bundle", p.Engine.Mode)
	}
	return nil
}
