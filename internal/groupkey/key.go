package groupkey

import "darkmaster/internal/frame"

// Make builds the equivalence key for a frame's acquisition parameters.
// temperatureC is quantized to tprec before being folded into the key, so
// two frames whose raw temperatures differ by less than tprec but land in
// the same bucket are considered equivalent.
func Make(cameraID string, binning frame.Binning, gain int, exposureS, temperatureC, tprec float64, isCFA bool) frame.GroupKey {
	return frame.GroupKey{
		CameraID:     cameraID,
		Binning:      binning,
		Gain:         gain,
		ExposureS:    exposureS,
		TemperatureC: Quantize(temperatureC, tprec),
		IsCFA:        isCFA,
	}
}

// Of derives a frame's group key directly from its already-populated
// fields, quantizing its temperature to tprec.
func Of(f frame.FrameInfo, tprec float64) frame.GroupKey {
	return Make(f.CameraID, f.Binning, f.Gain, f.ExposureS, f.TemperatureC, tprec, f.IsCFA)
}
