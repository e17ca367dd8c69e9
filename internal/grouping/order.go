package grouping

import (
	"sort"

	"darkmaster/internal/frame"
)

// SortByKey orders groups lexicographically by their key fields, so a run
// processes groups in the same order every time regardless of the
// unspecified order Scanner emitted their frames in.
func SortByKey(groups []frame.Group) {
	sort.SliceStable(groups, func(i, j int) bool {
		return lessKey(groups[i].Key, groups[j].Key)
	})
}

func lessKey(a, b frame.GroupKey) bool {
	if a.CameraID != b.CameraID {
		return a.CameraID < b.CameraID
	}
	if a.Binning.H != b.Binning.H {
		return a.Binning.H < b.Binning.H
	}
	if a.Binning.V != b.Binning.V {
		return a.Binning.V < b.Binning.V
	}
	if a.Gain != b.Gain {
		return a.Gain < b.Gain
	}
	if a.ExposureS != b.ExposureS {
		return a.ExposureS < b.ExposureS
	}
	if a.TemperatureC != b.TemperatureC {
		return a.TemperatureC < b.TemperatureC
	}
	return !a.IsCFA && b.IsCFA
}
