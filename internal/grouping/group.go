package grouping

import (
	"sort"

	"darkmaster/internal/frame"
	"darkmaster/internal/groupkey"
)

// Partition splits frames into Groups keyed by their quantized acquisition
// parameters. Within each group, frames are sorted by acquired_at
// descending, ties broken by path so the ordering is deterministic.
func Partition(frames []frame.FrameInfo, tprec float64) []frame.Group {
	byKey := make(map[frame.GroupKey][]frame.FrameInfo)
	var order []frame.GroupKey

	for _, f := range frames {
		key := groupkey.Of(f, tprec)
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], f)
	}

	groups := make([]frame.Group, 0, len(order))
	for _, key := range order {
		members := byKey[key]
		sort.SliceStable(members, func(i, j int) bool {
			if !members[i].AcquiredAt.Equal(members[j].AcquiredAt) {
				return members[i].AcquiredAt.After(members[j].AcquiredAt)
			}
			return members[i].Path < members[j].Path
		})
		groups = append(groups, frame.Group{Key: key, Frames: members})
	}
	return groups
}
