package stats

import "math"

// Median returns the median of data via selection rather than a full sort.
// data is reordered; pass a copy if the original order must be preserved.
func Median(data []float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	mid := n / 2
	upper := Select(data, mid)
	if n%2 == 1 {
		return upper
	}
	// Select(data, mid) partitions data so data[:mid] holds every value not
	// greater than the upper median; its max is the lower median.
	lower := Select(data[:mid], mid-1)
	return (lower + upper) / 2
}

// MAD returns the median absolute deviation of data from median. data is
// consumed by an internal copy; the caller's slice is not reordered.
func MAD(data []float64, median float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	devs := make([]float64, n)
	for i, v := range data {
		devs[i] = math.Abs(v - median)
	}
	return Median(devs)
}

// Percentile returns the nearest-rank order statistic for p in [0, 1]
// (e.g. Percentile(data, 0.10) is p10). data is reordered; pass a copy if
// the original order must be preserved.
func Percentile(data []float64, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0
	}
	idx := int(math.Round(p * float64(n-1)))
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return Select(data, idx)
}
