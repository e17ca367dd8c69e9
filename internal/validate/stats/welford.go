package stats

import "math"

// Accumulator computes mean and (population) standard deviation in a
// single numerically stable pass using Welford's algorithm, avoiding the
// catastrophic cancellation a naive sum-of-squares formula suffers on
// large pixel values.
type Accumulator struct {
	n    int
	mean float64
	m2   float64
}

// Add folds x into the running mean/variance.
func (a *Accumulator) Add(x float64) {
	a.n++
	delta := x - a.mean
	a.mean += delta / float64(a.n)
	a.m2 += delta * (x - a.mean)
}

// N returns the number of values folded in so far.
func (a *Accumulator) N() int { return a.n }

// Mean returns the running mean.
func (a *Accumulator) Mean() float64 { return a.mean }

// Variance returns the population variance (every pixel in the rectangle
// is the full population, not a sample of it, so no Bessel correction).
func (a *Accumulator) Variance() float64 {
	if a.n == 0 {
		return 0
	}
	return a.m2 / float64(a.n)
}

// Std returns the population standard deviation.
func (a *Accumulator) Std() float64 {
	return math.Sqrt(a.Variance())
}
