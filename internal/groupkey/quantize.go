package groupkey

import "math"

// Quantize rounds x to the nearest multiple of q, using round-half-to-even
// on the x/q ratio so values that land exactly on a half bucket (e.g. a
// temperature exactly between two tprec buckets) don't drift consistently
// toward +infinity across a long run.
func Quantize(x, q float64) float64 {
	if q == 0 {
		return x
	}
	return math.RoundToEven(x/q) * q
}
