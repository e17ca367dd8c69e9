package stackengine

import "strconv"

// Method selects how the accepted frames are combined.
type Method string

const (
	MethodAverage Method = "average"
	MethodMedian  Method = "median"
)

// RejectionMethod selects the per-pixel outlier rejection applied before
// combining, when Method is MethodAverage. It is ignored for MethodMedian.
type RejectionMethod string

const (
	RejectionNone            RejectionMethod = "none"
	RejectionSigma           RejectionMethod = "sigma"
	RejectionWinsorizedSigma RejectionMethod = "winsorized_sigma"
	RejectionMinMax          RejectionMethod = "minmax"
	RejectionPercentile      RejectionMethod = "percentile"
)

// OutputNorm selects the normalisation applied to the combined result.
type OutputNorm string

const (
	NormNoscale   OutputNorm = "noscale"
	NormAddscale  OutputNorm = "addscale"
	NormRejection OutputNorm = "rejection"
)

// Params is the full set of stacking parameters a run is configured with.
// The same Params must always render the same Signature, since UpdatePolicy
// compares signatures across runs to decide whether existing masters are
// still current.
type Params struct {
	StackMethod     Method
	RejectionMethod RejectionMethod
	RejectionParam1 float64
	RejectionParam2 float64
	OutputNorm      OutputNorm
}

// DefaultParams reproduces the defaults every behaviourally-compatible
// implementation must fall back to when a parameter is left unspecified.
func DefaultParams() Params {
	return Params{
		StackMethod:     MethodAverage,
		RejectionMethod: RejectionWinsorizedSigma,
		RejectionParam1: 3.0,
		RejectionParam2: 3.0,
		OutputNorm:      NormNoscale,
	}
}

// Signature renders p as a stable, fixed-precision string. It is the
// stack_signature UpdatePolicy compares across runs: a same-parameters,
// different-run invocation must always render the identical string, so
// float fields use a fixed decimal width rather than a shortest-round-trip
// format whose output can vary across platforms or versions.
func (p Params) Signature() string {
	return string(p.StackMethod) + "|" +
		string(p.RejectionMethod) + "|" +
		formatFixed(p.RejectionParam1) + "|" +
		formatFixed(p.RejectionParam2) + "|" +
		string(p.OutputNorm)
}

func formatFixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
