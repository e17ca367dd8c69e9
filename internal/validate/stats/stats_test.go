package stats

import (
	"math"
	"testing"
)

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSelectFindsKthSmallest(t *testing.T) {
	data := []float64{5, 3, 8, 1, 9, 2}
	if got := Select(append([]float64{}, data...), 0); got != 1 {
		t.Errorf("Select k=0 = %v, want 1", got)
	}
	if got := Select(append([]float64{}, data...), len(data)-1); got != 9 {
		t.Errorf("Select k=last = %v, want 9", got)
	}
	if got := Select(append([]float64{}, data...), 2); got != 3 {
		t.Errorf("Select k=2 = %v, want 3", got)
	}
}

func TestMedianOddAndEvenCounts(t *testing.T) {
	if got := Median([]float64{3, 1, 2}); got != 2 {
		t.Errorf("Median odd = %v, want 2", got)
	}
	if got := Median([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("Median even = %v, want 2.5", got)
	}
}

func TestMADFromKnownMedian(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5}
	median := Median(append([]float64{}, data...))
	if median != 3 {
		t.Fatalf("median = %v, want 3", median)
	}
	mad := MAD(data, median)
	if mad != 1 {
		t.Errorf("MAD = %v, want 1", mad)
	}
}

func TestPercentileNearestRank(t *testing.T) {
	data := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	p10 := Percentile(append([]float64{}, data...), 0.10)
	p90 := Percentile(append([]float64{}, data...), 0.90)
	if p10 != 20 {
		t.Errorf("p10 = %v, want 20", p10)
	}
	if p90 != 90 {
		t.Errorf("p90 = %v, want 90", p90)
	}
}

func TestAccumulatorMeanAndStd(t *testing.T) {
	var a Accumulator
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		a.Add(v)
	}
	if !approxEqual(a.Mean(), 5.0, 1e-9) {
		t.Errorf("Mean = %v, want 5.0", a.Mean())
	}
	if !approxEqual(a.Std(), 2.0, 1e-9) {
		t.Errorf("Std = %v, want 2.0", a.Std())
	}
	if a.N() != 8 {
		t.Errorf("N = %d, want 8", a.N())
	}
}

func TestAccumulatorEmpty(t *testing.T) {
	var a Accumulator
	if a.Mean() != 0 || a.Std() != 0 || a.N() != 0 {
		t.Errorf("empty accumulator should report zeros, got mean=%v std=%v n=%d", a.Mean(), a.Std(), a.N())
	}
}
