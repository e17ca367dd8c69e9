package groupkey

import "testing"

func TestQuantizeTemperatureBuckets(t *testing.T) {
	tests := []struct {
		name string
		x, q float64
		want float64
	}{
		{"rounds toward nearer bucket", -10.24, 0.5, -10.0},
		{"rounds toward nearer bucket past midpoint", -10.26, 0.5, -10.5},
		{"exact multiple is unchanged", -10.5, 0.5, -10.5},
		{"zero quantum disables quantization", 3.14159, 0, 3.14159},
		{"whole-degree quantum", 19.6, 1, 20},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Quantize(tc.x, tc.q)
			if got != tc.want {
				t.Errorf("Quantize(%v, %v) = %v, want %v", tc.x, tc.q, got, tc.want)
			}
		})
	}
}

func TestQuantizeBankersRoundingAtExactHalf(t *testing.T) {
	// 0.5 quantum at an x that lands the ratio exactly on a half-integer
	// should round to the nearest even integer, not always up.
	if got := Quantize(0.25, 0.5); got != 0.0 {
		t.Errorf("Quantize(0.25, 0.5) = %v, want 0 (round-half-to-even of ratio 0.5)", got)
	}
	if got := Quantize(0.75, 0.5); got != 1.0 {
		t.Errorf("Quantize(0.75, 0.5) = %v, want 1 (round-half-to-even of ratio 1.5)", got)
	}
}
