package common

import "math"

const (
	Pi08    = math.Pi * 0.8
	Pi15    = math.Pi * 1.5
	Pi22    = math.Pi * 2.2
	Pi35    = math.Pi * 3.5
	TwoPi   = math.Pi * 2
	OneHalf = 1.0 / 2.0 // 0.5
)

// Clamp returns v limited to [lo, hi]. NaN is mapped to lo.
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
