package enrich

import "math"

const (
	// Eps keeps assays away from 0 and 1 where the value function diverges.
	Eps = 1e-9

	// MaxIterations is the fixed budget shared by bisection and golden-section search.
	MaxIterations = 80

	// RelTolerance is the relative SWU error at which bisection stops early.
	RelTolerance = 1e-6

	// MaxProduct bounds the doubling phase of the target-SWU search.
	MaxProduct = 1e7
)

// Phi is the golden ratio.
var Phi = (1 + math.Sqrt(5)) / 2

// ValueFunction returns V(x) = (1-2x)·ln((1-x)/x). x is clamped to
// [Eps, 1-Eps] so the result is always finite.
func ValueFunction(x float64) float64 {
	x = clamp(x, Eps, 1-Eps)
	return (1 - 2*x) * math.Log((1-x)/x)
}

func clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return 0.5
	}
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// positive reports whether v is a strictly positive finite number.
func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
