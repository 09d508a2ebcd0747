package calculator

import "math"

// Samples is the number of points on every curve.
const Samples = 100

// curveFunc maps elapsed minutes to nanometres.
type curveFunc func(t float64) float64

// dealGrove is the closed-form oxide thickness for oxidation starting from
// bare silicon. a and b are in μm and μm²/min, the result in nm.
func dealGrove(a, b float64) curveFunc {
	return func(t float64) float64 {
		return (-a + math.Sqrt(a*a+4*b*t)) / 2 * 1000
	}
}

// saturation approaches bound with rate constant k.
func saturation(bound, k float64) curveFunc {
	return func(t float64) float64 {
		return bound * (1 - math.Exp(-k*t))
	}
}

func linear(rate float64) curveFunc {
	return func(t float64) float64 {
		return rate * t
	}
}

// temperatureRate scales a per-100°C coefficient to nm/min.
func temperatureRate(coefficient, temperature float64) float64 {
	return coefficient * (temperature / 100)
}

// timeGrid returns n evenly spaced points over [0, duration], the last one
// exactly at duration.
func timeGrid(duration float64, n int) []float64 {
	grid := make([]float64, n)
	for i := 0; i < n-1; i++ {
		grid[i] = duration * float64(i) / float64(n-1)
	}
	grid[n-1] = duration
	return grid
}
