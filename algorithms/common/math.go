package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical and signal helpers shared across algorithms, built on gonum

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// PopVariance calculates the population variance (divide by N, not N-1)
func PopVariance(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	mean := stat.Mean(data, nil)
	variance := 0.0
	for _, v := range data {
		diff := v - mean
		variance += diff * diff
	}
	return variance / float64(len(data))
}

// PopStdDev calculates the population standard deviation
func PopStdDev(data []float64) float64 {
	return math.Sqrt(PopVariance(data))
}

// RMS calculates root mean square amplitude
func RMS(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sumSquares := 0.0
	for _, val := range data {
		sumSquares += val * val
	}

	return math.Sqrt(sumSquares / float64(len(data)))
}

// Median calculates the median of a slice without mutating it
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2.0
	}
	return sorted[n/2]
}

// RemoveDC subtracts the mean from the signal in place
func RemoveDC(signal []float64) {
	if len(signal) == 0 {
		return
	}

	mean := stat.Mean(signal, nil)
	for i := range signal {
		signal[i] -= mean
	}
}

// PeakNormalize scales the signal in place so max |x| == 1.
// An all-zero signal is left unchanged.
func PeakNormalize(signal []float64) {
	if len(signal) == 0 {
		return
	}

	maxAbs := math.Max(math.Abs(floats.Max(signal)), math.Abs(floats.Min(signal)))
	if maxAbs <= 0 {
		return
	}

	for i := range signal {
		signal[i] /= maxAbs
	}
}

// Clamp constrains a value to a range
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// Round rounds a value to the given number of decimal places
func Round(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(value*scale) / scale
}

// IsFinite reports whether v is neither NaN nor Inf
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
