package common

// ParabolicPeak refines an integer peak index to sub-sample precision by
// fitting a parabola through the three values centered on the peak.
//
// Returns the refined (possibly fractional) index. The refinement is accepted
// only when the local curvature indicates a true maximum (a < 0); at the array
// edges or on flat/convex neighborhoods the integer index is returned as-is.
func ParabolicPeak(data []float64, peakIdx int) float64 {
	if peakIdx <= 0 || peakIdx >= len(data)-1 {
		return float64(peakIdx)
	}

	y1 := data[peakIdx-1]
	y2 := data[peakIdx]
	y3 := data[peakIdx+1]

	a := (y1 - 2*y2 + y3) / 2
	b := (y3 - y1) / 2

	if a >= 0 {
		return float64(peakIdx)
	}

	return float64(peakIdx) - b/(2*a)
}
