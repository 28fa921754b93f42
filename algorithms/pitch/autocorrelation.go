package pitch

import (
	"math"

	"github.com/tonegrid/notescan/algorithms/common"
	"github.com/tonegrid/notescan/algorithms/spectral"
	"github.com/tonegrid/notescan/algorithms/windowing"
)

// AutocorrelationEstimator estimates the fundamental frequency of a segment
// from the strongest peak of its normalized autocorrelation.
//
// References:
// - Rabiner, L.R. (1977). "On the use of autocorrelation analysis for pitch detection"
// - Boersma, P. (1993). "Accurate short-term analysis of the fundamental frequency"
type AutocorrelationEstimator struct {
	sampleRate int
	minFreq    float64
	maxFreq    float64

	fft *spectral.FFT
}

// NewAutocorrelationEstimator creates an estimator for the given sample rate
// and detectable frequency range.
func NewAutocorrelationEstimator(sampleRate int, minFreq, maxFreq float64) *AutocorrelationEstimator {
	return &AutocorrelationEstimator{
		sampleRate: sampleRate,
		minFreq:    minFreq,
		maxFreq:    maxFreq,
		fft:        spectral.NewFFT(),
	}
}

// Estimate returns (frequency, confidence) for one audio segment.
//
// The segment is Hann-windowed, DC-removed and peak-normalized before the
// autocorrelation is computed. Candidate periods are local maxima in the lag
// range [sampleRate/maxFreq, sampleRate/minFreq]; the lag with the largest
// correlation value wins (periodicity strength over minimum period), refined
// to sub-sample precision by parabolic interpolation. Returns (0, 0) when no
// candidate period exists.
func (ae *AutocorrelationEstimator) Estimate(segment []float64) (float64, float64) {
	if len(segment) < 3 {
		return 0.0, 0.0
	}

	windowed := windowing.NewHann(len(segment), true).Apply(segment)
	common.RemoveDC(windowed)
	common.PeakNormalize(windowed)

	corr := autocorrelate(ae.fft, windowed)

	minPeriod := int(float64(ae.sampleRate) / ae.maxFreq)
	maxPeriod := int(float64(ae.sampleRate) / ae.minFreq)
	if minPeriod < 1 {
		minPeriod = 1
	}

	// Collect local maxima in the valid period range, keeping the strongest.
	// Neighbor comparisons use the untouched autocorrelation, so a signal
	// whose period lies entirely outside the range produces no candidate
	// instead of a fake maximum at the range boundary. The zero-lag peak
	// cannot win: the autocorrelation decays away from lag zero.
	bestPeriod := -1
	bestCorr := 0.0

	upper := maxPeriod
	if upper > len(corr)-1 {
		upper = len(corr) - 1
	}

	for i := minPeriod; i < upper; i++ {
		if corr[i] > corr[i-1] && corr[i] > corr[i+1] && corr[i] > bestCorr {
			bestPeriod = i
			bestCorr = corr[i]
		}
	}

	if bestPeriod < 0 {
		return 0.0, 0.0
	}

	refined := common.ParabolicPeak(corr, bestPeriod)
	if refined <= 0 {
		return 0.0, 0.0
	}

	frequency := float64(ae.sampleRate) / refined
	confidence := math.Min(1.0, bestCorr)

	if !common.IsFinite(frequency) {
		return 0.0, 0.0
	}

	return frequency, confidence
}

// autocorrelate computes the non-negative-lag half of the linear
// autocorrelation via the Wiener-Khinchin theorem: zero-pad to 2N, take the
// power spectrum, and inverse transform. Equivalent to the full correlation
// of the signal with itself, without the O(N^2) time-domain cost.
func autocorrelate(f *spectral.FFT, signal []float64) []float64 {
	n := len(signal)
	if n == 0 {
		return []float64{}
	}

	padded := make([]float64, 2*n)
	copy(padded, signal)

	spectrum := f.Compute(padded)
	power := make([]complex128, len(spectrum))
	for i, c := range spectrum {
		power[i] = complex(real(c)*real(c)+imag(c)*imag(c), 0)
	}

	inverse := f.ComputeInverse(power)

	corr := make([]float64, n)
	for i := range corr {
		corr[i] = real(inverse[i])
	}

	return corr
}
