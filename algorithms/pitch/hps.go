package pitch

import (
	"math"

	"github.com/tonegrid/notescan/algorithms/common"
	"github.com/tonegrid/notescan/algorithms/spectral"
	"github.com/tonegrid/notescan/algorithms/windowing"
)

// HPS search band in Hz, fixed independently of the configured frequency
// range used by the autocorrelation path.
const (
	hpsMinSearchFreq = 80.0
	hpsMaxSearchFreq = 2000.0
)

// hpsRawSupportRatio is the minimum raw-spectrum magnitude a winning product
// bin must carry, relative to the strongest raw bin in the search band.
const hpsRawSupportRatio = 0.1

// HPSEstimator estimates the fundamental frequency using the Harmonic
// Product Spectrum: the magnitude spectrum is decimated by each harmonic
// index and multiplied into an accumulator, which reinforces the fundamental
// over its harmonics.
//
// Reference: Schroeder, M.R. (1968). "Period histogram and product spectrum"
type HPSEstimator struct {
	sampleRate   int
	numHarmonics int

	fft *spectral.FFT
}

// NewHPSEstimator creates an HPS estimator. numHarmonics includes the
// fundamental; values below 2 fall back to 5.
func NewHPSEstimator(sampleRate, numHarmonics int) *HPSEstimator {
	if numHarmonics < 2 {
		numHarmonics = 5
	}
	return &HPSEstimator{
		sampleRate:   sampleRate,
		numHarmonics: numHarmonics,
		fft:          spectral.NewFFT(),
	}
}

// Estimate returns (frequency, confidence) for one audio segment.
//
// Confidence is a prominence ratio: the winning bin's value over the mean of
// its +/-10 bin neighborhood, scaled by 1/10 and clamped to [0, 1]. The ratio
// is taken from whichever spectrum elected the bin, the product accumulator
// or the raw magnitude spectrum. Flat or all-zero spectra yield (0, 0).
func (he *HPSEstimator) Estimate(segment []float64) (float64, float64) {
	if len(segment) < 4 {
		return 0.0, 0.0
	}

	windowed := windowing.NewHann(len(segment), true).Apply(segment)
	magnitude := spectral.MagnitudeSpectrum(he.fft, windowed)

	hps := make([]float64, len(magnitude))
	copy(hps, magnitude)

	// Higher harmonics decimate to shorter arrays and only multiply into the
	// overlapping low-frequency prefix, which is where they stay in-band
	for h := 2; h <= he.numHarmonics; h++ {
		decimatedLen := (len(magnitude) + h - 1) / h
		for i := 0; i < decimatedLen; i++ {
			hps[i] *= magnitude[i*h]
		}
	}

	minBin, maxBin := he.searchBins(len(segment), len(hps))
	if minBin >= maxBin {
		return 0.0, 0.0
	}

	peakBin, peakVal := bandArgmax(hps, minBin, maxBin)
	if peakVal <= 0 {
		return 0.0, 0.0
	}

	// The product spectrum rewards sub-octave bins of a sparse tone: a bin at
	// f/k inherits the one large magnitude factor at f and wins with near-zero
	// energy of its own. A winner without raw-spectrum support yields to the
	// strongest raw bin in the band.
	scores := hps
	rawBin, rawVal := bandArgmax(magnitude, minBin, maxBin)
	if magnitude[peakBin] < hpsRawSupportRatio*rawVal {
		peakBin = rawBin
		scores = magnitude
	}

	frequency := spectral.BinFrequency(peakBin, len(segment), he.sampleRate)
	confidence := he.peakProminence(scores, peakBin)

	if !common.IsFinite(frequency) || !common.IsFinite(confidence) {
		return 0.0, 0.0
	}

	return frequency, confidence
}

// bandArgmax returns the index and value of the largest element in
// values[minBin:maxBin]
func bandArgmax(values []float64, minBin, maxBin int) (int, float64) {
	bestBin := minBin
	bestVal := values[minBin]
	for i := minBin + 1; i < maxBin; i++ {
		if values[i] > bestVal {
			bestVal = values[i]
			bestBin = i
		}
	}
	return bestBin, bestVal
}

// searchBins maps the fixed search band to a half-open bin range [min, max)
func (he *HPSEstimator) searchBins(signalLen, numBins int) (int, int) {
	freqResolution := float64(he.sampleRate) / float64(signalLen)
	if freqResolution <= 0 {
		return 0, 0
	}

	minBin := int(math.Ceil(hpsMinSearchFreq / freqResolution))
	maxBin := int(math.Floor(hpsMaxSearchFreq / freqResolution))

	if minBin < 0 {
		minBin = 0
	}
	if maxBin > numBins-1 {
		maxBin = numBins - 1
	}

	return minBin, maxBin
}

// peakProminence measures how much the peak stands out over its +/-10 bin
// neighborhood. Interior peaks only; edge bins get zero confidence.
func (he *HPSEstimator) peakProminence(hps []float64, peakBin int) float64 {
	if peakBin <= 0 || peakBin >= len(hps)-1 {
		return 0.0
	}

	lo := peakBin - 10
	if lo < 0 {
		lo = 0
	}
	hi := peakBin + 10
	if hi > len(hps) {
		hi = len(hps)
	}

	neighborhood := common.Mean(hps[lo:hi])
	if neighborhood <= 0 {
		return 0.0
	}

	prominence := hps[peakBin] / neighborhood
	return common.Clamp(prominence/10.0, 0.0, 1.0)
}
