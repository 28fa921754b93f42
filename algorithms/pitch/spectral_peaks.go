package pitch

import (
	"github.com/tonegrid/notescan/algorithms/common"
	"github.com/tonegrid/notescan/algorithms/spectral"
	"github.com/tonegrid/notescan/algorithms/windowing"
)

// SpectralPeakTracker is the fast detection path: per analysis frame it takes
// the strongest in-band spectral peak as the frame's pitch, then reduces the
// frame track to a single estimate with the median (robust against the odd
// frame locking onto a harmonic).
type SpectralPeakTracker struct {
	sampleRate int
	minFreq    float64
	maxFreq    float64
	frameSize  int
	hopSize    int

	fft *spectral.FFT
}

// NewSpectralPeakTracker creates a tracker with 2048-sample frames and a
// 512-sample hop. Segments shorter than a frame are analyzed as one frame.
func NewSpectralPeakTracker(sampleRate int, minFreq, maxFreq float64) *SpectralPeakTracker {
	return &SpectralPeakTracker{
		sampleRate: sampleRate,
		minFreq:    minFreq,
		maxFreq:    maxFreq,
		frameSize:  2048,
		hopSize:    512,
		fft:        spectral.NewFFT(),
	}
}

// Estimate returns (frequency, confidence) for one audio segment.
//
// Frequency is the median of per-frame peak frequencies; confidence is the
// mean of per-frame peak magnitudes normalized by the strongest peak across
// all frames. Returns (0, 0) when no frame has an in-band peak.
func (st *SpectralPeakTracker) Estimate(segment []float64) (float64, float64) {
	if len(segment) < 4 {
		return 0.0, 0.0
	}

	frameSize := st.frameSize
	hopSize := st.hopSize
	if len(segment) < frameSize {
		frameSize = len(segment)
		hopSize = frameSize
	}

	window := windowing.NewHann(frameSize, true)

	var frequencies []float64
	var magnitudes []float64

	for start := 0; start+frameSize <= len(segment); start += hopSize {
		frame := window.Apply(segment[start : start+frameSize])
		magnitude := spectral.MagnitudeSpectrum(st.fft, frame)

		bin, val := st.strongestInBandBin(magnitude, frameSize)
		if bin < 0 {
			continue
		}

		refined := common.ParabolicPeak(magnitude, bin)
		freq := refined * float64(st.sampleRate) / float64(frameSize)

		if freq < st.minFreq || freq > st.maxFreq || !common.IsFinite(freq) {
			continue
		}

		frequencies = append(frequencies, freq)
		magnitudes = append(magnitudes, val)
	}

	if len(frequencies) == 0 {
		return 0.0, 0.0
	}

	// Normalize per-frame peak magnitudes by the strongest one
	maxMag := magnitudes[0]
	for _, m := range magnitudes[1:] {
		if m > maxMag {
			maxMag = m
		}
	}
	if maxMag <= 0 {
		return 0.0, 0.0
	}

	confidences := make([]float64, len(magnitudes))
	for i, m := range magnitudes {
		confidences[i] = m / maxMag
	}

	return common.Median(frequencies), common.Clamp(common.Mean(confidences), 0.0, 1.0)
}

// strongestInBandBin finds the loudest bin whose center frequency lies in the
// configured range. Returns (-1, 0) when the band is empty.
func (st *SpectralPeakTracker) strongestInBandBin(magnitude []float64, frameSize int) (int, float64) {
	minBin := spectral.FrequencyBin(st.minFreq, frameSize, st.sampleRate)
	maxBin := spectral.FrequencyBin(st.maxFreq, frameSize, st.sampleRate)
	if maxBin > len(magnitude)-1 {
		maxBin = len(magnitude) - 1
	}

	bestBin := -1
	bestVal := 0.0
	for i := minBin; i <= maxBin; i++ {
		if magnitude[i] > bestVal {
			bestVal = magnitude[i]
			bestBin = i
		}
	}

	return bestBin, bestVal
}
