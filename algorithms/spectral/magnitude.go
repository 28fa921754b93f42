package spectral

import (
	"math"
)

// MagnitudeSpectrum computes the single-sided magnitude spectrum of a real
// signal: |FFT(x)| over the non-negative frequency bins (len(x)/2 + 1 bins).
func MagnitudeSpectrum(f *FFT, signal []float64) []float64 {
	if len(signal) == 0 {
		return []float64{}
	}

	spectrum := f.Compute(signal)

	bins := len(signal)/2 + 1
	magnitude := make([]float64, bins)
	for i := range magnitude {
		magnitude[i] = math.Sqrt(real(spectrum[i])*real(spectrum[i]) + imag(spectrum[i])*imag(spectrum[i]))
	}

	return magnitude
}

// BinFrequency returns the center frequency of an FFT bin for the given
// transform size and sample rate.
func BinFrequency(bin, fftSize, sampleRate int) float64 {
	if fftSize <= 0 {
		return 0.0
	}
	return float64(bin) * float64(sampleRate) / float64(fftSize)
}

// FrequencyBin returns the bin index whose center frequency is nearest to
// freq, clamped to the valid single-sided range for the given transform size.
func FrequencyBin(freq float64, fftSize, sampleRate int) int {
	if sampleRate <= 0 || fftSize <= 0 {
		return 0
	}

	bin := int(math.Round(freq * float64(fftSize) / float64(sampleRate)))
	if bin < 0 {
		bin = 0
	}
	if maxBin := fftSize / 2; bin > maxBin {
		bin = maxBin
	}
	return bin
}
