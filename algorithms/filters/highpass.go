package filters

import (
	"fmt"
	"math"
)

// HighpassFilter implements an odd-order Butterworth high-pass filter as a
// cascade of biquad sections plus one first-order section.
//
// Biquad sections use the cookbook formulas from Robert Bristow-Johnson's
// "Cookbook formulae for audio EQ biquad filter coefficients"
// Reference: https://webaudio.github.io/Audio-EQ-Cookbook/audio-eq-cookbook.html
// Section Q values are the Butterworth pole quality factors, so the cascade
// has the maximally flat Butterworth magnitude response.
type HighpassFilter struct {
	sampleRate int
	cutoffFreq float64
	order      int

	sections   []*biquadSection
	firstOrder *firstOrderSection
}

// biquadSection is a Direct Form II second-order high-pass stage
type biquadSection struct {
	b0, b1, b2 float64
	a1, a2     float64

	w1, w2 float64 // delay line
}

// firstOrderSection is a bilinear-transform first-order high-pass stage
type firstOrderSection struct {
	b0, b1 float64
	a1     float64

	x1, y1 float64
}

// NewHighpassFilter creates a Butterworth high-pass filter.
//
// Parameters:
//   - sampleRate: Sample rate in Hz
//   - cutoffFreq: Cutoff frequency in Hz (must lie below Nyquist)
//   - order: Filter order (1..8)
func NewHighpassFilter(sampleRate int, cutoffFreq float64, order int) (*HighpassFilter, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	if cutoffFreq <= 0 || cutoffFreq >= float64(sampleRate)/2 {
		return nil, fmt.Errorf("cutoff frequency must be between 0 and Nyquist frequency (%g Hz)", float64(sampleRate)/2)
	}
	if order < 1 || order > 8 {
		return nil, fmt.Errorf("filter order must be between 1 and 8, got %d", order)
	}

	hf := &HighpassFilter{
		sampleRate: sampleRate,
		cutoffFreq: cutoffFreq,
		order:      order,
	}

	hf.computeCoefficients()
	return hf, nil
}

// computeCoefficients builds the section cascade for the configured order.
// A Butterworth filter of order N factors into floor(N/2) second-order
// sections with Q = 1/(2*cos(theta_k)) for pole angles theta_k, plus one
// first-order section when N is odd.
func (hf *HighpassFilter) computeCoefficients() {
	numBiquads := hf.order / 2
	hf.sections = make([]*biquadSection, 0, numBiquads)

	for k := 0; k < numBiquads; k++ {
		// Pole angle measured from the negative real axis
		theta := math.Pi * float64(2*k+1) / float64(2*hf.order)
		q := 1.0 / (2.0 * math.Cos(theta))
		hf.sections = append(hf.sections, newBiquadHighpass(hf.sampleRate, hf.cutoffFreq, q))
	}

	if hf.order%2 == 1 {
		hf.firstOrder = newFirstOrderHighpass(hf.sampleRate, hf.cutoffFreq)
	} else {
		hf.firstOrder = nil
	}
}

// newBiquadHighpass computes cookbook high-pass coefficients for one section
func newBiquadHighpass(sampleRate int, cutoffFreq, q float64) *biquadSection {
	w0 := 2.0 * math.Pi * cutoffFreq / float64(sampleRate)

	// Prevent numerical issues at Nyquist
	if w0 >= math.Pi {
		w0 = math.Pi * 0.99
	}

	cosW0 := math.Cos(w0)
	sinW0 := math.Sin(w0)
	alpha := sinW0 / (2.0 * q)

	b0 := (1.0 + cosW0) / 2.0
	b1 := -(1.0 + cosW0)
	b2 := (1.0 + cosW0) / 2.0
	a0 := 1.0 + alpha
	a1 := -2.0 * cosW0
	a2 := 1.0 - alpha

	return &biquadSection{
		b0: b0 / a0,
		b1: b1 / a0,
		b2: b2 / a0,
		a1: a1 / a0,
		a2: a2 / a0,
	}
}

// newFirstOrderHighpass computes bilinear-transform coefficients for the
// odd-order residual section
func newFirstOrderHighpass(sampleRate int, cutoffFreq float64) *firstOrderSection {
	k := math.Tan(math.Pi * cutoffFreq / float64(sampleRate))

	return &firstOrderSection{
		b0: 1.0 / (1.0 + k),
		b1: -1.0 / (1.0 + k),
		a1: (k - 1.0) / (k + 1.0),
	}
}

func (s *biquadSection) process(input float64) float64 {
	// Direct Form II
	w := input - s.a1*s.w1 - s.a2*s.w2
	output := s.b0*w + s.b1*s.w1 + s.b2*s.w2

	s.w2 = s.w1
	s.w1 = w

	return output
}

func (s *biquadSection) reset() {
	s.w1, s.w2 = 0.0, 0.0
}

func (s *firstOrderSection) process(input float64) float64 {
	output := s.b0*input + s.b1*s.x1 - s.a1*s.y1
	s.x1 = input
	s.y1 = output
	return output
}

func (s *firstOrderSection) reset() {
	s.x1, s.y1 = 0.0, 0.0
}

// Process applies the full cascade to a single sample
func (hf *HighpassFilter) Process(input float64) float64 {
	out := input
	for _, section := range hf.sections {
		out = section.process(out)
	}
	if hf.firstOrder != nil {
		out = hf.firstOrder.process(out)
	}
	return out
}

// ProcessBuffer applies the filter to an entire buffer of samples
func (hf *HighpassFilter) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = hf.Process(sample)
	}
	return output
}

// ProcessZeroPhase applies the filter forward and backward for zero phase
// distortion. The effective magnitude response is squared, so the stopband
// attenuation doubles in dB. Filter state is reset before each pass.
func (hf *HighpassFilter) ProcessZeroPhase(input []float64) []float64 {
	if len(input) == 0 {
		return []float64{}
	}

	hf.Reset()
	forward := hf.ProcessBuffer(input)

	reverseInPlace(forward)
	hf.Reset()
	backward := hf.ProcessBuffer(forward)
	reverseInPlace(backward)

	return backward
}

func reverseInPlace(data []float64) {
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
}

// Reset clears the internal state (delay lines) of every section.
// Call this when processing discontinuous audio segments.
func (hf *HighpassFilter) Reset() {
	for _, section := range hf.sections {
		section.reset()
	}
	if hf.firstOrder != nil {
		hf.firstOrder.reset()
	}
}

// GetParameters returns the current filter parameters
func (hf *HighpassFilter) GetParameters() (cutoffFreq float64, order int) {
	return hf.cutoffFreq, hf.order
}
