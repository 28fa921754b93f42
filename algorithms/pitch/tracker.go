package pitch

import (
	"github.com/tonegrid/notescan/algorithms/common"
	"github.com/tonegrid/notescan/algorithms/spectral"
)

// VoicedTracker is the standard detection path: a frame-based autocorrelation
// pitch tracker with an explicit voiced/unvoiced decision per frame. The
// voicing strength is the normalized autocorrelation value at the detected
// period, so the confidence has a natural [0, 1] interpretation.
//
// Reference: Talkin, D. (1995). "A robust algorithm for pitch tracking (RAPT)"
type VoicedTracker struct {
	sampleRate      int
	minFreq         float64
	maxFreq         float64
	frameSeconds    float64
	hopSeconds      float64
	voicingStrength float64

	fft *spectral.FFT
}

// NewVoicedTracker creates a tracker with 40 ms frames, 10 ms hop, and a
// voicing threshold of 0.45.
func NewVoicedTracker(sampleRate int, minFreq, maxFreq float64) *VoicedTracker {
	return &VoicedTracker{
		sampleRate:      sampleRate,
		minFreq:         minFreq,
		maxFreq:         maxFreq,
		frameSeconds:    0.040,
		hopSeconds:      0.010,
		voicingStrength: 0.45,
		fft:             spectral.NewFFT(),
	}
}

// Estimate returns (frequency, confidence) for one audio segment.
//
// Frequency is the median over voiced frames; confidence the mean voicing
// strength of those frames. A segment with no voiced frame yields (0, 0).
func (vt *VoicedTracker) Estimate(segment []float64) (float64, float64) {
	if len(segment) < 4 {
		return 0.0, 0.0
	}

	frameSize := int(vt.frameSeconds * float64(vt.sampleRate))
	hopSize := int(vt.hopSeconds * float64(vt.sampleRate))
	if frameSize < 4 {
		frameSize = 4
	}
	if hopSize < 1 {
		hopSize = 1
	}
	if len(segment) < frameSize {
		frameSize = len(segment)
		hopSize = frameSize
	}

	var frequencies []float64
	var voicings []float64

	for start := 0; start+frameSize <= len(segment); start += hopSize {
		freq, strength := vt.analyzeFrame(segment[start : start+frameSize])
		if strength < vt.voicingStrength || freq <= 0 {
			continue
		}
		frequencies = append(frequencies, freq)
		voicings = append(voicings, strength)
	}

	if len(frequencies) == 0 {
		return 0.0, 0.0
	}

	return common.Median(frequencies), common.Clamp(common.Mean(voicings), 0.0, 1.0)
}

// analyzeFrame returns the frame's period frequency and its voicing strength,
// the autocorrelation at the best period normalized by the zero-lag energy.
func (vt *VoicedTracker) analyzeFrame(frame []float64) (float64, float64) {
	work := make([]float64, len(frame))
	copy(work, frame)
	common.RemoveDC(work)

	corr := autocorrelate(vt.fft, work)
	if len(corr) == 0 || corr[0] <= 0 {
		return 0.0, 0.0
	}

	energy := corr[0]

	minPeriod := int(float64(vt.sampleRate) / vt.maxFreq)
	maxPeriod := int(float64(vt.sampleRate) / vt.minFreq)
	if minPeriod < 1 {
		minPeriod = 1
	}
	if maxPeriod > len(corr)-2 {
		maxPeriod = len(corr) - 2
	}

	bestPeriod := -1
	bestCorr := 0.0
	for i := minPeriod; i <= maxPeriod; i++ {
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

	frequency := float64(vt.sampleRate) / refined
	strength := common.Clamp(bestCorr/energy, 0.0, 1.0)

	if !common.IsFinite(frequency) {
		return 0.0, 0.0
	}

	return frequency, strength
}
