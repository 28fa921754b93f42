package analysis

import (
	"errors"
	"fmt"
)

// ErrInvalidAudioInput marks waveforms the analyzer cannot process: empty
// sample data or a non-positive sample rate. Decoding failures in the loading
// layer wrap this error so callers can treat them uniformly.
var ErrInvalidAudioInput = errors.New("invalid audio input")

// WaveformBuffer holds one decoded mono waveform. It is immutable for the
// duration of an analysis run; segments are read-only views into it.
type WaveformBuffer struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
}

// Duration returns the waveform length in seconds
func (w *WaveformBuffer) Duration() float64 {
	if w.SampleRate <= 0 {
		return 0.0
	}
	return float64(len(w.Samples)) / float64(w.SampleRate)
}

// Validate checks the buffer invariants before analysis
func (w *WaveformBuffer) Validate() error {
	if w == nil {
		return fmt.Errorf("%w: nil waveform", ErrInvalidAudioInput)
	}
	if len(w.Samples) == 0 {
		return fmt.Errorf("%w: empty sample data", ErrInvalidAudioInput)
	}
	if w.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidAudioInput, w.SampleRate)
	}
	return nil
}
