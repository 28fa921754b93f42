package analysis

import (
	"fmt"

	"github.com/tonegrid/notescan/algorithms/common"
	"github.com/tonegrid/notescan/algorithms/filters"
	"github.com/tonegrid/notescan/algorithms/notes"
	"github.com/tonegrid/notescan/algorithms/pitch"
	"github.com/tonegrid/notescan/analysis/config"
)

// SegmentAnalyzer turns one audio segment into a NoteObservation: it
// preprocesses the signal, gates on RMS energy, and dispatches to the
// estimator bound to the detection mode.
//
// Not safe for concurrent use; the preprocessing filter carries scratch
// state. Use one analyzer per goroutine.
type SegmentAnalyzer struct {
	sampleRate int
	mode       config.Mode
	cfg        config.ModeConfig

	highpass *filters.HighpassFilter // nil when the cutoff would exceed Nyquist

	peaks    *pitch.SpectralPeakTracker
	tracker  *pitch.VoicedTracker
	combined *pitch.CombinedEstimator
}

// NewSegmentAnalyzer creates a segment analyzer for one sample rate and mode
func NewSegmentAnalyzer(sampleRate int, mode config.Mode) (*SegmentAnalyzer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: sample rate must be positive, got %d", ErrInvalidAudioInput, sampleRate)
	}

	cfg, err := config.Lookup(mode)
	if err != nil {
		return nil, err
	}

	sa := &SegmentAnalyzer{
		sampleRate: sampleRate,
		mode:       mode,
		cfg:        cfg,
	}

	// Rumble removal is skipped entirely when the cutoff is not below
	// Nyquist (degenerate sample rates)
	if config.HighpassCutoff < float64(sampleRate)/2 {
		hp, err := filters.NewHighpassFilter(sampleRate, config.HighpassCutoff, config.HighpassOrder)
		if err != nil {
			return nil, err
		}
		sa.highpass = hp
	}

	switch mode {
	case config.ModeFast:
		sa.peaks = pitch.NewSpectralPeakTracker(sampleRate, cfg.MinFrequency, cfg.MaxFrequency)
	case config.ModeStandard:
		sa.tracker = pitch.NewVoicedTracker(sampleRate, cfg.MinFrequency, cfg.MaxFrequency)
	case config.ModeAdvanced:
		sa.combined = pitch.NewCombinedEstimator(sampleRate, cfg.MinFrequency, cfg.MaxFrequency, config.NumHarmonics)
	}

	return sa, nil
}

// Analyze produces the observation for one segment. The input slice is never
// mutated; preprocessing works on a copy.
func (sa *SegmentAnalyzer) Analyze(segment []float64) NoteObservation {
	processed := sa.preprocess(segment)

	energy := common.RMS(processed)
	if energy < config.SilenceThreshold {
		// Silence: a well-formed no-pitch observation, no estimator runs
		return NoteObservation{
			Note:   notes.NoNoteLabel,
			Energy: common.Round(energy, 3),
			Method: string(sa.mode),
		}
	}

	var obs NoteObservation

	switch sa.mode {
	case config.ModeFast:
		freq, conf := sa.peaks.Estimate(processed)
		obs = observationFromNote(notes.FrequencyToNote(freq), "fast")
		obs.Confidence = common.Clamp(conf, 0.0, 1.0)
	case config.ModeStandard:
		freq, conf := sa.tracker.Estimate(processed)
		obs = observationFromNote(notes.FrequencyToNote(freq), "standard")
		obs.Confidence = common.Clamp(conf, 0.0, 1.0)
	case config.ModeAdvanced:
		result := sa.combined.Estimate(processed)
		obs = observationFromNote(notes.FrequencyToNote(result.Frequency), result.Method)
		obs.Confidence = common.Round(common.Clamp(result.Confidence, 0.0, 1.0), 2)
	}

	obs.Energy = common.Round(energy, 3)
	return obs
}

// preprocess applies DC removal, zero-phase high-pass filtering, and peak
// normalization, in that order, to a copy of the segment.
func (sa *SegmentAnalyzer) preprocess(segment []float64) []float64 {
	processed := make([]float64, len(segment))
	copy(processed, segment)

	common.RemoveDC(processed)

	if sa.highpass != nil {
		processed = sa.highpass.ProcessZeroPhase(processed)
	}

	common.PeakNormalize(processed)
	return processed
}

// Mode returns the detection mode this analyzer is bound to
func (sa *SegmentAnalyzer) Mode() config.Mode {
	return sa.mode
}
