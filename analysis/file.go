package analysis

import (
	"github.com/tonegrid/notescan/algorithms/notes"
	"github.com/tonegrid/notescan/analysis/config"
	"github.com/tonegrid/notescan/logging"
)

// ProgressFunc receives the fraction of completed segments, a monotonically
// non-decreasing value in (0, 1], called exactly once per completed segment.
type ProgressFunc func(fraction float64)

// FileAnalyzer slices a waveform into fixed-size non-overlapping segments,
// drives a SegmentAnalyzer over each in time order, and reports fractional
// progress. All state is per-run; concurrent analyses need separate
// FileAnalyzer values.
type FileAnalyzer struct {
	logger logging.Logger
}

// NewFileAnalyzer creates a file analyzer using the global logger
func NewFileAnalyzer() *FileAnalyzer {
	return &FileAnalyzer{
		logger: logging.GetGlobalLogger(),
	}
}

// NewFileAnalyzerWithLogger creates a file analyzer with an explicit logger
func NewFileAnalyzerWithLogger(logger logging.Logger) *FileAnalyzer {
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &FileAnalyzer{logger: logger}
}

// AnalyzeFile analyzes the whole waveform in hop-length segments and returns
// observations in increasing time order.
//
// The hop length is sampleRate * hopSeconds truncated to an integer sample
// count, so a quarter-second hop at 22050 Hz is 5512 samples. A trailing
// partial segment shorter than one hop is dropped, not padded. onProgress may
// be nil; when set it is invoked once per completed segment with
// completed/total, ending at exactly 1.0.
func (fa *FileAnalyzer) AnalyzeFile(waveform *WaveformBuffer, mode config.Mode, onProgress ProgressFunc) ([]NoteObservation, error) {
	if err := waveform.Validate(); err != nil {
		return nil, err
	}

	cfg, err := config.Lookup(mode)
	if err != nil {
		return nil, err
	}

	analyzer, err := NewSegmentAnalyzer(waveform.SampleRate, mode)
	if err != nil {
		return nil, err
	}

	hopLength := int(float64(waveform.SampleRate) * cfg.HopSeconds)
	if hopLength < 1 {
		hopLength = 1
	}

	totalSegments := 0
	if len(waveform.Samples) >= hopLength {
		totalSegments = (len(waveform.Samples)-hopLength)/hopLength + 1
	}

	fa.logger.Info("starting file analysis", logging.Fields{
		"mode":        string(mode),
		"sample_rate": waveform.SampleRate,
		"duration":    waveform.Duration(),
		"segments":    totalSegments,
	})

	if totalSegments == 0 {
		return []NoteObservation{}, nil
	}

	results := make([]NoteObservation, 0, totalSegments)

	for i := 0; i < totalSegments; i++ {
		start := i * hopLength
		segment := waveform.Samples[start : start+hopLength]

		obs := analyzer.Analyze(segment)
		obs.Time = float64(start) / float64(waveform.SampleRate)
		obs.TimeFormatted = FormatTime(obs.Time)

		results = append(results, obs)

		if onProgress != nil {
			onProgress(float64(i+1) / float64(totalSegments))
		}
	}

	fa.logger.Debug("file analysis complete", logging.Fields{
		"mode":         string(mode),
		"observations": len(results),
	})

	return results, nil
}

// Summarize aggregates an observation sequence into a stability summary
func Summarize(observations []NoteObservation) notes.StabilitySummary {
	noteHistory := make([]string, len(observations))
	frequencyHistory := make([]float64, len(observations))

	for i, obs := range observations {
		noteHistory[i] = obs.Note
		frequencyHistory[i] = obs.Frequency
	}

	return notes.Summarize(noteHistory, frequencyHistory)
}
