package notes

import (
	"math"
	"testing"
)

func TestSummarize_DominantNote(t *testing.T) {
	noteHistory := []string{"A4", "A4", "A4", "C4"}
	frequencyHistory := []float64{440.0, 440.2, 439.8, 261.6}

	summary := Summarize(noteHistory, frequencyHistory)

	if summary.DominantNote != "A4" {
		t.Errorf("Expected dominant note A4, got %s", summary.DominantNote)
	}
	if math.Abs(summary.DominanceRatio-0.75) > 1e-9 {
		t.Errorf("Expected dominance ratio 0.75, got %f", summary.DominanceRatio)
	}
	if !summary.Stable {
		t.Errorf("Expected stable sequence, score was %f", summary.StabilityScore)
	}
	if summary.NoteDistribution["A4"] != 3 || summary.NoteDistribution["C4"] != 1 {
		t.Errorf("Unexpected distribution: %v", summary.NoteDistribution)
	}
}

func TestSummarize_Empty(t *testing.T) {
	summary := Summarize(nil, nil)

	if summary.Stable || summary.DominantNote != "" || summary.StabilityScore != 0 {
		t.Errorf("Expected zero summary for empty input, got %+v", summary)
	}
}

func TestSummarize_AllSilent(t *testing.T) {
	noteHistory := []string{NoNoteLabel, NoNoteLabel, NoNoteLabel}
	frequencyHistory := []float64{0, 0, 0}

	summary := Summarize(noteHistory, frequencyHistory)

	if summary.Stable || summary.DominantNote != "" || summary.StabilityScore != 0 {
		t.Errorf("Expected zero summary for all-silent input, got %+v", summary)
	}
}

func TestSummarize_TieBreak(t *testing.T) {
	// Two notes with equal counts: the first to appear in input order wins
	noteHistory := []string{"G3", "E5", "G3", "E5"}
	frequencyHistory := []float64{196.0, 659.3, 196.0, 659.3}

	summary := Summarize(noteHistory, frequencyHistory)

	if summary.DominantNote != "G3" {
		t.Errorf("Expected first-encountered G3 to win the tie, got %s", summary.DominantNote)
	}
	if math.Abs(summary.DominanceRatio-0.5) > 1e-9 {
		t.Errorf("Expected dominance ratio 0.5, got %f", summary.DominanceRatio)
	}
}

func TestSummarize_SilentEntriesDiluteDominance(t *testing.T) {
	noteHistory := []string{"A4", "A4", NoNoteLabel, NoNoteLabel}
	frequencyHistory := []float64{440.0, 440.0, 0, 0}

	summary := Summarize(noteHistory, frequencyHistory)

	if summary.DominantNote != "A4" {
		t.Errorf("Expected dominant note A4, got %s", summary.DominantNote)
	}
	if math.Abs(summary.DominanceRatio-0.5) > 1e-9 {
		t.Errorf("Silent entries must stay in the denominator: expected 0.5, got %f", summary.DominanceRatio)
	}
	if summary.Stable {
		t.Error("Half-silent sequence must not count as stable")
	}
}

func TestSummarize_HighVarianceLowersScore(t *testing.T) {
	// Same label every time but wildly spread frequencies: dominance is 1,
	// yet the variance term must pull the score down
	noteHistory := []string{"A4", "A4", "A4", "A4"}
	frequencyHistory := []float64{420.0, 460.0, 425.0, 455.0}

	summary := Summarize(noteHistory, frequencyHistory)

	steady := Summarize(noteHistory, []float64{440.0, 440.1, 439.9, 440.0})

	if summary.StabilityScore >= steady.StabilityScore {
		t.Errorf("Spread frequencies should score below steady ones: %f >= %f",
			summary.StabilityScore, steady.StabilityScore)
	}
}

func TestSummarize_NoVoicedFrequencies(t *testing.T) {
	// Dominant label exists but every paired frequency is zero: the
	// coefficient of variation is undefined, so the score short-circuits to 0
	noteHistory := []string{"A4", "A4"}
	frequencyHistory := []float64{0, 0}

	summary := Summarize(noteHistory, frequencyHistory)

	if summary.StabilityScore != 0 {
		t.Errorf("Expected zero score without voiced frequencies, got %f", summary.StabilityScore)
	}
	if summary.Stable {
		t.Error("Expected unstable without voiced frequencies")
	}
}
