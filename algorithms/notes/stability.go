package notes

import (
	"math"

	"github.com/tonegrid/notescan/algorithms/common"
)

// stableScoreThreshold is the fixed score above which a sequence counts as stable
const stableScoreThreshold = 0.7

// StabilitySummary aggregates a detected-note sequence into a dominant note
// and a stability score.
type StabilitySummary struct {
	Stable           bool           `json:"stable"`
	DominantNote     string         `json:"dominant_note"`
	StabilityScore   float64        `json:"stability_score"`
	DominanceRatio   float64        `json:"dominance_ratio"`
	NoteDistribution map[string]int `json:"note_distribution"`
}

// Summarize analyzes the stability of detected notes over time. The two
// sequences are paired by index; frequencies beyond the note sequence length
// are ignored.
//
// The dominant note is the most frequent non-silent label; on a tie the label
// that first reached the maximum count in input order wins. The stability
// score is dominanceRatio * (1 - min(cv, 1)) where cv is the population
// coefficient of variation of the dominant note's voiced frequencies.
func Summarize(noteHistory []string, frequencyHistory []float64) StabilitySummary {
	summary := StabilitySummary{}

	if len(noteHistory) == 0 {
		return summary
	}

	counts := make(map[string]int)
	for _, note := range noteHistory {
		if note != NoNoteLabel && note != "" {
			counts[note]++
		}
	}

	if len(counts) == 0 {
		return summary
	}

	// First label in input order to reach the maximum count wins ties
	dominant := ""
	maxCount := 0
	for _, note := range noteHistory {
		if note == NoNoteLabel || note == "" {
			continue
		}
		if counts[note] > maxCount {
			maxCount = counts[note]
			dominant = note
		}
	}

	// Silent entries stay in the denominator
	dominanceRatio := float64(maxCount) / float64(len(noteHistory))

	var dominantFreqs []float64
	for i, note := range noteHistory {
		if note != dominant || i >= len(frequencyHistory) {
			continue
		}
		if freq := frequencyHistory[i]; freq > 0 {
			dominantFreqs = append(dominantFreqs, freq)
		}
	}

	score := 0.0
	if len(dominantFreqs) > 0 {
		mean := common.Mean(dominantFreqs)
		if mean > 0 {
			cv := common.PopStdDev(dominantFreqs) / mean
			score = dominanceRatio * (1.0 - math.Min(cv, 1.0))
		}
	}

	summary.DominantNote = dominant
	summary.DominanceRatio = common.Round(dominanceRatio, 2)
	summary.StabilityScore = common.Round(score, 2)
	summary.Stable = score > stableScoreThreshold
	summary.NoteDistribution = counts

	return summary
}
