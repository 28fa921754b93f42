package notes

import (
	"fmt"
	"math"

	"github.com/tonegrid/notescan/algorithms/common"
)

// A4Frequency is the equal-temperament reference pitch in Hz
const A4Frequency = 440.0

// NoNoteLabel is the sentinel label for "no pitch detected"
const NoNoteLabel = "—"

// noteNames is the chromatic scale starting at C, indexed by MIDI number mod 12
var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteInfo describes the nearest equal-tempered note for a frequency
type NoteInfo struct {
	Note       string  `json:"note"`      // Full label, e.g. "A4", or the no-pitch sentinel
	NoteName   string  `json:"note_name"` // Name within the octave, e.g. "A"
	Octave     int     `json:"octave"`
	Frequency  float64 `json:"frequency"` // Input frequency in Hz, 0 for no pitch
	Cents      float64 `json:"cents"`     // Signed deviation from the exact note, roughly [-50, +50]
	Confidence float64 `json:"confidence"`
	MIDINumber int     `json:"midi_number,omitempty"` // 69 = A4; present only when a pitch was detected
}

// FrequencyToNote maps a frequency to the nearest equal-tempered note.
//
// The confidence is a pitch-precision signal derived from the cents
// deviation: exact notes score 1, 50 cents off scores 0. Callers that have an
// estimator-derived confidence overwrite this field.
//
// Non-positive frequencies yield the no-pitch sentinel. Deterministic and
// side-effect free.
func FrequencyToNote(frequency float64) NoteInfo {
	if frequency <= 0 || !common.IsFinite(frequency) {
		return NoteInfo{Note: NoNoteLabel}
	}

	semitonesFromA4 := 12.0 * math.Log2(frequency/A4Frequency)
	nearest := int(math.Round(semitonesFromA4))
	cents := (semitonesFromA4 - float64(nearest)) * 100.0

	midiNumber := nearest + 69
	// Floor division keeps the octave correct for negative MIDI numbers
	// (frequencies below C-1)
	octave := int(math.Floor(float64(midiNumber)/12.0)) - 1
	noteIndex := ((midiNumber % 12) + 12) % 12

	confidence := math.Max(0.0, 1.0-math.Abs(cents)/50.0)

	return NoteInfo{
		Note:       fmt.Sprintf("%s%d", noteNames[noteIndex], octave),
		NoteName:   noteNames[noteIndex],
		Octave:     octave,
		Frequency:  frequency,
		Cents:      common.Round(cents, 1),
		Confidence: common.Round(confidence, 2),
		MIDINumber: midiNumber,
	}
}
