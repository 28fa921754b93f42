package analysis

import (
	"fmt"

	"github.com/tonegrid/notescan/algorithms/notes"
)

// NoteObservation is the atomic analysis output: the note detected in one
// time segment. Created once per segment and never mutated afterwards;
// downstream consumers (export, stability analysis) only read.
type NoteObservation struct {
	Time          float64 `json:"time"` // Segment start offset in seconds
	TimeFormatted string  `json:"time_formatted"`
	Note          string  `json:"note"` // Full label, e.g. "A4", or the no-pitch sentinel
	NoteName      string  `json:"note_name,omitempty"`
	Octave        int     `json:"octave"`
	Frequency     float64 `json:"frequency"` // Hz, 0 means no pitch
	Cents         float64 `json:"cents"`
	Confidence    float64 `json:"confidence"`
	Energy        float64 `json:"energy"`                // RMS of the preprocessed segment
	MIDINumber    int     `json:"midi_number,omitempty"` // Present only when a pitch was detected
	Method        string  `json:"method"`
}

// observationFromNote builds an observation from a mapped note
func observationFromNote(info notes.NoteInfo, method string) NoteObservation {
	return NoteObservation{
		Note:       info.Note,
		NoteName:   info.NoteName,
		Octave:     info.Octave,
		Frequency:  info.Frequency,
		Cents:      info.Cents,
		Confidence: info.Confidence,
		MIDINumber: info.MIDINumber,
		Method:     method,
	}
}

// FormatTime renders a second offset as HH:MM:SS.ffff with the fractional
// part truncated (not rounded) to four digits.
func FormatTime(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}

	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := int(seconds) % 60
	fraction := int((seconds - float64(int(seconds))) * 10000)

	return fmt.Sprintf("%02d:%02d:%02d.%04d", hours, minutes, secs, fraction)
}
