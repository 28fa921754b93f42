package notes

import (
	"math"
	"testing"
)

func TestFrequencyToNote_A4(t *testing.T) {
	info := FrequencyToNote(440.0)

	if info.Note != "A4" {
		t.Errorf("Expected note A4, got %s", info.Note)
	}
	if info.MIDINumber != 69 {
		t.Errorf("Expected MIDI 69, got %d", info.MIDINumber)
	}
	if math.Abs(info.Cents) > 0.5 {
		t.Errorf("Expected cents near 0, got %f", info.Cents)
	}
	if info.Octave != 4 {
		t.Errorf("Expected octave 4, got %d", info.Octave)
	}
	if info.Confidence < 0.99 {
		t.Errorf("Expected confidence near 1 for an exact note, got %f", info.Confidence)
	}
}

func TestFrequencyToNote_ASharp4(t *testing.T) {
	info := FrequencyToNote(466.16)

	if info.Note != "A#4" {
		t.Errorf("Expected note A#4, got %s", info.Note)
	}
	if info.MIDINumber != 70 {
		t.Errorf("Expected MIDI 70, got %d", info.MIDINumber)
	}
	if math.Abs(info.Cents) > 1.0 {
		t.Errorf("Expected cents near 0, got %f", info.Cents)
	}
}

func TestFrequencyToNote_Sentinel(t *testing.T) {
	for _, freq := range []float64{0.0, -1.0, -440.0, math.NaN(), math.Inf(1)} {
		info := FrequencyToNote(freq)

		if info.Note != NoNoteLabel {
			t.Errorf("FrequencyToNote(%f): expected sentinel note, got %s", freq, info.Note)
		}
		if info.Frequency != 0 || info.Confidence != 0 || info.Cents != 0 || info.Octave != 0 {
			t.Errorf("FrequencyToNote(%f): expected zeroed fields, got %+v", freq, info)
		}
		if info.MIDINumber != 0 {
			t.Errorf("FrequencyToNote(%f): expected no MIDI number, got %d", freq, info.MIDINumber)
		}
	}
}

func TestFrequencyToNote_MIDIAndCentsBounds(t *testing.T) {
	// Sweep a wide range of frequencies; the mapped MIDI number must stay
	// within one semitone of the analytic value and cents within +/-50
	for freq := 30.0; freq <= 4000.0; freq *= 1.037 {
		info := FrequencyToNote(freq)

		expected := math.Round(69 + 12*math.Log2(freq/440.0))
		if math.Abs(float64(info.MIDINumber)-expected) > 1 {
			t.Errorf("freq %f: MIDI %d too far from %f", freq, info.MIDINumber, expected)
		}
		if math.Abs(info.Cents) > 50.0 {
			t.Errorf("freq %f: |cents| = %f exceeds 50", freq, math.Abs(info.Cents))
		}
		if info.Confidence < 0 || info.Confidence > 1 {
			t.Errorf("freq %f: confidence %f out of [0,1]", freq, info.Confidence)
		}
	}
}

func TestFrequencyToNote_OctaveBoundaries(t *testing.T) {
	cases := []struct {
		freq float64
		note string
		midi int
	}{
		{261.63, "C4", 60},
		{27.5, "A0", 21},
		{4186.01, "C8", 108},
		{110.0, "A2", 45},
		// Below C-1 the MIDI number goes negative; the octave must keep
		// descending instead of snapping back toward zero
		{6.875, "A-2", -3},
	}

	for _, tc := range cases {
		info := FrequencyToNote(tc.freq)
		if info.Note != tc.note {
			t.Errorf("freq %f: expected %s, got %s", tc.freq, tc.note, info.Note)
		}
		if info.MIDINumber != tc.midi {
			t.Errorf("freq %f: expected MIDI %d, got %d", tc.freq, tc.midi, info.MIDINumber)
		}
	}
}

func TestFrequencyToNote_QuarterToneConfidence(t *testing.T) {
	// A quarter tone above A4 sits 50 cents off, so precision confidence
	// bottoms out near zero
	quarterTone := 440.0 * math.Pow(2, 0.5/12.0)
	info := FrequencyToNote(quarterTone)

	if info.Confidence > 0.05 {
		t.Errorf("Expected near-zero confidence at a quarter tone, got %f", info.Confidence)
	}
}
