package pitch

import (
	"math"
	"testing"
)

// harmonicTone builds a tone with energy at the fundamental and its first
// harmonics, the signal class HPS is designed for.
func harmonicTone(f0 float64, sampleRate, n int) []float64 {
	signal := make([]float64, n)
	amps := []float64{1.0, 0.6, 0.4, 0.25, 0.15}
	for i := range signal {
		tm := float64(i) / float64(sampleRate)
		for h, a := range amps {
			signal[i] += a * math.Sin(2*math.Pi*f0*float64(h+1)*tm)
		}
	}
	return signal
}

func TestHPS_PureSine(t *testing.T) {
	he := NewHPSEstimator(testSampleRate, 5)

	segment := sine(440, testSampleRate, 2205)
	freq, conf := he.Estimate(segment)

	// Bin resolution at 2205 samples is 10 Hz; stay within 2%
	if math.Abs(freq-440)/440 > 0.02 {
		t.Errorf("Expected 440 Hz within 2%%, got %f", freq)
	}
	if conf <= 0 || conf > 1 {
		t.Errorf("Confidence out of (0, 1]: %f", conf)
	}
}

func TestHPS_HarmonicTone(t *testing.T) {
	he := NewHPSEstimator(testSampleRate, 5)

	segment := harmonicTone(220, testSampleRate, 4410)
	freq, conf := he.Estimate(segment)

	if math.Abs(freq-220)/220 > 0.02 {
		t.Errorf("Expected fundamental 220 Hz within 2%%, got %f", freq)
	}
	if conf < 0.3 {
		t.Errorf("Expected solid confidence on a harmonic tone, got %f", conf)
	}
}

func TestHPS_Silence(t *testing.T) {
	he := NewHPSEstimator(testSampleRate, 5)

	segment := make([]float64, 2205)
	freq, conf := he.Estimate(segment)

	if freq != 0 || conf != 0 {
		t.Errorf("Expected (0, 0) for silence, got (%f, %f)", freq, conf)
	}
}

func TestHPS_FixedSearchBand(t *testing.T) {
	// The HPS search band stays fixed at 80-2000 Hz regardless of the range
	// the autocorrelation path is configured with. A 3 kHz tone therefore
	// resolves to something inside the band, never to 3 kHz itself.
	he := NewHPSEstimator(testSampleRate, 5)

	segment := sine(3000, testSampleRate, 2205)
	freq, _ := he.Estimate(segment)

	if freq > hpsMaxSearchFreq {
		t.Errorf("Frequency %f escapes the fixed 80-2000 Hz search band", freq)
	}
	if freq < 0 {
		t.Errorf("Negative frequency %f", freq)
	}
}

func TestHPS_ConfidenceClamped(t *testing.T) {
	he := NewHPSEstimator(testSampleRate, 5)

	for _, f0 := range []float64{100, 440, 880, 1500} {
		_, conf := he.Estimate(sine(f0, testSampleRate, 2205))
		if conf < 0 || conf > 1 {
			t.Errorf("f0 %f: confidence %f out of [0, 1]", f0, conf)
		}
	}
}

func BenchmarkHPS(b *testing.B) {
	he := NewHPSEstimator(testSampleRate, 5)
	segment := harmonicTone(220, testSampleRate, 2205)

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		he.Estimate(segment)
	}
}
