package config

import (
	"fmt"
)

// Mode selects the detection method and segment granularity for one analysis run
type Mode string

const (
	// ModeFast trades resolution for speed: one-second segments, single
	// spectral-peak pass
	ModeFast Mode = "fast"
	// ModeStandard uses a voiced-pitch tracker over quarter-second segments
	ModeStandard Mode = "standard"
	// ModeAdvanced fuses autocorrelation and HPS over tenth-second segments
	ModeAdvanced Mode = "advanced"
)

// ModeConfig binds a detection mode to its analysis parameters
type ModeConfig struct {
	HopSeconds   float64 `json:"hop_seconds"`   // Segment length in seconds
	MinFrequency float64 `json:"min_frequency"` // Hz, lower bound of detectable pitch
	MaxFrequency float64 `json:"max_frequency"` // Hz, upper bound of detectable pitch
}

// Processing defaults shared by every mode
const (
	// DefaultMinFrequency is E2, the low end of a bass guitar/voice
	DefaultMinFrequency = 80.0
	// DefaultMaxFrequency is roughly B6
	DefaultMaxFrequency = 2000.0
	// SilenceThreshold is the RMS level below which a segment is treated as
	// silent and no estimator runs
	SilenceThreshold = 0.01
	// HighpassCutoff is the preprocessing high-pass cutoff in Hz, removing
	// rumble below the detectable range
	HighpassCutoff = 50.0
	// HighpassOrder is the Butterworth order of the preprocessing filter
	HighpassOrder = 5
	// NumHarmonics is the harmonic count used by the HPS estimator
	NumHarmonics = 5
)

// modeTable is the fixed mode-to-parameters mapping; finer granularity for
// the more expensive methods
var modeTable = map[Mode]ModeConfig{
	ModeFast:     {HopSeconds: 1.0, MinFrequency: DefaultMinFrequency, MaxFrequency: DefaultMaxFrequency},
	ModeStandard: {HopSeconds: 0.25, MinFrequency: DefaultMinFrequency, MaxFrequency: DefaultMaxFrequency},
	ModeAdvanced: {HopSeconds: 0.1, MinFrequency: DefaultMinFrequency, MaxFrequency: DefaultMaxFrequency},
}

// Lookup returns the configuration bound to a mode
func Lookup(mode Mode) (ModeConfig, error) {
	cfg, ok := modeTable[mode]
	if !ok {
		return ModeConfig{}, fmt.Errorf("unknown detection mode: %q", mode)
	}
	return cfg, nil
}

// Modes returns the supported detection modes
func Modes() []Mode {
	return []Mode{ModeFast, ModeStandard, ModeAdvanced}
}

// Valid reports whether mode names a supported detection mode
func Valid(mode Mode) bool {
	_, ok := modeTable[mode]
	return ok
}
