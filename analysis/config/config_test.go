package config

import (
	"testing"
)

func TestLookup_HopSeconds(t *testing.T) {
	cases := []struct {
		mode Mode
		hop  float64
	}{
		{ModeFast, 1.0},
		{ModeStandard, 0.25},
		{ModeAdvanced, 0.1},
	}

	for _, tc := range cases {
		cfg, err := Lookup(tc.mode)
		if err != nil {
			t.Fatalf("Lookup(%s) failed: %v", tc.mode, err)
		}
		if cfg.HopSeconds != tc.hop {
			t.Errorf("Lookup(%s).HopSeconds = %v, want %v", tc.mode, cfg.HopSeconds, tc.hop)
		}
		if cfg.MinFrequency != DefaultMinFrequency || cfg.MaxFrequency != DefaultMaxFrequency {
			t.Errorf("Lookup(%s) frequency range = [%v, %v], want [%v, %v]",
				tc.mode, cfg.MinFrequency, cfg.MaxFrequency, DefaultMinFrequency, DefaultMaxFrequency)
		}
	}
}

func TestLookup_Unknown(t *testing.T) {
	if _, err := Lookup(Mode("turbo")); err == nil {
		t.Error("expected error for unknown mode")
	}
	if Valid(Mode("turbo")) {
		t.Error("Valid(turbo) = true")
	}
}

func TestModes(t *testing.T) {
	modes := Modes()
	if len(modes) != 3 {
		t.Fatalf("Modes() returned %d modes, want 3", len(modes))
	}
	for _, m := range modes {
		if !Valid(m) {
			t.Errorf("Valid(%s) = false for a listed mode", m)
		}
	}
}
