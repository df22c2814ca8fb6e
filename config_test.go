package gocycle

import "testing"

// ---------------------------------------------------------------------------
// Defaults
// ---------------------------------------------------------------------------
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.UnstablePeriod != DefaultUnstablePeriod {
		t.Errorf("UnstablePeriod: got %d, want %d", cfg.UnstablePeriod, DefaultUnstablePeriod)
	}
	if cfg.MaxHistory != DefaultMaxHistory {
		t.Errorf("MaxHistory: got %d, want %d", cfg.MaxHistory, DefaultMaxHistory)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config must validate, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------
func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"widened warm-up", Config{UnstablePeriod: 100, MaxHistory: 1}, false},
		{"negative unstable period", Config{UnstablePeriod: -1, MaxHistory: 256}, true},
		{"absurd unstable period", Config{UnstablePeriod: 2_000_000, MaxHistory: 256}, true},
		{"zero history", Config{UnstablePeriod: 0, MaxHistory: 0}, true},
		{"negative history", Config{UnstablePeriod: 0, MaxHistory: -5}, true},
		{"absurd history", Config{UnstablePeriod: 0, MaxHistory: 2_000_000}, true},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if tc.wantErr && err == nil {
			t.Errorf("%s: expected an error", tc.name)
		}
		if !tc.wantErr && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Lookbacks grow with the unstable period
// ---------------------------------------------------------------------------
func TestLookbacks(t *testing.T) {
	cfg := DefaultConfig()
	if got := MamaLookback(cfg); got != 32 {
		t.Errorf("MamaLookback: got %d, want 32", got)
	}
	if got := DcPhaseLookback(cfg); got != 63 {
		t.Errorf("DcPhaseLookback: got %d, want 63", got)
	}

	cfg.UnstablePeriod = 25
	if got := MamaLookback(cfg); got != 57 {
		t.Errorf("padded MamaLookback: got %d, want 57", got)
	}
	if got := DcPhaseLookback(cfg); got != 88 {
		t.Errorf("padded DcPhaseLookback: got %d, want 88", got)
	}
}
