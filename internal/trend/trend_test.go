package trend

import "testing"

func TestSynthesizeWithinBand(t *testing.T) {
	tests := []struct {
		name    string
		current float64
		opts    Options
	}{
		{"running mtbf", 260, Options{DriftPct: 0.01, NoisePct: 0.05, Min: 60, Max: 360}},
		{"down mtbf", 95, Options{DriftPct: -0.03, NoisePct: 0.07, Min: 40, Max: 320}},
		{"running mttr", 1.2, Options{DriftPct: -0.03, NoisePct: 0.06, Min: 0.6, Max: 5}},
		{"down mttr", 3.8, Options{DriftPct: 0.05, NoisePct: 0.08, Min: 0.6, Max: 5}},
		{"clamped high", 10000, Options{DriftPct: 0.05, NoisePct: 0.1, Min: 0, Max: 50}},
		{"clamped low", 0.01, Options{DriftPct: -0.05, NoisePct: 0.1, Min: 1, Max: 50}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Synthesize(tt.current, "seed-"+tt.name, tt.opts)
			if len(s) != Periods {
				t.Fatalf("len = %d, want %d", len(s), Periods)
			}
			for i, v := range s {
				if v < tt.opts.Min || v > tt.opts.Max {
					t.Errorf("s[%d] = %v, want within [%v, %v]", i, v, tt.opts.Min, tt.opts.Max)
				}
			}
		})
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	opts := Options{DriftPct: 0.01, NoisePct: 0.05, Min: 60, Max: 360}
	a := Synthesize(260, "605-In-House-mtbf", opts)
	b := Synthesize(260, "605-In-House-mtbf", opts)
	if a != b {
		t.Errorf("Synthesize not deterministic: %v vs %v", a, b)
	}
	c := Synthesize(260, "606-In-House-mtbf", opts)
	if a == c {
		t.Errorf("different keys produced the same series %v", a)
	}
}

func TestSynthesizeNoNoiseIsPureDrift(t *testing.T) {
	opts := Options{DriftPct: 0.1, NoisePct: 0, Min: 0, Max: 1000}
	s := Synthesize(100, "k", opts)
	// base = 95; periods 4..1 -> 95*1.4, 95*1.3, 95*1.2, 95*1.1
	want := Series{133, 123.5, 114, 104.5}
	if s != want {
		t.Errorf("Synthesize = %v, want %v", s, want)
	}
}

func TestSeriesMean(t *testing.T) {
	s := Series{1, 2, 3, 4}
	if got := s.Mean(); got != 2.5 {
		t.Errorf("Mean = %v, want 2.5", got)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1.24, 1.2},
		{1.25, 1.3},
		{-0.04, 0},
		{260, 260},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
