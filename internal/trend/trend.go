// Package trend synthesizes short historical windows for a reliability metric
// from its current value.
package trend

import (
	"math"

	"github.com/seantiz/mxm/internal/seedrand"
)

// Periods is the number of values in every Series.
const Periods = 4

// Series holds Periods values ordered from the furthest period to the nearest.
type Series [Periods]float64

// Options controls the shape of a synthesized Series.
type Options struct {
	// DriftPct is the per-period relative drift. Positive values make
	// older periods larger than the baseline.
	DriftPct float64
	// NoisePct bounds the uniform multiplicative noise applied per period.
	NoisePct float64
	Min      float64
	Max      float64
}

// Synthesize derives a Series for current from a PRNG seeded with seedKey.
// The same (current, seedKey, opts) always yields the same Series.
func Synthesize(current float64, seedKey string, opts Options) Series {
	rng := seedrand.New(seedKey)
	base := current * (1 - opts.DriftPct*0.5)

	var out Series
	for i := Periods; i >= 1; i-- {
		drift := 1 + opts.DriftPct*float64(i)
		noise := rng.Symmetric(opts.NoisePct)
		v := clamp(base*drift*(1+noise), opts.Min, opts.Max)
		out[Periods-i] = Round1(v)
	}
	return out
}

// Mean returns the arithmetic mean of the series.
func (s Series) Mean() float64 {
	var sum float64
	for _, v := range s {
		sum += v
	}
	return sum / Periods
}

// Round1 rounds v to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

// Presets for machine trends. Healthy machines drift MTBF up and MTTR down
// over time; machines that are down drift the other way.
var (
	RunningMTBF = Options{DriftPct: 0.01, NoisePct: 0.05, Min: 60, Max: 360}
	DownMTBF    = Options{DriftPct: -0.03, NoisePct: 0.07, Min: 40, Max: 320}
	RunningMTTR = Options{DriftPct: -0.03, NoisePct: 0.06, Min: 0.6, Max: 5}
	DownMTTR    = Options{DriftPct: 0.05, NoisePct: 0.08, Min: 0.6, Max: 5}
)
