package stats

import (
	"errors"
	"math"
	"slices"
)

// ErrUnknownMetric is returned for a metric name that is neither mtbf nor mttr.
var ErrUnknownMetric = errors.New("unknown metric")

// outlierMinPoints is the smallest sample on which quartile fences are
// evaluated.
const outlierMinPoints = 4

// Mean returns the arithmetic mean of vals, or 0 when vals is empty.
func Mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// Quantile returns the q-quantile of vals using linear interpolation
// between the closest ranks. It returns 0 for empty input.
func Quantile(vals []float64, q float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	s := slices.Clone(vals)
	slices.Sort(s)
	pos := float64(len(s)-1) * q
	base := int(math.Floor(pos))
	rest := pos - float64(base)
	if base+1 < len(s) {
		return s[base] + rest*(s[base+1]-s[base])
	}
	return s[base]
}

// Fences holds the quartiles of a sample and the Tukey fences built from them.
type Fences struct {
	Q1   float64 `json:"q1"`
	Q3   float64 `json:"q3"`
	IQR  float64 `json:"iqr"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
	// Active is false when the sample is too small for the fences to apply.
	Active bool `json:"active"`
}

// NewFences computes the 1.5*IQR fences of vals.
func NewFences(vals []float64) Fences {
	q1, q3 := Quantile(vals, 0.25), Quantile(vals, 0.75)
	iqr := q3 - q1
	return Fences{
		Q1:     q1,
		Q3:     q3,
		IQR:    iqr,
		Low:    q1 - 1.5*iqr,
		High:   q3 + 1.5*iqr,
		Active: len(vals) >= outlierMinPoints,
	}
}

// BelowLow reports whether v falls under the low fence.
func (f Fences) BelowLow(v float64) bool {
	return f.Active && v < f.Low
}

// AboveHigh reports whether v lies over the high fence.
func (f Fences) AboveHigh(v float64) bool {
	return f.Active && v > f.High
}

// Score is the reliability index mtbf/mttr. A non-positive mttr scores
// +Inf rather than producing NaN.
func Score(mtbf, mttr float64) float64 {
	if mttr <= 0 {
		return math.Inf(1)
	}
	return mtbf / mttr
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Domain is a closed numeric axis range.
type Domain struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

func floor2(v float64) float64 { return math.Floor(v*100) / 100 }
func ceil2(v float64) float64  { return math.Ceil(v*100) / 100 }
