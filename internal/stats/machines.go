package stats

import (
	"fmt"
	"math"
	"slices"

	"github.com/seantiz/mxm/internal/model"
	"github.com/seantiz/mxm/internal/trend"
)

// ParseMetric validates a metric name from a query string.
func ParseMetric(s string) (model.Metric, error) {
	m := model.Metric(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
	return m, nil
}

// Point is a machine projected onto the MTBF/MTTR plane.
type Point struct {
	MachineID string        `json:"machine_id"`
	Project   model.Project `json:"project"`
	MTBF      float64       `json:"mtbf_hours"`
	MTTR      float64       `json:"mttr_hours"`
}

// Score returns the point's reliability index.
func (p Point) Score() float64 {
	return Score(p.MTBF, p.MTTR)
}

// Points projects machines in order.
func Points(machines []model.Machine) []Point {
	out := make([]Point, len(machines))
	for i, m := range machines {
		out[i] = Point{MachineID: m.ID, Project: m.Project, MTBF: m.MTBFHours, MTTR: m.MTTRHours}
	}
	return out
}

// Outliers returns the points with an MTBF below the low fence or an MTTR
// above the high fence. Fences only apply to samples of four or more.
func Outliers(points []Point) []Point {
	mtbf := make([]float64, len(points))
	mttr := make([]float64, len(points))
	for i, p := range points {
		mtbf[i], mttr[i] = p.MTBF, p.MTTR
	}
	lowCut, highCut := NewFences(mtbf), NewFences(mttr)

	var out []Point
	for _, p := range points {
		if lowCut.BelowLow(p.MTBF) || highCut.AboveHigh(p.MTTR) {
			out = append(out, p)
		}
	}
	return out
}

// BestWorst returns the highest and lowest scoring points. On ties the
// earliest point wins. ok is false when points is empty.
func BestWorst(points []Point) (best, worst Point, ok bool) {
	if len(points) == 0 {
		return Point{}, Point{}, false
	}
	best, worst = points[0], points[0]
	bs, ws := best.Score(), worst.Score()
	for _, p := range points[1:] {
		s := p.Score()
		if s > bs {
			best, bs = p, s
		}
		if s < ws {
			worst, ws = p, s
		}
	}
	return best, worst, true
}

// Centroid is the mean position of a group of points.
type Centroid struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// CentroidOf returns the mean MTBF and MTTR of points. ok is false for an
// empty group.
func CentroidOf(points []Point) (Centroid, bool) {
	if len(points) == 0 {
		return Centroid{}, false
	}
	var sx, sy float64
	for _, p := range points {
		sx += p.MTBF
		sy += p.MTTR
	}
	n := float64(len(points))
	return Centroid{X: sx / n, Y: sy / n}, true
}

// Targets are the reliability goals that split the scatter plane.
type Targets struct {
	MTBF float64 `json:"mtbf"`
	MTTR float64 `json:"mttr"`
}

// Quadrant names where a point sits relative to Targets.
type Quadrant string

const (
	QuadrantMeetsBoth Quadrant = "meets-both"
	QuadrantMTBFOnly  Quadrant = "mtbf-only"
	QuadrantMTTROnly  Quadrant = "mttr-only"
	QuadrantNeither   Quadrant = "neither"
)

// QuadrantOf classifies p. MTBF meets its target at or above it, MTTR at
// or below it.
func QuadrantOf(p Point, t Targets) Quadrant {
	mtbfOK := p.MTBF >= t.MTBF
	mttrOK := p.MTTR <= t.MTTR
	switch {
	case mtbfOK && mttrOK:
		return QuadrantMeetsBoth
	case mtbfOK:
		return QuadrantMTBFOnly
	case mttrOK:
		return QuadrantMTTROnly
	default:
		return QuadrantNeither
	}
}

// ScatterDomain pads the extent of points for plotting. With no points the
// axes run from zero to just past the targets.
func ScatterDomain(points []Point, t Targets) (x, y Domain) {
	if len(points) == 0 {
		return Domain{0, t.MTBF + 30}, Domain{0, t.MTTR + 1}
	}
	minX, maxX := points[0].MTBF, points[0].MTBF
	minY, maxY := points[0].MTTR, points[0].MTTR
	for _, p := range points[1:] {
		minX, maxX = math.Min(minX, p.MTBF), math.Max(maxX, p.MTBF)
		minY, maxY = math.Min(minY, p.MTTR), math.Max(maxY, p.MTTR)
	}
	return Domain{math.Max(0, minX-10), maxX + 30}, Domain{math.Max(0, minY-0.5), maxY + 0.8}
}

// Bar pairs a machine's current metric value with the mean of its trend.
type Bar struct {
	MachineID string        `json:"machine_id"`
	Project   model.Project `json:"project"`
	Current   float64       `json:"current"`
	Hist      float64       `json:"hist"`
	// Better is true when the current value improves on the historical mean.
	Better bool `json:"better"`
}

// HistAvg is the mean of a machine's historical series for metric.
func HistAvg(m model.Machine, metric model.Metric) float64 {
	return m.Trend(metric).Mean()
}

// Bars builds one Bar per machine for metric.
func Bars(machines []model.Machine, metric model.Metric) []Bar {
	out := make([]Bar, len(machines))
	for i, m := range machines {
		cur := m.Value(metric)
		hist := HistAvg(m, metric)
		better := cur <= hist
		if metric.HigherIsBetter() {
			better = cur >= hist
		}
		out[i] = Bar{MachineID: m.ID, Project: m.Project, Current: cur, Hist: hist, Better: better}
	}
	return out
}

// FleetHist is the mean of the bars' historical values. ok is false when
// there are no bars.
func FleetHist(bars []Bar) (float64, bool) {
	if len(bars) == 0 {
		return 0, false
	}
	vals := make([]float64, len(bars))
	for i, b := range bars {
		vals[i] = b.Hist
	}
	return Mean(vals), true
}

// BarValues flattens the current and historical values of bars.
func BarValues(bars []Bar) []float64 {
	out := make([]float64, 0, 2*len(bars))
	for _, b := range bars {
		out = append(out, b.Current, b.Hist)
	}
	return out
}

// BarDomain computes the value axis for a bar chart. With a fleet average
// the axis is centred on it and spans the largest deviation plus 20%;
// otherwise the min/max range is padded by 15% (at least 5). The lower
// bound never goes below zero and both bounds round outward to two
// decimals.
func BarDomain(vals []float64, fleetHist float64, haveFleet bool) Domain {
	if len(vals) == 0 {
		return Domain{0, 10}
	}
	var d Domain
	if haveFleet {
		maxAbove, maxBelow := math.Inf(-1), math.Inf(-1)
		for _, v := range vals {
			maxAbove = math.Max(maxAbove, v-fleetHist)
			maxBelow = math.Max(maxBelow, fleetHist-v)
		}
		span := math.Max(maxAbove, maxBelow) * 1.2
		if span == 0 || math.IsNaN(span) {
			span = 10
		}
		d = Domain{math.Max(0, floor2(fleetHist-span)), ceil2(fleetHist + span)}
	} else {
		lo, hi := slices.Min(vals), slices.Max(vals)
		pad := math.Max(5, (hi-lo)*0.15)
		d = Domain{math.Max(0, floor2(lo-pad)), ceil2(hi + pad)}
	}
	if d.Max <= d.Min {
		d.Max = d.Min + 10
	}
	return d
}

// WeeklyAverages averages each trend period across machines, rounded to
// two decimals. An empty machine set yields zeros.
func WeeklyAverages(machines []model.Machine, metric model.Metric) [trend.Periods]float64 {
	var out [trend.Periods]float64
	for i := range trend.Periods {
		vals := make([]float64, 0, len(machines))
		for _, m := range machines {
			vals = append(vals, m.Trend(metric)[i])
		}
		out[i] = Round2(Mean(vals))
	}
	return out
}

// SparklineDomain pads the range of vals so a flat series still has
// visible height.
func SparklineDomain(vals []float64) Domain {
	lo, hi := 0.0, 1.0
	if len(vals) > 0 {
		lo, hi = slices.Min(vals), slices.Max(vals)
	}
	if hi == lo {
		pad := math.Max(0.5, math.Abs(hi)*0.05)
		return Domain{lo - pad, hi + pad}
	}
	pad := math.Max(0.1, (hi-lo)*0.1)
	return Domain{lo - pad, hi + pad}
}

// ThresholdReport summarizes fleet MTBF against an underperformance line.
type ThresholdReport struct {
	ThresholdHours float64  `json:"threshold_hours"`
	Average        float64  `json:"average"`
	Below          []string `json:"below"`
	Domain         Domain   `json:"domain"`
}

// thresholdHeadroom is added above the larger of the fleet maximum and the
// threshold.
const thresholdHeadroom = 40

// Threshold reports the fleet MTBF average (one decimal) and the machines
// under hours.
func Threshold(machines []model.Machine, hours float64) ThresholdReport {
	vals := make([]float64, len(machines))
	below := []string{}
	for i, m := range machines {
		vals[i] = m.MTBFHours
		if m.MTBFHours < hours {
			below = append(below, m.ID)
		}
	}
	top := hours
	if len(vals) > 0 {
		top = math.Max(slices.Max(vals), hours)
	}
	return ThresholdReport{
		ThresholdHours: hours,
		Average:        trend.Round1(Mean(vals)),
		Below:          below,
		Domain:         Domain{0, top + thresholdHeadroom},
	}
}
