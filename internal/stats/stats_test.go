package stats

import (
	"errors"
	"math"
	"testing"

	"github.com/seantiz/mxm/internal/model"
	"github.com/seantiz/mxm/internal/trend"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestMean(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]float64{1, 2, 3, 4}); got != 2.5 {
		t.Errorf("Mean = %v, want 2.5", got)
	}
}

func TestQuantile(t *testing.T) {
	tests := []struct {
		vals []float64
		q    float64
		want float64
	}{
		{[]float64{1, 2, 3, 4}, 0.5, 2.5},
		{[]float64{4, 3, 2, 1}, 0.5, 2.5},
		{[]float64{1, 2, 3, 4}, 0.25, 1.75},
		{[]float64{1, 2, 3, 4}, 0.75, 3.25},
		{[]float64{1, 2, 3, 4}, 1, 4},
		{[]float64{1, 2, 3, 4}, 0, 1},
		{[]float64{7}, 0.5, 7},
		{nil, 0.5, 0},
	}
	for _, tt := range tests {
		if got := Quantile(tt.vals, tt.q); !approx(got, tt.want) {
			t.Errorf("Quantile(%v, %v) = %v, want %v", tt.vals, tt.q, got, tt.want)
		}
	}
}

func TestQuantileDoesNotReorderInput(t *testing.T) {
	vals := []float64{3, 1, 2}
	Quantile(vals, 0.5)
	if vals[0] != 3 || vals[1] != 1 || vals[2] != 2 {
		t.Errorf("input mutated: %v", vals)
	}
}

func TestFencesFlagHighOutlier(t *testing.T) {
	vals := []float64{10, 12, 13, 14, 15, 90}
	f := NewFences(vals)
	// Q1 = 12.25, Q3 = 14.75, IQR = 2.5, high fence = 18.5
	if !approx(f.High, 18.5) {
		t.Errorf("High = %v, want 18.5", f.High)
	}
	if !f.AboveHigh(90) {
		t.Error("90 should be above the high fence")
	}
	for _, v := range vals[:5] {
		if f.AboveHigh(v) || f.BelowLow(v) {
			t.Errorf("%v flagged as outlier", v)
		}
	}
}

func TestFencesInactiveBelowFourPoints(t *testing.T) {
	f := NewFences([]float64{1, 2, 1000})
	if f.Active {
		t.Fatal("fences active for three points")
	}
	if f.AboveHigh(1000) || f.BelowLow(-1000) {
		t.Error("inactive fences flagged a value")
	}
}

func TestOutliers(t *testing.T) {
	points := []Point{
		{MachineID: "a", MTBF: 250, MTTR: 1.0},
		{MachineID: "b", MTBF: 240, MTTR: 1.1},
		{MachineID: "c", MTBF: 260, MTTR: 1.2},
		{MachineID: "d", MTBF: 255, MTTR: 1.1},
		{MachineID: "low-mtbf", MTBF: 20, MTTR: 1.0},
		{MachineID: "high-mttr", MTBF: 245, MTTR: 9},
	}
	got := Outliers(points)
	ids := map[string]bool{}
	for _, p := range got {
		ids[p.MachineID] = true
	}
	if len(got) != 2 || !ids["low-mtbf"] || !ids["high-mttr"] {
		t.Errorf("Outliers = %v, want low-mtbf and high-mttr", got)
	}
	if len(Outliers(points[:3])) != 0 {
		t.Error("outliers flagged on fewer than four points")
	}
}

func TestScore(t *testing.T) {
	if got := Score(280, 1.0); got != 280 {
		t.Errorf("Score(280, 1) = %v", got)
	}
	if Score(280, 1.0) <= Score(95, 3.8) {
		t.Error("280/1.0 should outrank 95/3.8")
	}
	for _, mttr := range []float64{0, -1} {
		if got := Score(100, mttr); !math.IsInf(got, 1) {
			t.Errorf("Score(100, %v) = %v, want +Inf", mttr, got)
		}
	}
}

func TestBestWorst(t *testing.T) {
	if _, _, ok := BestWorst(nil); ok {
		t.Error("BestWorst(nil) ok = true")
	}
	points := []Point{
		{MachineID: "606", MTBF: 95, MTTR: 3.8},
		{MachineID: "607", MTBF: 280, MTTR: 1.0},
		{MachineID: "610", MTBF: 110, MTTR: 4.1},
		{MachineID: "tie", MTBF: 560, MTTR: 2.0},
	}
	best, worst, ok := BestWorst(points)
	if !ok {
		t.Fatal("ok = false")
	}
	if best.MachineID != "607" {
		t.Errorf("best = %s, want 607 (first of tie)", best.MachineID)
	}
	if worst.MachineID != "606" {
		t.Errorf("worst = %s, want 606", worst.MachineID)
	}
}

func TestBestWorstInfiniteScore(t *testing.T) {
	points := []Point{{MachineID: "a", MTBF: 100, MTTR: 1}, {MachineID: "zero", MTBF: 50, MTTR: 0}}
	best, worst, _ := BestWorst(points)
	if best.MachineID != "zero" || worst.MachineID != "a" {
		t.Errorf("best, worst = %s, %s", best.MachineID, worst.MachineID)
	}
}

func TestCentroidOf(t *testing.T) {
	if _, ok := CentroidOf(nil); ok {
		t.Error("CentroidOf(nil) ok = true")
	}
	c, ok := CentroidOf([]Point{{MTBF: 100, MTTR: 1}, {MTBF: 200, MTTR: 3}})
	if !ok || c.X != 150 || c.Y != 2 {
		t.Errorf("CentroidOf = %+v, %v", c, ok)
	}
}

func TestQuadrantOf(t *testing.T) {
	targets := Targets{MTBF: 200, MTTR: 2}
	tests := []struct {
		p    Point
		want Quadrant
	}{
		{Point{MTBF: 260, MTTR: 1.2}, QuadrantMeetsBoth},
		{Point{MTBF: 200, MTTR: 2}, QuadrantMeetsBoth},
		{Point{MTBF: 240, MTTR: 2.6}, QuadrantMTBFOnly},
		{Point{MTBF: 140, MTTR: 1.5}, QuadrantMTTROnly},
		{Point{MTBF: 95, MTTR: 3.8}, QuadrantNeither},
	}
	for _, tt := range tests {
		if got := QuadrantOf(tt.p, targets); got != tt.want {
			t.Errorf("QuadrantOf(%+v) = %s, want %s", tt.p, got, tt.want)
		}
	}
}

func TestScatterDomain(t *testing.T) {
	targets := Targets{MTBF: 200, MTTR: 2}
	x, y := ScatterDomain(nil, targets)
	if x != (Domain{0, 230}) || y != (Domain{0, 3}) {
		t.Errorf("empty domains = %v, %v", x, y)
	}
	x, y = ScatterDomain([]Point{{MTBF: 95, MTTR: 0.3}, {MTBF: 280, MTTR: 3.8}}, targets)
	if x != (Domain{85, 310}) {
		t.Errorf("x = %v, want {85 310}", x)
	}
	if y.Min != 0 || !approx(y.Max, 4.6) {
		t.Errorf("y = %v, want {0 4.6}", y)
	}
}

func TestBars(t *testing.T) {
	machines := []model.Machine{
		{ID: "up", MTBFHours: 200, MTTRHours: 1, MTBFTrend: trend.Series{100, 100, 100, 100}, MTTRTrend: trend.Series{2, 2, 2, 2}},
		{ID: "down", MTBFHours: 50, MTTRHours: 3, MTBFTrend: trend.Series{100, 100, 100, 100}, MTTRTrend: trend.Series{2, 2, 2, 2}},
	}
	mtbf := Bars(machines, model.MetricMTBF)
	if !mtbf[0].Better || mtbf[1].Better {
		t.Errorf("mtbf better flags = %v, %v", mtbf[0].Better, mtbf[1].Better)
	}
	if mtbf[0].Hist != 100 {
		t.Errorf("hist = %v, want 100", mtbf[0].Hist)
	}
	mttr := Bars(machines, model.MetricMTTR)
	if !mttr[0].Better || mttr[1].Better {
		t.Errorf("mttr better flags = %v, %v", mttr[0].Better, mttr[1].Better)
	}
	fh, ok := FleetHist(mttr)
	if !ok || fh != 2 {
		t.Errorf("FleetHist = %v, %v", fh, ok)
	}
	if _, ok := FleetHist(nil); ok {
		t.Error("FleetHist(nil) ok = true")
	}
	if got := BarValues(mttr); len(got) != 4 || got[0] != 1 || got[1] != 2 {
		t.Errorf("BarValues = %v", got)
	}
}

func TestBarDomain(t *testing.T) {
	tests := []struct {
		name      string
		vals      []float64
		fleet     float64
		haveFleet bool
		want      Domain
	}{
		{"empty", nil, 0, false, Domain{0, 10}},
		// span = 50*1.2 = 60
		{"centred", []float64{150, 200, 100}, 150, true, Domain{90, 210}},
		{"floored at zero", []float64{0, 10}, 5, true, Domain{0, 11}},
		{"flat around fleet", []float64{100, 100}, 100, true, Domain{90, 110}},
		// pad = max(5, 100*0.15) = 15
		{"padded range", []float64{100, 200}, 0, false, Domain{85, 215}},
		{"minimum pad", []float64{10, 12}, 0, false, Domain{5, 17}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BarDomain(tt.vals, tt.fleet, tt.haveFleet)
			if !approx(got.Min, tt.want.Min) || !approx(got.Max, tt.want.Max) {
				t.Errorf("BarDomain = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWeeklyAverages(t *testing.T) {
	machines := []model.Machine{
		{MTBFTrend: trend.Series{100, 110, 120, 130}},
		{MTBFTrend: trend.Series{200, 210, 220, 231}},
	}
	got := WeeklyAverages(machines, model.MetricMTBF)
	want := [4]float64{150, 160, 170, 180.5}
	if got != want {
		t.Errorf("WeeklyAverages = %v, want %v", got, want)
	}
	if empty := WeeklyAverages(nil, model.MetricMTTR); empty != [4]float64{} {
		t.Errorf("WeeklyAverages(nil) = %v", empty)
	}
}

func TestSparklineDomain(t *testing.T) {
	if got := SparklineDomain([]float64{2, 2, 2, 2}); got != (Domain{1.5, 2.5}) {
		t.Errorf("flat small = %v", got)
	}
	if got := SparklineDomain([]float64{100, 100}); got != (Domain{95, 105}) {
		t.Errorf("flat large = %v", got)
	}
	got := SparklineDomain([]float64{10, 20})
	if !approx(got.Min, 9) || !approx(got.Max, 21) {
		t.Errorf("range = %v, want {9 21}", got)
	}
	got = SparklineDomain([]float64{1, 1.5})
	if !approx(got.Min, 0.9) || !approx(got.Max, 1.6) {
		t.Errorf("minimum pad = %v, want {0.9 1.6}", got)
	}
}

func TestThreshold(t *testing.T) {
	machines := []model.Machine{
		{ID: "605", MTBFHours: 260},
		{ID: "606", MTBFHours: 95},
		{ID: "608", MTBFHours: 140},
	}
	r := Threshold(machines, 150)
	if r.Average != 165 {
		t.Errorf("Average = %v, want 165", r.Average)
	}
	if len(r.Below) != 2 || r.Below[0] != "606" || r.Below[1] != "608" {
		t.Errorf("Below = %v", r.Below)
	}
	if r.Domain != (Domain{0, 300}) {
		t.Errorf("Domain = %v", r.Domain)
	}
	empty := Threshold(nil, 150)
	if empty.Average != 0 || len(empty.Below) != 0 || empty.Domain != (Domain{0, 190}) {
		t.Errorf("empty report = %+v", empty)
	}
}

func TestParseMetric(t *testing.T) {
	if m, err := ParseMetric("mttr"); err != nil || m != model.MetricMTTR {
		t.Errorf("ParseMetric(mttr) = %q, %v", m, err)
	}
	if _, err := ParseMetric("oee"); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("error = %v, want ErrUnknownMetric", err)
	}
}

func TestNewScatter(t *testing.T) {
	machines := []model.Machine{
		{ID: "S-101", Project: model.ProjectSubcom, MTBFHours: 260, MTTRHours: 1.2},
		{ID: "S-102", Project: model.ProjectSubcom, MTBFHours: 95, MTTRHours: 3.8},
		{ID: "I-201", Project: model.ProjectInHouse, MTBFHours: 240, MTTRHours: 0},
	}
	sc := NewScatter(machines, Targets{MTBF: 200, MTTR: 2})
	if len(sc.Points) != 3 {
		t.Fatalf("points = %d", len(sc.Points))
	}
	if sc.Points[2].Score != nil {
		t.Errorf("infinite score encoded as %v, want nil", *sc.Points[2].Score)
	}
	if sc.Points[0].Score == nil || !approx(*sc.Points[0].Score, 260/1.2) {
		t.Errorf("score = %v", sc.Points[0].Score)
	}
	if sc.Best == nil || sc.Best.MachineID != "I-201" {
		t.Errorf("best = %+v", sc.Best)
	}
	if sc.Worst == nil || sc.Worst.MachineID != "S-102" {
		t.Errorf("worst = %+v", sc.Worst)
	}
	if c := sc.Centroids[model.ProjectSubcom]; !approx(c.X, 177.5) || !approx(c.Y, 2.5) {
		t.Errorf("subcom centroid = %+v", c)
	}
	if sc.Points[1].Quadrant != QuadrantNeither {
		t.Errorf("S-102 quadrant = %s", sc.Points[1].Quadrant)
	}

	empty := NewScatter(nil, Targets{MTBF: 200, MTTR: 2})
	if empty.Best != nil || len(empty.Centroids) != 0 {
		t.Errorf("empty scatter = %+v", empty)
	}
}
