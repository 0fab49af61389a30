package stats

import (
	"math"

	"github.com/seantiz/mxm/internal/model"
)

// ScatterPoint is a Point annotated for the scatter chart.
type ScatterPoint struct {
	Point
	// Score is nil when the index is infinite.
	Score    *float64 `json:"score"`
	Quadrant Quadrant `json:"quadrant"`
	Outlier  bool     `json:"outlier"`
}

// Scatter is everything the scatter chart overlays on a machine set.
type Scatter struct {
	Targets   Targets                    `json:"targets"`
	Points    []ScatterPoint             `json:"points"`
	Best      *Point                     `json:"best,omitempty"`
	Worst     *Point                     `json:"worst,omitempty"`
	Centroids map[model.Project]Centroid `json:"centroids"`
	X         Domain                     `json:"x_domain"`
	Y         Domain                     `json:"y_domain"`
}

// NewScatter annotates machines against targets.
func NewScatter(machines []model.Machine, t Targets) Scatter {
	points := Points(machines)

	outliers := make(map[string]bool)
	for _, p := range Outliers(points) {
		outliers[p.MachineID] = true
	}

	sc := Scatter{
		Targets:   t,
		Points:    make([]ScatterPoint, len(points)),
		Centroids: make(map[model.Project]Centroid),
	}
	for i, p := range points {
		sp := ScatterPoint{Point: p, Quadrant: QuadrantOf(p, t), Outlier: outliers[p.MachineID]}
		if s := p.Score(); !math.IsInf(s, 0) {
			sp.Score = &s
		}
		sc.Points[i] = sp
	}

	if best, worst, ok := BestWorst(points); ok {
		sc.Best, sc.Worst = &best, &worst
	}
	for _, proj := range model.Projects {
		var group []Point
		for _, p := range points {
			if p.Project == proj {
				group = append(group, p)
			}
		}
		if c, ok := CentroidOf(group); ok {
			sc.Centroids[proj] = c
		}
	}
	sc.X, sc.Y = ScatterDomain(points, t)
	return sc
}
