package mock

import (
	"fmt"

	"github.com/seantiz/mxm/internal/model"
	"github.com/seantiz/mxm/internal/seedrand"
	"github.com/seantiz/mxm/internal/trend"
)

// Fixture is the static part of a machine; trends are derived from it.
type Fixture struct {
	ID              string              `json:"machine_id"`
	Status          model.MachineStatus `json:"status"`
	Project         model.Project       `json:"project"`
	TimeDownMinutes int                 `json:"time_down_minutes"`
	MTBFHours       float64             `json:"mtbf_hours"`
	MTTRHours       float64             `json:"mttr_hours"`
}

func (f Fixture) validate() error {
	switch {
	case f.ID == "":
		return fmt.Errorf("machine id is empty")
	case !f.Status.Valid():
		return fmt.Errorf("machine %s: unknown status %q", f.ID, f.Status)
	case !f.Project.Valid():
		return fmt.Errorf("machine %s: unknown project %q", f.ID, f.Project)
	case f.TimeDownMinutes < 0:
		return fmt.Errorf("machine %s: negative time down", f.ID)
	case f.MTBFHours <= 0 || f.MTTRHours <= 0:
		return fmt.Errorf("machine %s: mtbf and mttr must be positive", f.ID)
	}
	return nil
}

// TrendOptions returns the synthesis preset for a metric of a machine in
// the given status.
func TrendOptions(status model.MachineStatus, metric model.Metric) trend.Options {
	switch status {
	case model.MachineRunning:
		if metric == model.MetricMTTR {
			return trend.RunningMTTR
		}
		return trend.RunningMTBF
	case model.MachineDown:
		if metric == model.MetricMTTR {
			return trend.DownMTTR
		}
		return trend.DownMTBF
	}
	return trend.Options{}
}

// TrendKey is the seed key for one metric series of one machine.
func TrendKey(seed, machineID string, project model.Project, metric model.Metric) string {
	key := fmt.Sprintf("%s-%s-%s", machineID, project, metric)
	if seed == "" {
		return key
	}
	return seed + "-" + key
}

// Machines expands fixtures into machines with synthesized trends. Output
// order follows the input.
func (g *Generator) Machines(seed string, fixtures []Fixture) ([]model.Machine, error) {
	out := make([]model.Machine, 0, len(fixtures))
	for _, f := range fixtures {
		if err := f.validate(); err != nil {
			return nil, err
		}
		out = append(out, model.Machine{
			ID:              f.ID,
			Status:          f.Status,
			Project:         f.Project,
			TimeDownMinutes: f.TimeDownMinutes,
			MTBFHours:       f.MTBFHours,
			MTTRHours:       f.MTTRHours,
			MTBFTrend: trend.Synthesize(f.MTBFHours,
				TrendKey(seed, f.ID, f.Project, model.MetricMTBF),
				TrendOptions(f.Status, model.MetricMTBF)),
			MTTRTrend: trend.Synthesize(f.MTTRHours,
				TrendKey(seed, f.ID, f.Project, model.MetricMTTR),
				TrendOptions(f.Status, model.MetricMTTR)),
		})
	}
	return out, nil
}

// Fleet draws n synthetic machine fixtures from seed. Roughly three in ten
// are down.
func (g *Generator) Fleet(seed string, n int) ([]Fixture, error) {
	if n < 0 {
		return nil, ErrInvalidCount
	}
	rng := seedrand.New(seed)
	out := make([]Fixture, 0, n)
	for i := 1; i <= n; i++ {
		status := model.MachineRunning
		if rng.Float64() < 0.3 {
			status = model.MachineDown
		}
		project, err := seedrand.PickOne(rng, g.Catalog.Projects)
		if err != nil {
			return nil, fmt.Errorf("fleet project: %w", err)
		}
		f := Fixture{
			ID:        fmt.Sprintf("M-%03d", i),
			Status:    status,
			Project:   project,
			MTBFHours: trend.Round1(80 + rng.Float64()*240),
			MTTRHours: trend.Round1(0.6 + rng.Float64()*4),
		}
		if status == model.MachineDown {
			f.TimeDownMinutes = 15 + rng.Intn(225)
		}
		out = append(out, f)
	}
	return out, nil
}
