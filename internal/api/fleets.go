package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seantiz/mxm/internal/mock"
	"github.com/seantiz/mxm/internal/model"
	"github.com/seantiz/mxm/internal/stats"
	"github.com/seantiz/mxm/internal/trend"
)

// machineView adds the formatted downtime shown in the table.
type machineView struct {
	model.Machine
	TimeDown string `json:"time_down"`
}

type machineListResponse struct {
	Fleet    string        `json:"fleet"`
	Machines []machineView `json:"machines"`
	Total    int           `json:"total"`
	Visible  int           `json:"visible"`
}

type barsResponse struct {
	Metric    model.Metric `json:"metric"`
	Bars      []stats.Bar  `json:"bars"`
	FleetHist *float64     `json:"fleet_hist"`
	Domain    stats.Domain `json:"domain"`
}

type sparklineResponse struct {
	Metric model.Metric           `json:"metric"`
	Weekly [trend.Periods]float64 `json:"weekly"`
	Domain stats.Domain           `json:"domain"`
}

func (s *Server) handleListFleets(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.session.Fleets())
}

// visibleMachines resolves the fleet in the path and applies the q and
// project filters. It writes the error response itself and reports false
// on failure.
func (s *Server) visibleMachines(w http.ResponseWriter, r *http.Request) ([]model.Machine, int, bool) {
	all, err := s.session.Machines(chi.URLParam(r, "fleet"))
	if err != nil {
		s.writeLookupError(w, r, err)
		return nil, 0, false
	}
	projects, err := parseProjects(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return nil, 0, false
	}
	return mock.Filter(all, r.URL.Query().Get("q"), projects), len(all), true
}

func (s *Server) handleListMachines(w http.ResponseWriter, r *http.Request) {
	machines, total, ok := s.visibleMachines(w, r)
	if !ok {
		return
	}
	views := make([]machineView, len(machines))
	for i, m := range machines {
		views[i] = machineView{Machine: m, TimeDown: mock.FormatDuration(m.TimeDownMinutes)}
	}
	s.writeJSON(w, http.StatusOK, machineListResponse{
		Fleet:    chi.URLParam(r, "fleet"),
		Machines: views,
		Total:    total,
		Visible:  len(views),
	})
}

func (s *Server) handleBars(w http.ResponseWriter, r *http.Request) {
	metric, err := parseMetric(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	machines, _, ok := s.visibleMachines(w, r)
	if !ok {
		return
	}

	bars := stats.Bars(machines, metric)
	resp := barsResponse{Metric: metric, Bars: bars}
	fh, have := stats.FleetHist(bars)
	if have {
		resp.FleetHist = &fh
	}
	resp.Domain = stats.BarDomain(stats.BarValues(bars), fh, have)
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSparkline(w http.ResponseWriter, r *http.Request) {
	metric, err := parseMetric(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	machines, _, ok := s.visibleMachines(w, r)
	if !ok {
		return
	}

	weekly := stats.WeeklyAverages(machines, metric)
	s.writeJSON(w, http.StatusOK, sparklineResponse{
		Metric: metric,
		Weekly: weekly,
		Domain: stats.SparklineDomain(weekly[:]),
	})
}

func (s *Server) handleScatter(w http.ResponseWriter, r *http.Request) {
	machines, _, ok := s.visibleMachines(w, r)
	if !ok {
		return
	}
	targets := s.session.Targets()
	targets.MTBF = parseFloatQuery(r, "mtbf_target", targets.MTBF)
	targets.MTTR = parseFloatQuery(r, "mttr_target", targets.MTTR)
	s.writeJSON(w, http.StatusOK, stats.NewScatter(machines, targets))
}

func (s *Server) handleThreshold(w http.ResponseWriter, r *http.Request) {
	machines, _, ok := s.visibleMachines(w, r)
	if !ok {
		return
	}
	hours := parseFloatQuery(r, "hours", s.session.ThresholdHours())
	s.writeJSON(w, http.StatusOK, stats.Threshold(machines, hours))
}
