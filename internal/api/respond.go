package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/seantiz/mxm/internal/model"
	"github.com/seantiz/mxm/internal/session"
	"github.com/seantiz/mxm/internal/stats"
)

// writeJSON writes a JSON response with the given status code.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

// writeLookupError maps session lookup failures to 404 and anything else
// to 500.
func (s *Server) writeLookupError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrUnknownFleet),
		errors.Is(err, session.ErrUnknownMachine),
		errors.Is(err, session.ErrUnknownWorkOrder),
		errors.Is(err, session.ErrUnknownJob),
		errors.Is(err, session.ErrUnknownSubjob):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrUnknownList), errors.Is(err, stats.ErrUnknownMetric):
		s.writeError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// parseFloatQuery parses a float query parameter with a default value.
// NaN and infinities fall back to the default since JSON cannot carry them.
func parseFloatQuery(r *http.Request, key string, defaultVal float64) float64 {
	s := r.URL.Query().Get(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return defaultVal
	}
	return v
}

// parseProjects reads the project chips from repeated or comma separated
// project parameters.
func parseProjects(r *http.Request) ([]model.Project, error) {
	var out []model.Project
	for _, raw := range r.URL.Query()["project"] {
		for _, name := range strings.Split(raw, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			p, err := model.ParseProject(name)
			if err != nil {
				return nil, err
			}
			out = append(out, p)
		}
	}
	return out, nil
}

// parseMetric reads the metric parameter, defaulting to mtbf.
func parseMetric(r *http.Request) (model.Metric, error) {
	name := r.URL.Query().Get("metric")
	if name == "" {
		return model.MetricMTBF, nil
	}
	m, err := stats.ParseMetric(name)
	if err != nil {
		return "", fmt.Errorf("metric: %w", err)
	}
	return m, nil
}
