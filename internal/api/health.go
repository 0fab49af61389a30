package api

import (
	"net/http"
	"time"

	"github.com/seantiz/mxm/internal/store"
)

type healthResponse struct {
	Status     string           `json:"status"`
	SessionNow time.Time        `json:"session_now"`
	Cache      store.CacheStats `json:"cache"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	st, err := s.session.CacheStats(r.Context())
	if err != nil {
		s.logger.Error("cache stats", "error", err)
		s.writeJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", SessionNow: s.session.Now()})
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", SessionNow: s.session.Now(), Cache: st})
}
