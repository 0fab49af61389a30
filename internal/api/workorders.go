package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/seantiz/mxm/internal/mock"
	"github.com/seantiz/mxm/internal/model"
)

type workOrderListResponse struct {
	MachineID  string            `json:"machine_id"`
	WorkOrders []model.WorkOrder `json:"work_orders"`
	// DueThisWeek counts work orders falling due in the next seven days.
	DueThisWeek int `json:"due_this_week"`
}

const dueSoonWindow = 7 * 24 * time.Hour

type commentsResponse struct {
	Owner    string          `json:"owner"`
	Comments []model.Comment `json:"comments"`
}

func (s *Server) handleListWorkOrders(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	wos, err := s.session.WorkOrders(chi.URLParam(r, "fleet"), id)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	due := 0
	for _, wo := range wos {
		if mock.DueWithin(wo, s.session.Now(), dueSoonWindow) {
			due++
		}
	}
	s.writeJSON(w, http.StatusOK, workOrderListResponse{MachineID: id, WorkOrders: wos, DueThisWeek: due})
}

func (s *Server) handleWorkOrderComments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	thread, err := s.session.WorkOrderComments(r.Context(), id)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, commentsResponse{Owner: id, Comments: thread})
}
