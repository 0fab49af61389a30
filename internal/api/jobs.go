package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/seantiz/mxm/internal/mock"
	"github.com/seantiz/mxm/internal/model"
)

// jobView adds the progress figures shown on each job row.
type jobView struct {
	model.Job
	PercentStarted   int     `json:"percent_started"`
	TimelineProgress float64 `json:"timeline_progress"`
}

type jobListResponse struct {
	Active     []jobView `json:"active"`
	PastDue    []jobView `json:"past_due"`
	PastDueTTR int       `json:"past_due_ttr"`
}

func (s *Server) jobViews(jobs []model.Job) []jobView {
	now := s.session.Now()
	out := make([]jobView, len(jobs))
	for i, j := range jobs {
		out[i] = jobView{
			Job:              j,
			PercentStarted:   mock.PercentStarted(j.Subjobs),
			TimelineProgress: mock.TimelineProgress(j.TimelineStart, j.TimelineEnd, now),
		}
	}
	return out
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	active, pastDue := s.session.JobLists()
	s.writeJSON(w, http.StatusOK, jobListResponse{
		Active:     s.jobViews(active),
		PastDue:    s.jobViews(pastDue),
		PastDueTTR: mock.PastDueTTR(pastDue),
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	j, err := s.session.Job(chi.URLParam(r, "id"))
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.jobViews([]model.Job{j})[0])
}

func (s *Server) handleJobComments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	thread, err := s.session.JobComments(r.Context(), id)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, commentsResponse{Owner: id, Comments: thread})
}

func (s *Server) handleSubjobComments(w http.ResponseWriter, r *http.Request) {
	id, subID := chi.URLParam(r, "id"), chi.URLParam(r, "subID")
	thread, err := s.session.SubjobComments(r.Context(), id, subID)
	if err != nil {
		s.writeLookupError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, commentsResponse{Owner: subID, Comments: thread})
}
