package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dgallion1/docnum/internal/pipeline"
	"github.com/go-chi/chi/v5"
)

// handlePageRender queues an asynchronous render of a page held by the
// page server.
func (s *Server) handlePageRender(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		jsonError(w, "page server not configured", http.StatusServiceUnavailable)
		return
	}
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" {
		jsonError(w, "page name is required", http.StatusBadRequest)
		return
	}

	job := pipeline.NewJob(name)
	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"page":     job.Page,
		"status":   pipeline.StatusQueued,
		"poll_url": fmt.Sprintf("/api/jobs/%s", job.ID),
	})
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	if s.orchestrator == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}
