package api

import (
	"net/http"

	"github.com/dgallion1/docnum/internal/stats"
)

type statsResponse struct {
	PagesEnabled bool            `json:"pages_enabled"`
	QueueDepth   int             `json:"queue_depth"`
	Jobs         int             `json:"jobs"`
	Renders      stats.Snapshot  `json:"renders"`
	PageRenders  *stats.Snapshot `json:"page_renders,omitempty"`
}

// handleStats reports queue state and render latencies over the last hour.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{
		PagesEnabled: s.orchestrator != nil,
		Renders:      s.renders.Snapshot(),
	}
	if s.orchestrator != nil {
		resp.QueueDepth = s.orchestrator.QueueDepth()
		resp.Jobs = s.orchestrator.JobCount()
		snap := s.orchestrator.RenderStats()
		resp.PageRenders = &snap
	}
	writeJSON(w, http.StatusOK, resp)
}
