package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgallion1/docnum/internal/render"
)

type renderRequest struct {
	Source string `json:"source"`
	Format string `json:"format"`
	Title  string `json:"title"`
}

// handleRender numbers and renders a page source sent in the request body.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			jsonError(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Source) == "" {
		jsonError(w, "source is required", http.StatusBadRequest)
		return
	}
	format, err := render.ParseFormat(req.Format)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	title := req.Title
	if title == "" {
		title = "untitled"
	}

	start := time.Now()
	page, err := s.renderer.Render(r.Context(), format, title, []byte(req.Source))
	if err != nil {
		s.log.Error("render failed", "title", title, "error", err)
		jsonError(w, "render failed: "+err.Error(), http.StatusInternalServerError)
		return
	}
	s.renders.Record(time.Since(start), len(page.Unresolved))
	writeJSON(w, http.StatusOK, page)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
