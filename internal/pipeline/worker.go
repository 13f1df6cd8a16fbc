package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docnum/internal/render"
	"github.com/dgallion1/docnum/internal/stats"
)

// Worker renders a single page job.
type Worker struct {
	source   PageSource
	renderer *render.Renderer
	renders  *stats.Window
	log      *slog.Logger
}

func NewWorker(source PageSource, renderer *render.Renderer, renders *stats.Window, log *slog.Logger) *Worker {
	return &Worker{
		source:   source,
		renderer: renderer,
		renders:  renders,
		log:      log,
	}
}

// Process fetches, numbers and renders the job's page.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "page", job.Page)

	// Phase 1: Fetch
	job.SetStatus(StatusFetching, "fetching")
	src, err := w.source.GetSource(ctx, job.Page)
	if err != nil {
		log.Error("fetch failed", "error", err)
		job.AddError(fmt.Sprintf("fetch: %s", err))
		job.SetStatus(StatusFailed, "fetching")
		return
	}
	job.SetContentHash(ContentHashHex(src))

	// Phase 2: Render (inclusions, numbering, HTML)
	job.SetStatus(StatusRendering, "rendering")
	start := time.Now()
	page, err := w.renderer.Markdown(ctx, job.Page, src)
	if err != nil {
		log.Error("render failed", "error", err)
		job.AddError(fmt.Sprintf("render: %s", err))
		job.SetStatus(StatusFailed, "rendering")
		return
	}
	job.SetResult(page)
	w.renders.Record(time.Since(start), len(page.Unresolved))
	log.Info("page rendered",
		"outline_entries", len(page.Outline),
		"equations", len(page.Equations),
		"unresolved", len(page.Unresolved),
	)

	if len(page.Unresolved) > 0 {
		job.SetStatus(StatusPartial, "done")
		return
	}
	job.SetStatus(StatusCompleted, "done")
}
