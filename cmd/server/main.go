package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docnum/internal/api"
	"github.com/dgallion1/docnum/internal/config"
	"github.com/dgallion1/docnum/internal/htmlpage"
	"github.com/dgallion1/docnum/internal/include"
	"github.com/dgallion1/docnum/internal/pagestore"
	"github.com/dgallion1/docnum/internal/pipeline"
	"github.com/dgallion1/docnum/internal/render"
)

func main() {
	cfg := config.Load()
	level, _ := cfg.Level()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize the page server client, if configured.
	var (
		ps       *pagestore.Client
		expander *include.Expander
		fetcher  htmlpage.Fetcher
	)
	if cfg.PagesEnabled() {
		ps = pagestore.NewClient(cfg.PagesRootURL, cfg.PagesAPIKey, cfg.FetchTimeout, cfg.FetchRetries)
		if cfg.ResolveIncludes {
			expander = include.NewExpander(ps, cfg.IncludeMaxDepth, log.With("component", "include"))
			fetcher = ps
		}
	} else {
		log.Warn("PAGES_ROOT_URL not set: page inclusion and page jobs disabled")
	}
	renderer := render.NewRenderer(expander, fetcher, log.With("component", "render"))

	// Initialize pipeline.
	var orch *pipeline.Orchestrator
	if ps != nil {
		orch = pipeline.NewOrchestrator(cfg, ps, renderer, log)
		orch.Start(ctx)
	}

	// Initialize HTTP server.
	srv := api.NewServer(orch, renderer, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		if orch != nil {
			orch.Stop()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if ps != nil {
			ps.Close()
		}
	}()

	log.Info("starting docnum", "port", cfg.Port, "pages", cfg.PagesEnabled())
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
