package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docnum/internal/config"
	"github.com/dgallion1/docnum/internal/include"
	"github.com/dgallion1/docnum/internal/pagestore"
	"github.com/dgallion1/docnum/internal/render"
)

var (
	outputFormat string
	logLevel     string
	pagesURL     string
)

var rootCmd = &cobra.Command{
	Use:   "docnum",
	Short: "Number headings, theorems and equations and resolve cross-references",
	Long: `docnum numbers the sections, theorem-like environments and display
equations of a page, builds its table of contents and replaces every
cross-reference with the number of its target.

Inputs may be page sources (markdown with \begin{thm}, $$...$$, \ref{},
eq: and [[!include]]) or already rendered HTML pages.`,
	Version:      version,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format for reports: yaml or json",
	)
	rootCmd.PersistentFlags().StringVar(
		&logLevel, "log-level", "warn", "log level: debug, info, warn or error",
	)
	rootCmd.PersistentFlags().StringVar(
		&pagesURL, "pages", "", "page server URL for inclusions (default: $PAGES_ROOT_URL)",
	)

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(outlineCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger writes diagnostics such as unresolved references to stderr.
func newLogger() (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// newRenderer wires the page server into the renderer when one is
// configured by flag or environment.
func newRenderer(log *slog.Logger) (*render.Renderer, func()) {
	cfg := config.Load()
	if pagesURL != "" {
		cfg.PagesRootURL = pagesURL
	}
	return rendererFor(cfg, log)
}

// rendererFor resolves inclusions only when a page server is configured and
// RESOLVE_INCLUDES is on.
func rendererFor(cfg config.Config, log *slog.Logger) (*render.Renderer, func()) {
	if !cfg.PagesEnabled() || !cfg.ResolveIncludes {
		return render.NewRenderer(nil, nil, log), func() {}
	}
	ps := pagestore.NewClient(cfg.PagesRootURL, cfg.PagesAPIKey, cfg.FetchTimeout, cfg.FetchRetries)
	expander := include.NewExpander(ps, cfg.IncludeMaxDepth, log)
	return render.NewRenderer(expander, ps, log), ps.Close
}
