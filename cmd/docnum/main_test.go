package main

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docnum/internal/config"
	"github.com/dgallion1/docnum/internal/render"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("docnum %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

const page = "## Intro\n\n\\begin{lemma}\n\\label{l}\nX.\n\\end{lemma}\n\n### More\n\nBy \\ref{l}.\n"

func TestRenderCommand(t *testing.T) {
	path := writeTemp(t, "notes.md", page)
	out := execute(t, "render", path, "--pages", "", "--log-level", "error")
	for _, want := range []string{
		`<h2 id="section-1">1. Intro</h2>`,
		`<h3 id="section-1-1">1.1 More</h3>`,
		`href="#l">1.1</a>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestOutlineCommand_JSON(t *testing.T) {
	path := writeTemp(t, "notes.md", page)
	out := execute(t, "outline", path, "-o", "json", "--log-level", "error")

	var report struct {
		Title   string `json:"title"`
		Outline []struct {
			Kind   string `json:"kind"`
			Number string `json:"number"`
		} `json:"outline"`
	}
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid json %q: %v", out, err)
	}
	if report.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", report.Title)
	}
	if len(report.Outline) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(report.Outline))
	}
	if report.Outline[1].Kind != "environment" || report.Outline[1].Number != "1.1" {
		t.Errorf("unexpected environment entry %+v", report.Outline[1])
	}
}

func TestOutlineCommand_YAML(t *testing.T) {
	path := writeTemp(t, "page.html", `<h2>A</h2><h3>B</h3><h2>C</h2>`)
	out := execute(t, "outline", path, "-o", "yaml", "--log-level", "error")

	var report map[string]any
	if err := yaml.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("invalid yaml %q: %v", out, err)
	}
	if _, ok := report["html"]; ok {
		t.Error("expected no html in yaml report")
	}
	toc, ok := report["toc"].(map[string]any)
	if !ok {
		t.Fatalf("expected toc in report, got %v", report["toc"])
	}
	children, _ := toc["children"].([]any)
	if len(children) != 2 {
		t.Errorf("expected 2 top-level contents entries, got %d", len(children))
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	if err := writeOutput(&bytes.Buffer{}, "xml", struct{}{}); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestInputFormat(t *testing.T) {
	tests := []struct {
		path, flag, want string
	}{
		{"a.md", "", "markdown"},
		{"a.HTML", "", "html"},
		{"a.txt", "", "markdown"},
		{"a.md", "html", "html"},
	}
	for _, tt := range tests {
		got, err := inputFormat(tt.path, tt.flag)
		if err != nil || string(got) != tt.want {
			t.Errorf("inputFormat(%q, %q): expected %q, got %q (%v)", tt.path, tt.flag, tt.want, got, err)
		}
	}
}

func TestRendererFor_HonoursResolveIncludes(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("## Included\n"))
	}))
	defer srv.Close()

	src := []byte("## Main\n\n[[!include other]]\n")
	log := slog.New(slog.DiscardHandler)
	tests := []struct {
		resolve  bool
		included bool
	}{
		{resolve: false, included: false},
		{resolve: true, included: true},
	}
	for _, tt := range tests {
		hits.Store(0)
		cfg := config.Config{
			PagesRootURL:    srv.URL,
			ResolveIncludes: tt.resolve,
			IncludeMaxDepth: 4,
			FetchTimeout:    5 * time.Second,
			FetchRetries:    1,
		}
		r, closeFn := rendererFor(cfg, log)
		page, err := r.Render(context.Background(), render.FormatMarkdown, "main", src)
		closeFn()
		if err != nil {
			t.Fatalf("resolve=%v: unexpected error: %v", tt.resolve, err)
		}
		if got := strings.Contains(page.HTML, "Included"); got != tt.included {
			t.Errorf("resolve=%v: expected included=%v, got html %s", tt.resolve, tt.included, page.HTML)
		}
		if got := hits.Load() > 0; got != tt.resolve {
			t.Errorf("resolve=%v: expected page server hit=%v, got %d hits", tt.resolve, tt.resolve, hits.Load())
		}
	}
}
