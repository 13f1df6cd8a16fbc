// Package render assembles, numbers and renders a page end to end.
package render

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/dgallion1/docnum/internal/doctree"
	"github.com/dgallion1/docnum/internal/htmlpage"
	"github.com/dgallion1/docnum/internal/include"
	"github.com/dgallion1/docnum/internal/nlabmd"
	"github.com/dgallion1/docnum/internal/numbering"
	"github.com/yuin/goldmark"
)

// Format is the input format of a page.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat validates a format name. The empty string means markdown.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatMarkdown:
		return FormatMarkdown, nil
	case FormatHTML:
		return FormatHTML, nil
	}
	return "", fmt.Errorf("unknown format %q", s)
}

// OutlineEntry is one numbered heading or environment.
type OutlineEntry struct {
	Kind   string `json:"kind" yaml:"kind"`
	ID     string `json:"id" yaml:"id"`
	Number string `json:"number" yaml:"number"`
	Label  string `json:"label" yaml:"label"`
	Level  int    `json:"level,omitempty" yaml:"level,omitempty"`
}

// Page is the report of one numbered page.
type Page struct {
	Title      string                     `json:"title" yaml:"title"`
	HTML       string                     `json:"html,omitempty" yaml:"-"`
	TOC        *numbering.TOCNode         `json:"toc" yaml:"toc"`
	Outline    []OutlineEntry             `json:"outline" yaml:"outline"`
	Equations  []numbering.EquationRecord `json:"equations" yaml:"equations"`
	Unresolved []string                   `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

// Report summarises a numbering result without any rendered output.
func Report(doc *doctree.Document, res *numbering.Result) *Page {
	p := &Page{
		Title:      doc.Title,
		TOC:        res.Outline.TOC,
		Outline:    []OutlineEntry{},
		Equations:  res.Equations,
		Unresolved: res.Unresolved(),
	}
	if p.Equations == nil {
		p.Equations = []numbering.EquationRecord{}
	}
	for pos, node := range doc.Nodes {
		a, ok := res.Assignment(pos)
		if !ok {
			continue
		}
		entry := OutlineEntry{Kind: node.Kind.String(), ID: a.ID, Label: node.Label, Level: node.Level}
		if node.Kind == doctree.KindEnvironment {
			entry.Number = numbering.EnvironmentNumber(a.Number)
		} else {
			entry.Number = a.Number.String()
		}
		p.Outline = append(p.Outline, entry)
	}
	return p
}

// Outline numbers an already parsed document.
func Outline(doc *doctree.Document, log *slog.Logger) *Page {
	return Report(doc, numbering.Run(doc, log))
}

// Renderer renders pages. Inclusions are resolved when an expander (page
// sources) or fetcher (rendered pages) is configured.
type Renderer struct {
	md       goldmark.Markdown
	expander *include.Expander
	fetcher  htmlpage.Fetcher
	log      *slog.Logger
}

func NewRenderer(expander *include.Expander, fetcher htmlpage.Fetcher, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Renderer{
		md:       nlabmd.New(),
		expander: expander,
		fetcher:  fetcher,
		log:      log,
	}
}

// Render dispatches on format.
func (r *Renderer) Render(ctx context.Context, format Format, title string, src []byte) (*Page, error) {
	switch format {
	case FormatHTML:
		return r.HTML(ctx, title, src)
	case FormatMarkdown, "":
		return r.Markdown(ctx, title, src)
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// Markdown expands inclusions in a page source, then numbers and renders it.
func (r *Renderer) Markdown(ctx context.Context, title string, src []byte) (*Page, error) {
	if r.expander != nil && include.HasDirectives(src) {
		expanded, err := r.expander.Expand(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("expand inclusions: %w", err)
		}
		src = expanded
	}

	page := nlabmd.Parse(r.md, title, src)
	res := numbering.Run(page.Document, r.log)
	page.Apply(res)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return nil, err
	}
	out := Report(page.Document, res)
	out.HTML = buf.String()
	return out, nil
}

// HTML splices inclusions into a rendered page, then numbers it in place.
// A full document is returned whole; a fragment is returned as a fragment.
func (r *Renderer) HTML(ctx context.Context, title string, src []byte) (*Page, error) {
	page, err := htmlpage.Parse(bytes.NewReader(src), title)
	if err != nil {
		return nil, err
	}
	if r.fetcher != nil {
		if _, err := page.Splice(ctx, r.fetcher, r.log); err != nil {
			return nil, fmt.Errorf("splice inclusions: %w", err)
		}
	}
	page.Classify()
	res := numbering.Run(page.Document, r.log)
	page.Apply(res)

	var buf bytes.Buffer
	if isFullDocument(src) {
		err = page.Render(&buf)
	} else {
		err = page.RenderBody(&buf)
	}
	if err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	out := Report(page.Document, res)
	out.HTML = buf.String()
	return out, nil
}

func isFullDocument(src []byte) bool {
	head := src[:min(len(src), 1024)]
	return bytes.Contains(bytes.ToLower(head), []byte("<html"))
}
