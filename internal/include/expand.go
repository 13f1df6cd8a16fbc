// Package include expands [[!include name]] directives in page sources.
package include

import (
	"bytes"
	"context"
	"html"
	"log/slog"
	"regexp"
	"slices"
	"strings"
)

var directive = regexp.MustCompile(`\[\[\s*!include\s+([^\]]+?)\s*\]\]`)

// Source returns the source text of a named page.
type Source interface {
	GetSource(ctx context.Context, name string) ([]byte, error)
}

// Placeholder is the markup left where a page could not be included. The
// HTML front end can still fill it from the rendered page.
func Placeholder(name string) string {
	return `<div class="page_inclusion" data-page-to-include="` + html.EscapeString(name) + `"></div>`
}

// Expander inlines included pages so that numbering sees one assembled
// document.
type Expander struct {
	src      Source
	maxDepth int
	log      *slog.Logger
}

func NewExpander(src Source, maxDepth int, log *slog.Logger) *Expander {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Expander{src: src, maxDepth: maxDepth, log: log}
}

// HasDirectives reports whether src includes any other page.
func HasDirectives(src []byte) bool {
	return directive.Match(src)
}

// Expand replaces every include directive in src with the source of the
// named page, recursively up to the depth limit. Cycles and pages that
// cannot be fetched leave a placeholder.
func (e *Expander) Expand(ctx context.Context, src []byte) ([]byte, error) {
	x := &expansion{Expander: e, fetched: make(map[string][]byte)}
	return x.expand(ctx, src, nil)
}

type expansion struct {
	*Expander
	fetched map[string][]byte
}

func (x *expansion) expand(ctx context.Context, src []byte, stack []string) ([]byte, error) {
	matches := directive.FindAllSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, nil
	}

	var out bytes.Buffer
	last := 0
	for _, m := range matches {
		out.Write(src[last:m[0]])
		last = m[1]
		name := strings.TrimSpace(string(src[m[2]:m[3]]))

		if slices.Contains(stack, name) {
			x.log.Warn("include cycle", "page", name, "via", strings.Join(stack, " > "))
			out.WriteString(Placeholder(name))
			continue
		}
		if len(stack) >= x.maxDepth {
			x.log.Warn("include depth exceeded", "page", name, "max_depth", x.maxDepth)
			out.WriteString(Placeholder(name))
			continue
		}

		body, err := x.fetch(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			x.log.Warn("include failed", "page", name, "error", err)
			out.WriteString(Placeholder(name))
			continue
		}
		inner, err := x.expand(ctx, body, append(slices.Clone(stack), name))
		if err != nil {
			return nil, err
		}
		out.Write(inner)
	}
	out.Write(src[last:])
	return out.Bytes(), nil
}

func (x *expansion) fetch(ctx context.Context, name string) ([]byte, error) {
	if body, ok := x.fetched[name]; ok {
		return body, nil
	}
	body, err := x.src.GetSource(ctx, name)
	if err != nil {
		return nil, err
	}
	x.fetched[name] = body
	return body, nil
}
