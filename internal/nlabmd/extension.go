// Package nlabmd extends goldmark with the page source language: theorem
// environments, display and inline math, \label, \ref and eq: references,
// and \tableofcontents.
package nlabmd

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

type extension struct{}

// Extension registers the parsers, transformer and renderer of this package.
var Extension goldmark.Extender = &extension{}

func (e *extension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(&environmentParser{}, 90),
			util.Prioritized(&mathBlockParser{}, 91),
			util.Prioritized(&contentsParser{}, 92),
		),
		parser.WithInlineParsers(
			util.Prioritized(&commandParser{}, 90),
			util.Prioritized(&mathParser{}, 91),
			util.Prioritized(&equationRefParser{}, 92),
		),
		parser.WithASTTransformers(
			util.Prioritized(&labelTransformer{}, 100),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(NewRenderer(), 500),
		),
	)
}

// New returns a goldmark instance for page sources. Raw HTML passes
// through: sanitising is left to the caller.
func New(opts ...goldmark.Option) goldmark.Markdown {
	opts = append([]goldmark.Option{
		goldmark.WithExtensions(Extension),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	}, opts...)
	return goldmark.New(opts...)
}
