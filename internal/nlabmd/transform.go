package nlabmd

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// labelTransformer gives each environment the first \label{...} found in
// its own body (nested environments keep theirs).
type labelTransformer struct{}

func (t *labelTransformer) Transform(doc *ast.Document, reader text.Reader, pc parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		label, ok := n.(*Label)
		if !ok {
			return ast.WalkContinue, nil
		}
		for p := label.Parent(); p != nil; p = p.Parent() {
			if env, ok := p.(*Environment); ok {
				if env.Anchor == "" {
					env.Anchor = label.Name
				}
				break
			}
		}
		return ast.WalkSkipChildren, nil
	})
}
