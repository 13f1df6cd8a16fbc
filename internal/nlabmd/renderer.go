package nlabmd

import (
	"strconv"

	"github.com/dgallion1/docnum/internal/htmlpage"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
)

// Renderer prints the page source nodes as HTML. Math is left as
// span.latex elements for an external typesetter.
type Renderer struct{}

// NewRenderer returns a node renderer for the nodes of this package.
func NewRenderer() renderer.NodeRenderer {
	return &Renderer{}
}

func (r *Renderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindEnvironment, r.renderEnvironment)
	reg.Register(KindMathBlock, r.renderMathBlock)
	reg.Register(KindMath, r.renderMath)
	reg.Register(KindReference, r.renderReference)
	reg.Register(KindLabel, r.renderLabel)
	reg.Register(KindContents, r.renderContents)
}

func writeAttr(w util.BufWriter, name, value string) {
	_, _ = w.WriteString(" " + name + `="`)
	_, _ = w.Write(util.EscapeHTML([]byte(value)))
	_ = w.WriteByte('"')
}

func (r *Renderer) renderEnvironment(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*Environment)
	if !entering {
		_, _ = w.WriteString("</div>\n")
		return ast.WalkContinue, nil
	}
	class := n.Env.Class + "_environment"
	_, _ = w.WriteString("<div")
	writeAttr(w, "class", class)
	if n.Anchor != "" {
		writeAttr(w, "id", n.Anchor)
	}
	_, _ = w.WriteString(">\n<span")
	writeAttr(w, "class", class)
	if n.ID != "" {
		writeAttr(w, "id", n.ID)
		writeAttr(w, "theorem_number", n.Number)
	}
	_ = w.WriteByte('>')
	title := n.Env.Title
	if n.Number != "" {
		title += " " + n.Number
	}
	_, _ = w.Write(util.EscapeHTML([]byte(title)))
	_, _ = w.WriteString("</span>\n")
	return ast.WalkContinue, nil
}

// writeEquation prints the "(n)" tag followed by the latex span that carries
// the anchor and the equation number.
func writeEquation(w util.BufWriter, latex []byte, anchor string, index int) {
	if index > 0 {
		_, _ = w.WriteString(`<span class="equation">(` + strconv.Itoa(index) + ")</span>")
	}
	_, _ = w.WriteString("<span")
	writeAttr(w, "class", "latex")
	writeAttr(w, "data-latex", string(latex))
	writeAttr(w, "data-display-mode", "block")
	if anchor != "" {
		writeAttr(w, "id", anchor)
	}
	if index > 0 {
		writeAttr(w, "equation_number", strconv.Itoa(index))
	}
	_, _ = w.WriteString("></span>")
}

func (r *Renderer) renderMathBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*MathBlock)
	_, _ = w.WriteString(`<div class="equation_display">`)
	writeEquation(w, n.Latex, n.Anchor, n.Index)
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderMath(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Math)
	if n.Display {
		writeEquation(w, n.Latex, n.Anchor, n.Index)
		return ast.WalkSkipChildren, nil
	}
	_, _ = w.WriteString("<span")
	writeAttr(w, "class", "latex")
	writeAttr(w, "data-latex", string(n.Latex))
	_, _ = w.WriteString("></span>")
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderReference(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Reference)
	_, _ = w.WriteString("<a")
	writeAttr(w, "class", "environment_or_equation_reference")
	writeAttr(w, "href", "#"+n.Target)
	_ = w.WriteByte('>')
	_, _ = w.Write(util.EscapeHTML([]byte(n.Shown)))
	_, _ = w.WriteString("</a>")
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderLabel(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}

func (r *Renderer) renderContents(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*Contents)
	_, _ = w.WriteString(`<h2 id="contents_header">Contents</h2>` + "\n" + `<div id="table_of_contents">`)
	if n.TOC != nil {
		if err := html.Render(w, htmlpage.ContentsList(n.TOC)); err != nil {
			return ast.WalkStop, err
		}
	}
	_, _ = w.WriteString("</div>\n")
	return ast.WalkSkipChildren, nil
}
