package nlabmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docnum/internal/doctree"
	"github.com/dgallion1/docnum/internal/numbering"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Page is a parsed page source together with its flat node sequence.
type Page struct {
	Document *doctree.Document

	md       goldmark.Markdown
	root     ast.Node
	source   []byte
	handles  []ast.Node // parallel to Document.Nodes
	contents []*Contents
}

// Parse parses src and collects the nodes numbering cares about, in
// document order.
func Parse(md goldmark.Markdown, title string, src []byte) *Page {
	p := &Page{
		Document: &doctree.Document{Title: title},
		md:       md,
		source:   src,
	}
	p.root = md.Parser().Parse(text.NewReader(src))
	p.flatten()
	return p
}

func (p *Page) push(n *doctree.Node, handle ast.Node) {
	p.Document.Nodes = append(p.Document.Nodes, n)
	p.handles = append(p.handles, handle)
}

func (p *Page) flatten() {
	_ = ast.Walk(p.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			// "#" is the page title level; "##" is the first outline depth.
			if node.Level >= 2 {
				p.push(doctree.Heading(node.Level-1, headingText(node, p.source)), node)
			}
		case *Environment:
			if node.Env.Numbered() {
				p.push(doctree.Environment(node.Env.Title, node.Anchor), node)
			}
		case *MathBlock:
			p.push(doctree.Equation(node.Anchor), node)
		case *Math:
			if node.Display {
				p.push(doctree.Equation(node.Anchor), node)
			}
		case *Reference:
			p.push(doctree.Reference(node.Target), node)
		case *Contents:
			p.contents = append(p.contents, node)
		}
		return ast.WalkContinue, nil
	})
}

func headingText(h *ast.Heading, source []byte) string {
	var sb strings.Builder
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		case *Math:
			sb.WriteString("$" + string(t.Latex) + "$")
		default:
			sb.WriteString(headingInline(c, source))
		}
	}
	return strings.TrimSpace(sb.String())
}

func headingInline(n ast.Node, source []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			sb.Write(t.Segment.Value(source))
			continue
		}
		sb.WriteString(headingInline(c, source))
	}
	return sb.String()
}

// Apply writes the numbering result back onto the syntax tree.
func (p *Page) Apply(res *numbering.Result) {
	for pos, handle := range p.handles {
		switch n := handle.(type) {
		case *ast.Heading:
			a, ok := res.Assignment(pos)
			if !ok {
				continue
			}
			n.SetAttributeString("id", []byte(a.ID))
			prefix := ast.NewString([]byte(numbering.HeadingPrefix(a.Number)))
			if first := n.FirstChild(); first != nil {
				n.InsertBefore(n, first, prefix)
			} else {
				n.AppendChild(n, prefix)
			}
		case *Environment:
			if a, ok := res.Assignment(pos); ok {
				n.ID = a.ID
				n.Number = numbering.EnvironmentNumber(a.Number)
			}
		case *MathBlock:
			if eq, ok := res.Equation(pos); ok {
				n.Index = eq.Index
			}
		case *Math:
			if eq, ok := res.Equation(pos); ok {
				n.Index = eq.Index
			}
		case *Reference:
			if ref, ok := res.Reference(pos); ok {
				n.Shown = ref.Text
			}
		}
	}
	for _, c := range p.contents {
		c.TOC = res.Outline.TOC
	}
}

// Render writes the page as HTML.
func (p *Page) Render(w io.Writer) error {
	if err := p.md.Renderer().Render(w, p.source, p.root); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
