// Package htmlpage numbers an already rendered HTML page: it finds headings,
// environment titles, display equations and reference links in the DOM,
// runs the numbering passes and writes the results back into the DOM.
package htmlpage

import (
	"fmt"
	"io"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/dgallion1/docnum/internal/doctree"
	"github.com/dgallion1/docnum/internal/numbering"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Page is a parsed HTML page.
type Page struct {
	Root     *html.Node
	Document *doctree.Document

	handles  []*html.Node // parallel to Document.Nodes
	contents []*html.Node
}

// Parse reads an HTML page. Call Classify once the page is complete
// (after Splice, if inclusions are resolved).
func Parse(r io.Reader, title string) (*Page, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	if t := findTitle(root); t != "" {
		title = t
	}
	return &Page{Root: root, Document: &doctree.Document{Title: title}}, nil
}

// Classify collects the numbered elements in document order.
func (p *Page) Classify() {
	p.Document.Nodes = nil
	p.handles = nil
	p.contents = nil

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			p.classify(n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(p.Root)
}

func (p *Page) push(node *doctree.Node, n *html.Node) {
	p.Document.Nodes = append(p.Document.Nodes, node)
	p.handles = append(p.handles, n)
}

func (p *Page) classify(n *html.Node) {
	switch n.DataAtom {
	case atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		if getAttr(n, "id") == "contents_header" {
			return
		}
		p.push(doctree.Heading(headingLevel(n.DataAtom), textContent(n)), n)
	case atom.Span:
		switch {
		case hasClass(n, "theorem_environment"), hasClass(n, "definition_environment"):
			anchor := ""
			if parent := n.Parent; parent != nil && parent.DataAtom == atom.Div {
				anchor = getAttr(parent, "id")
			}
			p.push(doctree.Environment(textContent(n), anchor), n)
		case hasClass(n, "katex-display"):
			anchor := ""
			if n.Parent != nil {
				anchor = getAttr(n.Parent, "id")
			}
			p.push(doctree.Equation(anchor), n)
		case hasClass(n, "latex") && getAttr(n, "data-display-mode") == "block" && !containsClass(n, "katex-display"):
			p.push(doctree.Equation(getAttr(n, "id")), n)
		}
	case atom.A:
		if hasClass(n, "environment_or_equation_reference") {
			p.push(doctree.Reference(fragment(getAttr(n, "href"))), n)
		}
	case atom.Div:
		if getAttr(n, "id") == "table_of_contents" {
			p.contents = append(p.contents, n)
		}
	}
}

// headingLevel maps h2..h6 to outline depths 1..5.
func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H2:
		return 1
	case atom.H3:
		return 2
	case atom.H4:
		return 3
	case atom.H5:
		return 4
	case atom.H6:
		return 5
	}
	return 0
}

func fragment(href string) string {
	if u, err := url.Parse(href); err == nil && u.Fragment != "" {
		return u.Fragment
	}
	if i := strings.IndexByte(href, '#'); i >= 0 {
		return href[i+1:]
	}
	return href
}

// Apply writes ids, numbers, equation tags, reference texts and the table
// of contents into the DOM.
func (p *Page) Apply(res *numbering.Result) {
	for pos, n := range p.handles {
		switch p.Document.Nodes[pos].Kind {
		case doctree.KindHeading:
			a, ok := res.Assignment(pos)
			if !ok {
				continue
			}
			setAttr(n, "id", a.ID)
			prefix := &html.Node{Type: html.TextNode, Data: numbering.HeadingPrefix(a.Number)}
			n.InsertBefore(prefix, n.FirstChild)
		case doctree.KindEnvironment:
			a, ok := res.Assignment(pos)
			if !ok {
				continue
			}
			number := numbering.EnvironmentNumber(a.Number)
			setAttr(n, "id", a.ID)
			setAttr(n, "theorem_number", number)
			n.AppendChild(&html.Node{Type: html.TextNode, Data: " " + number})
		case doctree.KindEquation:
			eq, ok := res.Equation(pos)
			if !ok {
				continue
			}
			holder := n
			if hasClass(n, "katex-display") && n.Parent != nil {
				holder = n.Parent
			}
			setAttr(holder, "equation_number", strconv.Itoa(eq.Index))
			if n.Parent != nil {
				tag := element(atom.Span, attr("class", "equation"))
				tag.AppendChild(&html.Node{Type: html.TextNode, Data: eq.Label()})
				n.Parent.InsertBefore(tag, n)
			}
		case doctree.KindReference:
			ref, ok := res.Reference(pos)
			if !ok {
				continue
			}
			for c := n.FirstChild; c != nil; c = n.FirstChild {
				n.RemoveChild(c)
			}
			n.AppendChild(&html.Node{Type: html.TextNode, Data: ref.Text})
		}
	}
	for _, c := range p.contents {
		c.AppendChild(ContentsList(res.Outline.TOC))
	}
}

// Render writes the whole page.
func (p *Page) Render(w io.Writer) error {
	return html.Render(w, p.Root)
}

// RenderBody writes only the children of <body>.
func (p *Page) RenderBody(w io.Writer) error {
	body := findElement(p.Root, atom.Body)
	if body == nil {
		return p.Render(w)
	}
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, attr(key, val))
}

func hasClass(n *html.Node, class string) bool {
	return slices.Contains(strings.Fields(getAttr(n, "class")), class)
}

func containsClass(n *html.Node, class string) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (hasClass(c, class) || containsClass(c, class)) {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(buf.String())
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func findTitle(n *html.Node) string {
	if t := findElement(n, atom.Title); t != nil {
		return textContent(t)
	}
	return ""
}
