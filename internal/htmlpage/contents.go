package htmlpage

import (
	"github.com/dgallion1/docnum/internal/numbering"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// ContentsList renders a table of contents as an ordered list. Each entry
// links to its section; sub-entries go in a nested list created on first use.
func ContentsList(root *numbering.TOCNode) *html.Node {
	ol := element(atom.Ol)
	for _, entry := range root.Children {
		ol.AppendChild(contentsItem(entry))
	}
	return ol
}

func contentsItem(entry *numbering.TOCNode) *html.Node {
	li := element(atom.Li, attr("id", "table_of_contents_"+entry.ID))
	a := element(atom.A, attr("href", "#"+entry.ID))
	a.AppendChild(&html.Node{Type: html.TextNode, Data: entry.Label})
	li.AppendChild(a)
	if len(entry.Children) > 0 {
		ul := element(atom.Ul, attr("id", "table_of_contents_"+entry.ID+"_list"))
		for _, c := range entry.Children {
			ul.AppendChild(contentsItem(c))
		}
		li.AppendChild(ul)
	}
	return li
}
