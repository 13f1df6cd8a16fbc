package htmlpage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fetcher returns the rendered HTML of a named page.
type Fetcher interface {
	GetRendered(ctx context.Context, name string) ([]byte, error)
}

var (
	contentStart = []byte(`<span class="page_content_start"></span>`)
	contentEnd   = []byte(`<span class="page_content_end"></span>`)
)

// pageContent cuts the body of a rendered page out of its template.
func pageContent(page []byte) []byte {
	if i := bytes.Index(page, contentStart); i >= 0 {
		page = page[i+len(contentStart):]
	}
	if i := bytes.Index(page, contentEnd); i >= 0 {
		page = page[:i]
	}
	return page
}

// Splice fills every div.page_inclusion with the content of the page named
// by its data-page-to-include attribute. A page that cannot be fetched
// leaves its placeholder empty. Splice returns the number of pages spliced.
func (p *Page) Splice(ctx context.Context, fetch Fetcher, log *slog.Logger) (int, error) {
	var targets []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Div && hasClass(n, "page_inclusion") {
			targets = append(targets, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(p.Root)

	spliced := 0
	for _, div := range targets {
		name := getAttr(div, "data-page-to-include")
		if name == "" {
			continue
		}
		page, err := fetch.GetRendered(ctx, name)
		if err != nil {
			if ctx.Err() != nil {
				return spliced, ctx.Err()
			}
			log.Warn("page inclusion failed", "page", name, "error", err)
			continue
		}
		nodes, err := html.ParseFragment(bytes.NewReader(pageContent(page)), div)
		if err != nil {
			return spliced, fmt.Errorf("parse included page %s: %w", name, err)
		}
		for c := div.FirstChild; c != nil; c = div.FirstChild {
			div.RemoveChild(c)
		}
		for _, n := range nodes {
			div.AppendChild(n)
		}
		spliced++
	}
	return spliced, nil
}
