package parser

import (
	"io"

	"github.com/dgallion1/docnum/internal/doctree"
	"github.com/dgallion1/docnum/internal/htmlpage"
)

// HTMLParser handles rendered HTML pages.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	page, err := htmlpage.Parse(r, baseTitle(filename))
	if err != nil {
		return nil, err
	}
	page.Classify()
	return page.Document, nil
}
