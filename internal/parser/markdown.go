package parser

import (
	"fmt"
	"io"

	"github.com/dgallion1/docnum/internal/doctree"
	"github.com/dgallion1/docnum/internal/nlabmd"
)

// MarkdownParser handles page sources using goldmark with the nlabmd
// extension.
type MarkdownParser struct{}

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*doctree.Document, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}
	return nlabmd.Parse(nlabmd.New(), baseTitle(filename), src).Document, nil
}
