package parser

import (
	"strings"
	"testing"

	"github.com/dgallion1/docnum/internal/doctree"
)

func TestMarkdownParser_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

\begin{theorem}
Section A content.
\end{theorem}

### Subsection A1

Subsection A1 content, see \ref{x}.

## Section B

$$ e^{i\pi} = -1 $$
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes/doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "doc" {
		t.Errorf("expected title %q, got %q", "doc", doc.Title)
	}

	want := []struct {
		kind  doctree.Kind
		level int
		label string
	}{
		{doctree.KindHeading, 1, "Section A"},
		{doctree.KindEnvironment, 0, "Theorem"},
		{doctree.KindHeading, 2, "Subsection A1"},
		{doctree.KindReference, 0, ""},
		{doctree.KindHeading, 1, "Section B"},
		{doctree.KindEquation, 0, ""},
	}
	if len(doc.Nodes) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(doc.Nodes))
	}
	for i, w := range want {
		n := doc.Nodes[i]
		if n.Kind != w.kind || n.Level != w.level || n.Label != w.label {
			t.Errorf("node %d: expected %s/%d/%q, got %s/%d/%q", i, w.kind, w.level, w.label, n.Kind, n.Level, n.Label)
		}
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader("Just some text.\n"), "plain.markdown")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Nodes) != 0 {
		t.Errorf("expected no nodes, got %d", len(doc.Nodes))
	}
	if doc.Title != "plain" {
		t.Errorf("expected title %q, got %q", "plain", doc.Title)
	}
}
