package nlabmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgallion1/docnum/internal/doctree"
	"github.com/dgallion1/docnum/internal/numbering"
	"github.com/yuin/goldmark/ast"
)

const samplePage = `# Page

\tableofcontents

## Intro

\begin{lemma}
\label{key}
Everything holds.
\end{lemma}

### Details

$$
a = b \label{first}
$$

## Results

See \ref{key} and (eq:first) and \ref{missing}.

\begin{proof}
Trivial.
\end{proof}
`

func renderPage(t *testing.T, src string) (*Page, *numbering.Result, string) {
	t.Helper()
	p := Parse(New(), "Page", []byte(src))
	res := numbering.Run(p.Document, nil)
	p.Apply(res)
	var buf bytes.Buffer
	if err := p.Render(&buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return p, res, buf.String()
}

func TestParse_CollectsNodesInOrder(t *testing.T) {
	p := Parse(New(), "Page", []byte(samplePage))

	want := []struct {
		kind   doctree.Kind
		level  int
		label  string
		anchor string
		target string
	}{
		{kind: doctree.KindHeading, level: 1, label: "Intro"},
		{kind: doctree.KindEnvironment, label: "Lemma", anchor: "key"},
		{kind: doctree.KindHeading, level: 2, label: "Details"},
		{kind: doctree.KindEquation, anchor: "first"},
		{kind: doctree.KindHeading, level: 1, label: "Results"},
		{kind: doctree.KindReference, target: "key"},
		{kind: doctree.KindReference, target: "first"},
		{kind: doctree.KindReference, target: "missing"},
	}
	nodes := p.Document.Nodes
	if len(nodes) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(nodes))
	}
	for i, w := range want {
		n := nodes[i]
		if n.Kind != w.kind || n.Level != w.level || n.Label != w.label || n.Anchor != w.anchor || n.Target != w.target {
			t.Errorf("node %d: expected %+v, got %+v", i, w, *n)
		}
	}
	if len(p.contents) != 1 {
		t.Errorf("expected one table of contents, got %d", len(p.contents))
	}
}

func TestRender_NumbersAndReferences(t *testing.T) {
	_, res, out := renderPage(t, samplePage)

	for _, want := range []string{
		`<h1>Page</h1>`,
		`<h2 id="section-1">1. Intro</h2>`,
		`<div class="theorem_environment" id="key">`,
		`<span class="theorem_environment" id="theorem1.1" theorem_number="1.1">Lemma 1.1</span>`,
		`<h3 id="section-1-1">1.1 Details</h3>`,
		`<div class="equation_display"><span class="equation">(1)</span><span class="latex" data-latex="a = b" data-display-mode="block" id="first" equation_number="1"></span></div>`,
		`<h2 id="section-2">2. Results</h2>`,
		`<a class="environment_or_equation_reference" href="#key">1.1</a>`,
		`(<a class="environment_or_equation_reference" href="#first">1</a>)`,
		`<a class="environment_or_equation_reference" href="#missing">?</a>`,
		`<span class="proof_environment">Proof</span>`,
		`<h2 id="contents_header">Contents</h2>`,
		`<li id="table_of_contents_section-1"><a href="#section-1">Intro</a><ul id="table_of_contents_section-1_list"><li id="table_of_contents_section-1-1"><a href="#section-1-1">Details</a></li></ul></li>`,
		`<li id="table_of_contents_section-2"><a href="#section-2">Results</a></li>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n---\n%s", want, out)
		}
	}
	if strings.Contains(out, `\label`) {
		t.Errorf("expected labels to be stripped from output:\n%s", out)
	}

	unresolved := res.Unresolved()
	if len(unresolved) != 1 || unresolved[0] != "missing" {
		t.Errorf("expected [missing] unresolved, got %v", unresolved)
	}
}

func TestRender_InlineDisplayMath(t *testing.T) {
	src := "## One\n\nWe have $$x^2 \\label{sq}$$ and $y$.\n\nBy eq:sq we are done.\n"
	_, _, out := renderPage(t, src)

	for _, want := range []string{
		`<span class="equation">(1)</span><span class="latex" data-latex="x^2" data-display-mode="block" id="sq" equation_number="1"></span>`,
		`<span class="latex" data-latex="y"></span>`,
		`By <a class="environment_or_equation_reference" href="#sq">1</a> we are done.`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n---\n%s", want, out)
		}
	}
}

func TestRender_BracketMathAndDefinitions(t *testing.T) {
	src := `## Basics

\begin{definition}
A thing.
\end{definition}

\begin{definition}
\label{other}
Another thing.
\end{definition}

\[ e = mc^2 \]

\[ f = g \]
`
	p, _, out := renderPage(t, src)

	if got := len(p.Document.Nodes); got != 5 {
		t.Fatalf("expected 5 nodes, got %d", got)
	}
	for _, want := range []string{
		`<span class="definition_environment" id="theorem1.1" theorem_number="1.1">Definition 1.1</span>`,
		`<div class="definition_environment" id="other">`,
		`theorem_number="1.2">Definition 1.2</span>`,
		`data-latex="e = mc^2" data-display-mode="block" equation_number="1"`,
		`data-latex="f = g" data-display-mode="block" equation_number="2"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\n---\n%s", want, out)
		}
	}
}

func TestRender_UnknownEnvironmentIsText(t *testing.T) {
	src := "\\begin{nonsense}\nbody\n\\end{nonsense}\n"
	p, _, out := renderPage(t, src)
	if len(p.Document.Nodes) != 0 {
		t.Fatalf("expected no nodes, got %d", len(p.Document.Nodes))
	}
	if strings.Contains(out, "_environment") {
		t.Errorf("expected no environment markup, got %s", out)
	}
}

func TestLookupEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		numbered bool
	}{
		{"thm", "Theorem", true},
		{"lemma", "Lemma", true},
		{"rmk", "Remark", true},
		{"proof", "Proof", false},
	}
	for _, tt := range tests {
		et, ok := LookupEnvironment(tt.name)
		if !ok {
			t.Fatalf("expected %q to be known", tt.name)
		}
		if et.Title != tt.title {
			t.Errorf("%s: expected title %q, got %q", tt.name, tt.title, et.Title)
		}
		if et.Numbered() != tt.numbered {
			t.Errorf("%s: expected numbered=%v", tt.name, tt.numbered)
		}
	}
	if _, ok := LookupEnvironment("nonsense"); ok {
		t.Error("expected unknown environment")
	}
}

func TestHeadingText_KeepsInlineMarkup(t *testing.T) {
	p := Parse(New(), "Page", []byte("## The *big* $x$ case\n"))
	if len(p.Document.Nodes) != 1 {
		t.Fatalf("expected 1 node, got %d", len(p.Document.Nodes))
	}
	if got := p.Document.Nodes[0].Label; got != "The big $x$ case" {
		t.Errorf("expected %q, got %q", "The big $x$ case", got)
	}
}

var (
	_ ast.Node = (*Environment)(nil)
	_ ast.Node = (*MathBlock)(nil)
	_ ast.Node = (*Math)(nil)
	_ ast.Node = (*Reference)(nil)
	_ ast.Node = (*Label)(nil)
	_ ast.Node = (*Contents)(nil)
)

func TestApply_SetsEnvironmentAndReferenceNodes(t *testing.T) {
	p, _, _ := renderPage(t, samplePage)
	var envs []*Environment
	var refs []*Reference
	_ = ast.Walk(p.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *Environment:
			envs = append(envs, node)
		case *Reference:
			refs = append(refs, node)
		}
		return ast.WalkContinue, nil
	})
	if len(envs) != 2 {
		t.Fatalf("expected 2 environments, got %d", len(envs))
	}
	if envs[0].Env.Name != "lemma" || envs[0].Anchor != "key" || envs[0].Number != "1.1" {
		t.Errorf("unexpected lemma node %+v", envs[0])
	}
	if envs[1].Env.Name != "proof" || envs[1].Number != "" {
		t.Errorf("unexpected proof node %+v", envs[1])
	}
	if envs[0].Type() != ast.TypeBlock {
		t.Errorf("expected environment to be a block node")
	}

	want := []string{"1.1", "1", "?"}
	if len(refs) != len(want) {
		t.Fatalf("expected %d references, got %d", len(want), len(refs))
	}
	for i, w := range want {
		if refs[i].Shown != w {
			t.Errorf("reference %d: expected %q, got %q", i, w, refs[i].Shown)
		}
		if refs[i].Type() != ast.TypeInline {
			t.Errorf("reference %d: expected inline node", i)
		}
	}
}
