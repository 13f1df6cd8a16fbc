package nlabmd

import (
	"strconv"

	"github.com/dgallion1/docnum/internal/numbering"
	"github.com/yuin/goldmark/ast"
)

// KindEnvironment is the NodeKind of Environment.
var KindEnvironment = ast.NewNodeKind("Environment")

// Environment is a \begin{name} ... \end{name} block. Its body is parsed as
// ordinary markdown children.
type Environment struct {
	ast.BaseBlock
	Env    EnvironmentType
	Anchor string // From \label{...} inside the body

	// Set by Apply.
	ID     string
	Number string
}

func (n *Environment) Kind() ast.NodeKind { return KindEnvironment }

func (n *Environment) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Name":   n.Env.Name,
		"Anchor": n.Anchor,
		"Number": n.Number,
	}, nil)
}

func (n *Environment) endTag() []byte {
	return []byte(`\end{` + n.Env.Name + `}`)
}

// KindMathBlock is the NodeKind of MathBlock.
var KindMathBlock = ast.NewNodeKind("MathBlock")

// MathBlock is display math opened by $$ or \[ at the start of a line.
type MathBlock struct {
	ast.BaseBlock
	Latex  []byte
	Anchor string

	closer []byte
	closed bool

	// Set by Apply.
	Index int
}

func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }

func (n *MathBlock) IsRaw() bool { return true }

func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Latex":  string(n.Latex),
		"Anchor": n.Anchor,
		"Index":  strconv.Itoa(n.Index),
	}, nil)
}

// KindMath is the NodeKind of Math.
var KindMath = ast.NewNodeKind("Math")

// Math is $...$ (inline) or $$...$$ (display) inside a paragraph.
type Math struct {
	ast.BaseInline
	Latex   []byte
	Display bool
	Anchor  string

	// Set by Apply for display math.
	Index int
}

func (n *Math) Kind() ast.NodeKind { return KindMath }

func (n *Math) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"Latex":   string(n.Latex),
		"Display": strconv.FormatBool(n.Display),
	}, nil)
}

// KindReference is the NodeKind of Reference.
var KindReference = ast.NewNodeKind("Reference")

// Reference is \ref{target} or eq:target. Its text is the target's number.
type Reference struct {
	ast.BaseInline
	Target string

	// Set by Apply.
	Shown string
}

func (n *Reference) Kind() ast.NodeKind { return KindReference }

func (n *Reference) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Target": n.Target, "Shown": n.Shown}, nil)
}

// KindLabel is the NodeKind of Label.
var KindLabel = ast.NewNodeKind("Label")

// Label is \label{name}. It names the enclosing environment and prints
// nothing.
type Label struct {
	ast.BaseInline
	Name string
}

func (n *Label) Kind() ast.NodeKind { return KindLabel }

func (n *Label) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Name": n.Name}, nil)
}

// KindContents is the NodeKind of Contents.
var KindContents = ast.NewNodeKind("Contents")

// Contents marks where \tableofcontents puts the table of contents.
type Contents struct {
	ast.BaseBlock

	// Set by Apply.
	TOC *numbering.TOCNode
}

func (n *Contents) Kind() ast.NodeKind { return KindContents }

func (n *Contents) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, nil, nil)
}
