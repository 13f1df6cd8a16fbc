package doctree

// Kind classifies a document node for numbering.
type Kind int

const (
	KindOther       Kind = iota // Ignored by numbering
	KindHeading                 // Outline heading, depth 1..5
	KindEnvironment             // Theorem/definition marker
	KindEquation                // Rendered display math
	KindReference               // Link whose text is a number
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindEnvironment:
		return "environment"
	case KindEquation:
		return "equation"
	case KindReference:
		return "reference"
	}
	return "other"
}

// MaxDepth is the deepest heading level that gets an outline number.
const MaxDepth = 5

// Node is one element of a document in document order.
type Node struct {
	Kind   Kind
	Level  int    // Heading depth (1 = top level); 0 otherwise
	Label  string // Heading text or environment title
	Anchor string // Author-supplied label (\label{...}), may be empty
	Target string // Reference target identifier
}

// Document is the flat, ordered node sequence of one page.
type Document struct {
	Title string
	Nodes []*Node
}

// Heading returns a heading node at the given depth.
func Heading(level int, label string) *Node {
	return &Node{Kind: KindHeading, Level: level, Label: label}
}

// Environment returns an environment marker.
func Environment(label, anchor string) *Node {
	return &Node{Kind: KindEnvironment, Label: label, Anchor: anchor}
}

// Equation returns a display math node.
func Equation(anchor string) *Node {
	return &Node{Kind: KindEquation, Anchor: anchor}
}

// Reference returns a reference link to target.
func Reference(target string) *Node {
	return &Node{Kind: KindReference, Target: target}
}
