package nlabmd

import (
	"bytes"
	"regexp"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var beginPattern = regexp.MustCompile(`^\\begin\{([A-Za-z]+)\}`)

// consumeLine advances past the rest of the current line, leaving the
// newline for the block parser loop.
func consumeLine(reader text.Reader) {
	line, _ := reader.PeekLine()
	n := len(line)
	if n > 0 && line[n-1] == '\n' {
		n--
	}
	reader.Advance(n)
}

// blockLine returns the current line from its first non-blank character.
func blockLine(reader text.Reader, pc parser.Context) []byte {
	line, _ := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 || pos >= len(line) {
		return nil
	}
	return line[pos:]
}

type environmentParser struct{}

func (p *environmentParser) Trigger() []byte { return []byte{'\\'} }

func (p *environmentParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	m := beginPattern.FindSubmatch(blockLine(reader, pc))
	if m == nil {
		return nil, parser.NoChildren
	}
	t, ok := LookupEnvironment(string(m[1]))
	if !ok {
		return nil, parser.NoChildren
	}
	consumeLine(reader)
	return &Environment{Env: t}, parser.HasChildren
}

func (p *environmentParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	env := node.(*Environment)
	line, _ := reader.PeekLine()
	if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), env.endTag()) {
		consumeLine(reader)
		return parser.Close
	}
	return parser.Continue | parser.HasChildren
}

func (p *environmentParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *environmentParser) CanInterruptParagraph() bool { return true }

func (p *environmentParser) CanAcceptIndentedLine() bool { return false }

var (
	dollarsOpen   = []byte("$$")
	bracketOpen   = []byte(`\[`)
	bracketClose  = []byte(`\]`)
	labelPattern  = regexp.MustCompile(`\\label\{(.*?)\}`)
	contentsToken = []byte(`\tableofcontents`)
)

// splitLabel removes \label{...} from display latex and returns the label.
func splitLabel(latex []byte) ([]byte, string) {
	m := labelPattern.FindSubmatch(latex)
	if m == nil {
		return latex, ""
	}
	return labelPattern.ReplaceAll(latex, nil), string(bytes.TrimSpace(m[1]))
}

type mathBlockParser struct{}

func (p *mathBlockParser) Trigger() []byte { return []byte{'$', '\\'} }

func (p *mathBlockParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line := blockLine(reader, pc)
	node := &MathBlock{}
	var body []byte
	switch {
	case bytes.HasPrefix(line, dollarsOpen):
		node.closer = dollarsOpen
		body = line[len(dollarsOpen):]
	case bytes.HasPrefix(line, bracketOpen):
		node.closer = bracketClose
		body = line[len(bracketOpen):]
	default:
		return nil, parser.NoChildren
	}
	if i := bytes.Index(body, node.closer); i >= 0 {
		node.Latex = append(node.Latex, body[:i]...)
		node.closed = true
	} else {
		node.Latex = append(node.Latex, body...)
	}
	consumeLine(reader)
	return node, parser.NoChildren
}

func (p *mathBlockParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	n := node.(*MathBlock)
	if n.closed {
		return parser.Close
	}
	line, _ := reader.PeekLine()
	if i := bytes.Index(line, n.closer); i >= 0 {
		n.Latex = append(n.Latex, line[:i]...)
		n.closed = true
		consumeLine(reader)
		return parser.Close
	}
	n.Latex = append(n.Latex, line...)
	consumeLine(reader)
	return parser.Continue | parser.NoChildren
}

func (p *mathBlockParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {
	n := node.(*MathBlock)
	latex, anchor := splitLabel(n.Latex)
	n.Latex = bytes.TrimSpace(latex)
	n.Anchor = anchor
}

func (p *mathBlockParser) CanInterruptParagraph() bool { return true }

func (p *mathBlockParser) CanAcceptIndentedLine() bool { return false }

type contentsParser struct{}

func (p *contentsParser) Trigger() []byte { return []byte{'\\'} }

func (p *contentsParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	if !bytes.HasPrefix(blockLine(reader, pc), contentsToken) {
		return nil, parser.NoChildren
	}
	consumeLine(reader)
	return &Contents{}, parser.NoChildren
}

func (p *contentsParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	return parser.Close
}

func (p *contentsParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *contentsParser) CanInterruptParagraph() bool { return true }

func (p *contentsParser) CanAcceptIndentedLine() bool { return false }
