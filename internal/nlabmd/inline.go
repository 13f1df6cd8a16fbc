package nlabmd

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

var (
	refPattern   = regexp.MustCompile(`^\\ref\{(.*?)\}`)
	labelCommand = regexp.MustCompile(`^\\label\{(.*?)\}`)
	eqRefPattern = regexp.MustCompile(`^eq:([^\s)]+)`)
	dollar       = []byte("$")
)

// commandParser handles \ref{...} and \label{...}.
type commandParser struct{}

func (p *commandParser) Trigger() []byte { return []byte{'\\'} }

func (p *commandParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if m := refPattern.FindSubmatch(line); m != nil {
		block.Advance(len(m[0]))
		return &Reference{Target: strings.TrimSpace(string(m[1]))}
	}
	if m := labelCommand.FindSubmatch(line); m != nil {
		block.Advance(len(m[0]))
		return &Label{Name: strings.TrimSpace(string(m[1]))}
	}
	return nil
}

// equationRefParser handles eq:name, which ends at whitespace or ')'. Inline
// parsers only fire on punctuation, spaces and line starts, so it triggers on
// the character before the reference and keeps that character as text.
type equationRefParser struct{}

func (p *equationRefParser) Trigger() []byte { return []byte{' ', '('} }

func (p *equationRefParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, segment := block.PeekLine()
	consumes := 0
	if len(line) > 0 && (line[0] == ' ' || line[0] == '(') {
		consumes = 1
		line = line[1:]
	}
	m := eqRefPattern.FindSubmatch(line)
	if m == nil {
		return nil
	}
	if consumes != 0 {
		ast.MergeOrAppendTextSegment(parent, segment.WithStop(segment.Start+consumes))
	}
	block.Advance(consumes + len(m[0]))
	return &Reference{Target: string(m[1])}
}

// mathParser handles $...$ and $$...$$ on a single line.
type mathParser struct{}

func (p *mathParser) Trigger() []byte { return []byte{'$'} }

func (p *mathParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	delim := dollar
	if bytes.HasPrefix(line, dollarsOpen) {
		delim = dollarsOpen
	}
	body := line[len(delim):]
	end := bytes.Index(body, delim)
	if end <= 0 {
		return nil
	}
	node := &Math{Display: len(delim) == 2}
	latex := body[:end]
	if node.Display {
		latex, node.Anchor = splitLabel(latex)
	}
	node.Latex = append([]byte(nil), bytes.TrimSpace(latex)...)
	block.Advance(2*len(delim) + end)
	return node
}
