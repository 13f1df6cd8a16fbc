package numbering

import "github.com/dgallion1/docnum/internal/doctree"

// EquationRecord is the number of one display equation.
type EquationRecord struct {
	Position int    `json:"-" yaml:"-"`
	Index    int    `json:"index" yaml:"index"`
	NodeID   string `json:"id,omitempty" yaml:"id,omitempty"`
}

// Label is the visible tag placed before the equation, e.g. "(3)".
func (r EquationRecord) Label() string {
	return "(" + itoa(r.Index) + ")"
}

// NumberEquations numbers display equations 1, 2, 3, ... across the whole
// document. Sections do not reset the count.
func NumberEquations(nodes []*doctree.Node) []EquationRecord {
	var records []EquationRecord
	for pos, node := range nodes {
		if node.Kind != doctree.KindEquation {
			continue
		}
		records = append(records, EquationRecord{
			Position: pos,
			Index:    len(records) + 1,
			NodeID:   node.Anchor,
		})
	}
	return records
}
