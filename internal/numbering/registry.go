package numbering

import (
	"strconv"

	"github.com/dgallion1/docnum/internal/doctree"
)

// Record is what a reference can resolve to.
type Record struct {
	Kind     doctree.Kind
	Position int
	Number   Number // headings and environments
	Equation int    // equations
}

// Text is the printed form used as reference text. Only environments and
// equations have one.
func (r Record) Text() string {
	switch r.Kind {
	case doctree.KindEnvironment:
		return EnvironmentNumber(r.Number)
	case doctree.KindEquation:
		return itoa(r.Equation)
	}
	return ""
}

// Registry maps identifiers to the records the numbering passes produced.
type Registry map[string]Record

// NewRegistry indexes every identifier from the outline and equation passes
// in document order. Environments are reachable by their assigned id and by
// their author label. When two nodes share an identifier the earlier one
// wins, as an id lookup in the rendered page would.
func NewRegistry(nodes []*doctree.Node, outline *Outline, equations []EquationRecord) Registry {
	reg := make(Registry)
	eqAt := make(map[int]EquationRecord, len(equations))
	for _, eq := range equations {
		eqAt[eq.Position] = eq
	}
	for pos, node := range nodes {
		if eq, ok := eqAt[pos]; ok {
			reg.add(eq.NodeID, Record{Kind: doctree.KindEquation, Position: pos, Equation: eq.Index})
			continue
		}
		a := outline.Assignments[pos]
		if !a.Assigned() {
			continue
		}
		rec := Record{Kind: node.Kind, Position: pos, Number: a.Number}
		reg.add(a.ID, rec)
		if rec.Kind == doctree.KindEnvironment {
			reg.add(node.Anchor, rec)
		}
	}
	return reg
}

func (r Registry) add(id string, rec Record) {
	if id == "" {
		return
	}
	if _, ok := r[id]; ok {
		return
	}
	r[id] = rec
}

func itoa(n int) string { return strconv.Itoa(n) }
