// Package numbering assigns outline numbers to headings, theorem-like
// environments and display equations, builds the table of contents and
// resolves cross-references to the printed numbers.
//
// Run performs three passes over the flat node sequence of a fully
// assembled document: outline (headings, environments, contents), equations,
// and references. The passes do not modify the nodes; callers write the
// returned records back onto their own tree.
package numbering

import (
	"log/slog"

	"github.com/dgallion1/docnum/internal/doctree"
)

// Result holds everything the three passes produced for one document.
type Result struct {
	Outline    *Outline
	Equations  []EquationRecord
	References []Resolution

	equationAt  map[int]int
	referenceAt map[int]int
}

// Run numbers doc. Invoke it once per assembled document; running it again
// recomputes everything from scratch.
func Run(doc *doctree.Document, log *slog.Logger) *Result {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	nodes := doc.Nodes

	outline := NumberOutline(nodes)
	equations := NumberEquations(nodes)
	reg := NewRegistry(nodes, outline, equations)
	refs := Resolve(nodes, reg, log.With("document", doc.Title))

	r := &Result{
		Outline:     outline,
		Equations:   equations,
		References:  refs,
		equationAt:  make(map[int]int, len(equations)),
		referenceAt: make(map[int]int, len(refs)),
	}
	for i, eq := range equations {
		r.equationAt[eq.Position] = i
	}
	for i, ref := range refs {
		r.referenceAt[ref.Position] = i
	}
	return r
}

// Assignment returns the outline assignment of the node at pos.
func (r *Result) Assignment(pos int) (Assignment, bool) {
	if pos < 0 || pos >= len(r.Outline.Assignments) {
		return Assignment{}, false
	}
	a := r.Outline.Assignments[pos]
	return a, a.Assigned()
}

// Equation returns the equation record of the node at pos.
func (r *Result) Equation(pos int) (EquationRecord, bool) {
	i, ok := r.equationAt[pos]
	if !ok {
		return EquationRecord{}, false
	}
	return r.Equations[i], true
}

// Reference returns the resolution of the reference node at pos.
func (r *Result) Reference(pos int) (Resolution, bool) {
	i, ok := r.referenceAt[pos]
	if !ok {
		return Resolution{}, false
	}
	return r.References[i], true
}

// Unresolved lists the targets of references that fell back to the
// placeholder, in document order.
func (r *Result) Unresolved() []string {
	var out []string
	for _, ref := range r.References {
		if !ref.Resolved {
			out = append(out, ref.Target)
		}
	}
	return out
}
