package numbering

import "github.com/dgallion1/docnum/internal/doctree"

// Assignment is the identifier and number given to a heading or
// environment. Environments get a (section, index) pair. Heading numbers
// are in printed form; the raw counter path survives only in the ID.
type Assignment struct {
	ID     string `json:"id" yaml:"id"`
	Number Number `json:"number" yaml:"number"`
}

// Assigned reports whether the node was classified by the outline pass.
func (a Assignment) Assigned() bool { return a.ID != "" }

// Outline is the output of the heading/environment pass.
type Outline struct {
	// Assignments is parallel to the document nodes.
	Assignments []Assignment
	TOC         *TOCNode
}

// walkContext is the counter state of one outline walk.
type walkContext struct {
	counters     [doctree.MaxDepth]int
	environments int
}

// path returns counters[0..i] as a fresh Number.
func (w *walkContext) path(i int) Number {
	return append(Number(nil), w.counters[:i+1]...)
}

// NumberOutline numbers headings and environments in document order and
// builds the table of contents in the same walk.
func NumberOutline(nodes []*doctree.Node) *Outline {
	out := &Outline{Assignments: make([]Assignment, len(nodes))}
	toc := newTOCBuilder()
	var w walkContext

	for pos, node := range nodes {
		switch node.Kind {
		case doctree.KindEnvironment:
			w.environments++
			section := w.counters[0]
			out.Assignments[pos] = Assignment{
				ID:     EnvironmentID(section, w.environments),
				Number: Number{section, w.environments},
			}

		case doctree.KindHeading:
			if node.Level < 1 || node.Level > doctree.MaxDepth {
				continue
			}
			i := node.Level - 1
			if i == 0 {
				w.counters[0]++
				for j := 1; j < doctree.MaxDepth; j++ {
					w.counters[j] = 0
				}
				w.environments = 0
			} else {
				// A zero counter means this is the first heading at this
				// depth under the current parent, whether or not the
				// depths in between were visited.
				w.counters[i]++
				for j := i + 1; j < doctree.MaxDepth; j++ {
					w.counters[j] = 0
				}
			}
			path := w.path(i)
			id := SectionID(path)
			out.Assignments[pos] = Assignment{ID: id, Number: path.Outline()}
			toc.add(path, id, node.Label)
		}
	}

	out.TOC = toc.root
	return out
}
