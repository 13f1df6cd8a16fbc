package numbering

import "github.com/dgallion1/docnum/internal/doctree"

// TOCNode is one entry of the table of contents. The root has no number;
// entries carry the printed number.
type TOCNode struct {
	Number   Number     `json:"number,omitempty" yaml:"number,omitempty"`
	ID       string     `json:"id,omitempty" yaml:"id,omitempty"`
	Label    string     `json:"label,omitempty" yaml:"label,omitempty"`
	Children []*TOCNode `json:"children,omitempty" yaml:"children,omitempty"`
}

// Len returns the number of entries below n.
func (n *TOCNode) Len() int {
	total := 0
	for _, c := range n.Children {
		total += 1 + c.Len()
	}
	return total
}

type pathKey [doctree.MaxDepth]int

func keyOf(path []int) pathKey {
	var k pathKey
	copy(k[:], path)
	return k
}

// tocBuilder grows the contents tree in document order. Entries are keyed by
// their full counter path; child lists are created on first use.
type tocBuilder struct {
	root   *TOCNode
	byPath map[pathKey]*TOCNode
}

func newTOCBuilder() *tocBuilder {
	return &tocBuilder{
		root:   &TOCNode{},
		byPath: make(map[pathKey]*TOCNode),
	}
}

// add appends the heading at the raw counter path.
func (b *tocBuilder) add(path Number, id, label string) {
	parent := b.parent(path[:len(path)-1])
	entry := &TOCNode{Number: path.Outline(), ID: id, Label: label}
	parent.Children = append(parent.Children, entry)
	b.byPath[keyOf(path)] = entry
}

// parent returns the entry owning path, creating it if needed. Trailing
// zero components are skipped depths and attach to the nearest started
// ancestor.
func (b *tocBuilder) parent(path []int) *TOCNode {
	for len(path) > 0 && path[len(path)-1] == 0 {
		path = path[:len(path)-1]
	}
	if len(path) == 0 {
		return b.root
	}
	key := keyOf(path)
	if entry, ok := b.byPath[key]; ok {
		return entry
	}
	entry := &TOCNode{Number: Number(path).Outline(), ID: SectionID(path)}
	up := b.parent(path[:len(path)-1])
	up.Children = append(up.Children, entry)
	b.byPath[key] = entry
	return entry
}
