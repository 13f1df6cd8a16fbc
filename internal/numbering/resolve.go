package numbering

import (
	"log/slog"
	"strings"

	"github.com/dgallion1/docnum/internal/doctree"
)

// Placeholder is the text of a reference that could not be resolved.
const Placeholder = "?"

// Resolution is the computed text of one reference link.
type Resolution struct {
	Position int    `json:"-" yaml:"-"`
	Target   string `json:"target" yaml:"target"`
	Text     string `json:"text" yaml:"text"`
	Resolved bool   `json:"resolved" yaml:"resolved"`
}

// Resolve computes the text of every reference from the registry. It must
// run after the outline and equation passes. A missing target, a target that
// is neither an environment nor an equation, or an empty number all yield
// the placeholder and one warning.
func Resolve(nodes []*doctree.Node, reg Registry, log *slog.Logger) []Resolution {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	var out []Resolution
	for pos, node := range nodes {
		if node.Kind != doctree.KindReference {
			continue
		}
		res := Resolution{Position: pos, Target: node.Target, Text: Placeholder}
		if rec, ok := reg[node.Target]; ok {
			if text := rec.Text(); strings.TrimSpace(text) != "" {
				res.Text = text
				res.Resolved = true
			}
		}
		if !res.Resolved {
			log.Warn("no environment or equation with label", "label", node.Target)
		}
		out = append(out, res)
	}
	return out
}
