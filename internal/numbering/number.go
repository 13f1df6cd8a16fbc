package numbering

import (
	"fmt"
	"strconv"
	"strings"
)

// Number is an outline position such as 2.3.1. Components are 1-based.
// In a raw counter path a zero component marks a depth that was skipped on
// the way down; a leading zero means no top-level section has started yet.
type Number []int

// Outline returns the printed components: skipped interior depths are
// dropped, so a level-3 heading directly under a level-1 heading reads as
// "1.1". A leading zero is kept, matching environments before the first
// section ("0.1").
func (n Number) Outline() Number {
	out := make(Number, 0, len(n))
	for i, c := range n {
		if c != 0 || i == 0 {
			out = append(out, c)
		}
	}
	return out
}

// String renders the printed outline form, e.g. "2.3.1".
func (n Number) String() string {
	return n.Outline().join(".")
}

// Equal reports whether two numbers have identical components.
func (n Number) Equal(o Number) bool {
	if len(n) != len(o) {
		return false
	}
	for i := range n {
		if n[i] != o[i] {
			return false
		}
	}
	return true
}

func (n Number) join(sep string) string {
	parts := make([]string, len(n))
	for i, c := range n {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, sep)
}

const sectionPrefix = "section-"

// SectionID is the anchor of a heading: "section-1", "section-1-2", ...
// Skipped depths stay in the identifier so anchors never collide.
func SectionID(n Number) string {
	return sectionPrefix + n.join("-")
}

// EnvironmentID is the anchor of an environment: "theorem1.2".
func EnvironmentID(section, index int) string {
	return fmt.Sprintf("theorem%d.%d", section, index)
}

// HeadingPrefix is the text put in front of a numbered heading title.
func HeadingPrefix(n Number) string {
	if len(n) == 1 {
		return n.String() + ". "
	}
	return n.String() + " "
}

// EnvironmentNumber prints an environment's (section, index) pair as "1.2".
func EnvironmentNumber(n Number) string {
	if len(n) != 2 {
		return ""
	}
	return fmt.Sprintf("%d.%d", n[0], n[1])
}
