package nlabmd

// EnvironmentType describes a \begin{...} environment.
type EnvironmentType struct {
	Name  string // Source name, e.g. "lem"
	Title string // Printed title, e.g. "Lemma"
	Class string // "theorem", "definition" or "proof"
}

// Numbered reports whether environments of this type get a number.
func (t EnvironmentType) Numbered() bool {
	return t.Class == "theorem" || t.Class == "definition"
}

var environmentTypes = map[string]EnvironmentType{}

func init() {
	for _, e := range []EnvironmentType{
		{"definition", "Definition", "definition"},
		{"thm", "Theorem", "theorem"},
		{"theorem", "Theorem", "theorem"},
		{"prop", "Proposition", "theorem"},
		{"prpn", "Proposition", "theorem"},
		{"proposition", "Proposition", "theorem"},
		{"rmk", "Remark", "definition"},
		{"remark", "Remark", "definition"},
		{"cor", "Corollary", "theorem"},
		{"corollary", "Corollary", "theorem"},
		{"lem", "Lemma", "theorem"},
		{"lemma", "Lemma", "theorem"},
		{"notn", "Notation", "definition"},
		{"notation", "Notation", "definition"},
		{"terminology", "Terminology", "definition"},
		{"scholium", "Scholium", "definition"},
		{"conjecture", "Conjecture", "theorem"},
		{"conj", "Conjecture", "theorem"},
		{"example", "Example", "definition"},
		{"exercise", "Exercise", "definition"},
		{"statement", "Statement", "theorem"},
		{"assumption", "Assumption", "theorem"},
		{"assum", "Assumption", "theorem"},
		{"proof", "Proof", "proof"},
	} {
		environmentTypes[e.Name] = e
	}
}

// LookupEnvironment returns the environment type for a source name.
func LookupEnvironment(name string) (EnvironmentType, bool) {
	t, ok := environmentTypes[name]
	return t, ok
}
