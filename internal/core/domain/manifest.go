// Package domain contains the core domain models and business logic for
// requirements manifests and their resolution.
package domain

// Manifest is the parsed, ordered content of a requirements file.
type Manifest struct {
	// Path is the file the manifest was parsed from.
	Path string

	// Digest is the content digest of the raw manifest bytes.
	Digest string

	// Requirements lists the declarations in file order.
	Requirements []Requirement

	// Groups lists the comment group headings in file order.
	Groups []Group

	// Options lists installer option lines that were recorded and skipped.
	Options []Option
}

// Group is a full-line comment heading that groups the requirements below it.
type Group struct {
	// Title is the heading text without the leading # and surrounding space.
	Title string

	// Line is the 1-based line number of the heading.
	Line int
}

// Option is an installer option line (e.g., "-r base.txt") that the parser
// records but resolution ignores.
type Option struct {
	// Raw is the option line as written, trimmed.
	Raw string

	// Line is the 1-based line number of the option.
	Line int
}

// Names returns the canonical requirement names in file order.
func (m *Manifest) Names() []string {
	names := make([]string, len(m.Requirements))
	for i, r := range m.Requirements {
		names[i] = r.Name
	}
	return names
}

// Duplicates returns the canonical names declared more than once,
// in order of first appearance.
func (m *Manifest) Duplicates() []string {
	seen := make(map[string]int, len(m.Requirements))
	var dups []string
	for _, r := range m.Requirements {
		seen[r.Name]++
		if seen[r.Name] == 2 {
			dups = append(dups, r.Name)
		}
	}
	return dups
}
