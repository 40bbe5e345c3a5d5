package domain

import "strings"

// Requirement represents one dependency declaration from a manifest.
type Requirement struct {
	// Name is the canonical distribution name (PEP 503 normalized,
	// e.g., "streamlit-folium").
	Name string

	// RawName is the name exactly as written in the manifest.
	RawName string

	// Extras lists requested extras (e.g., requests[socks] declares "socks").
	Extras []string

	// Specifiers constrains acceptable versions. Empty means any version.
	Specifiers SpecifierSet

	// Marker is the raw environment marker after ";", stored verbatim
	// and never evaluated.
	Marker string

	// Group is the heading of the comment group the requirement appears
	// under, empty when the manifest has no heading above it.
	Group string

	// File is the manifest path the requirement came from.
	File string

	// Line is the 1-based line number in File.
	Line int
}

// Pinned reports whether the requirement pins exactly one version.
func (r Requirement) Pinned() bool {
	_, ok := r.Specifiers.ExactPin()
	return ok
}

// Pin returns the exactly pinned version, if any.
func (r Requirement) Pin() (string, bool) {
	return r.Specifiers.ExactPin()
}

// String renders the requirement in requirements.txt syntax.
func (r Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.RawName)
	if len(r.Extras) > 0 {
		b.WriteString("[")
		b.WriteString(strings.Join(r.Extras, ","))
		b.WriteString("]")
	}
	b.WriteString(r.Specifiers.String())
	if r.Marker != "" {
		b.WriteString(" ; ")
		b.WriteString(r.Marker)
	}
	return b.String()
}
