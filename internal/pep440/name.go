package pep440

import (
	"regexp"
	"strings"
)

// namePattern is the PEP 508 project name grammar: it must start and end
// with a letter or digit and may contain ".", "-" and "_" in between.
var namePattern = regexp.MustCompile(`(?i)^[a-z0-9]([a-z0-9._-]*[a-z0-9])?$`)

// ValidName reports whether name is a well formed distribution name.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

var nameSeparators = regexp.MustCompile(`[-_.]+`)

// CanonicalName returns the PEP 503 normalized form of a distribution
// name: lowercase, with runs of ".", "-" and "_" collapsed to a single
// "-". "Streamlit_Folium" and "streamlit.folium" both canonicalize to
// "streamlit-folium".
func CanonicalName(name string) string {
	return strings.ToLower(nameSeparators.ReplaceAllString(name, "-"))
}
