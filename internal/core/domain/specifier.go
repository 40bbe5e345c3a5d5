package domain

import "strings"

// Operator is a version comparison operator in a requirement specifier.
type Operator string

const (
	// OpEqual matches a version exactly, or by release prefix when the
	// clause ends in ".*" (e.g., ==1.44.*).
	OpEqual Operator = "=="

	// OpNotEqual excludes a version, with the same ".*" prefix form.
	OpNotEqual Operator = "!="

	// OpLessEqual matches versions ordering at or below the clause version.
	OpLessEqual Operator = "<="

	// OpGreaterEqual matches versions ordering at or above the clause version.
	OpGreaterEqual Operator = ">="

	// OpLess matches versions strictly below the clause version.
	OpLess Operator = "<"

	// OpGreater matches versions strictly above the clause version.
	OpGreater Operator = ">"

	// OpCompatible is the PEP 440 compatible release operator
	// (~=1.4.2 means >=1.4.2, ==1.4.*).
	OpCompatible Operator = "~="

	// OpArbitrary is literal string equality, outside the version algebra.
	OpArbitrary Operator = "==="
)

// Specifier is one comparison clause of a requirement (e.g., ==1.44.0).
type Specifier struct {
	// Op is the comparison operator.
	Op Operator

	// Version is the version literal the operator compares against.
	Version string
}

// String renders the clause in requirements.txt syntax.
func (s Specifier) String() string {
	return string(s.Op) + s.Version
}

// SpecifierSet is the ordered list of clauses attached to a requirement.
// An empty set accepts every version.
type SpecifierSet []Specifier

// String renders the set with clauses joined by commas.
func (ss SpecifierSet) String() string {
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.String()
	}
	return strings.Join(parts, ",")
}

// ExactPin returns the pinned version and true when the set is a single
// == or === clause without a wildcard suffix.
func (ss SpecifierSet) ExactPin() (string, bool) {
	if len(ss) != 1 {
		return "", false
	}
	s := ss[0]
	if s.Op != OpEqual && s.Op != OpArbitrary {
		return "", false
	}
	if strings.HasSuffix(s.Version, ".*") {
		return "", false
	}
	return s.Version, true
}
