package pep440

import (
	"strings"

	"go.trai.ch/zerr"

	"github.com/pinset/pinset/internal/core/domain"
)

// operators is ordered longest first so that == never shadows ===.
var operators = []string{"===", "==", "!=", "<=", ">=", "~=", "<", ">"}

// Specifier is one validated comparison clause of a requirement,
// such as ==1.44.0 or >=2.0. Build one with ParseSpecifier.
type Specifier struct {
	op       string
	literal  string
	version  Version
	wildcard bool
}

// ParseSpecifier parses a single clause like "==1.44.0", ">= 2.0" or
// "==1.1.*". The wildcard form is only valid with == and !=, and ~=
// needs at least two release components to have a prefix to hold.
func ParseSpecifier(clause string) (Specifier, error) {
	text := strings.TrimSpace(clause)
	var op string
	for _, candidate := range operators {
		if strings.HasPrefix(text, candidate) {
			op = candidate
			break
		}
	}
	if op == "" {
		return Specifier{}, zerr.With(domain.ErrInvalidSpecifier, "clause", clause)
	}
	literal := strings.TrimSpace(strings.TrimPrefix(text, op))
	if literal == "" {
		return Specifier{}, zerr.With(domain.ErrInvalidSpecifier, "clause", clause)
	}
	s := Specifier{op: op, literal: literal}

	if op == "===" {
		return s, nil
	}
	if strings.HasSuffix(literal, ".*") {
		if op != "==" && op != "!=" {
			return Specifier{}, zerr.With(domain.ErrInvalidSpecifier, "clause", clause)
		}
		prefix, err := Parse(strings.TrimSuffix(literal, ".*"))
		if err != nil || prefix.PreTag != "" || prefix.HasPost || prefix.HasDev || prefix.Local != "" {
			return Specifier{}, zerr.With(domain.ErrInvalidSpecifier, "clause", clause)
		}
		s.version = prefix
		s.wildcard = true
		return s, nil
	}

	v, err := Parse(literal)
	if err != nil {
		return Specifier{}, zerr.With(domain.ErrInvalidSpecifier, "clause", clause)
	}
	if v.Local != "" && op != "==" && op != "!=" {
		return Specifier{}, zerr.With(domain.ErrInvalidSpecifier, "clause", clause)
	}
	if op == "~=" && len(v.Release) < 2 {
		return Specifier{}, zerr.With(domain.ErrInvalidSpecifier, "clause", clause)
	}
	s.version = v
	return s, nil
}

// Operator returns the clause operator.
func (s Specifier) Operator() string { return s.op }

// VersionLiteral returns the version text after the operator.
func (s Specifier) VersionLiteral() string { return s.literal }

// String renders the clause in requirements syntax.
func (s Specifier) String() string { return s.op + s.literal }

// Match reports whether v satisfies the clause.
func (s Specifier) Match(v Version) bool {
	switch s.op {
	case "===":
		return strings.EqualFold(v.String(), s.literal)
	case "==":
		if s.wildcard {
			return s.matchPrefix(v)
		}
		return s.matchEqual(v)
	case "!=":
		if s.wildcard {
			return !s.matchPrefix(v)
		}
		return !s.matchEqual(v)
	case "<=":
		return v.withoutLocal().Compare(s.version) <= 0
	case ">=":
		return v.withoutLocal().Compare(s.version) >= 0
	case "<":
		if v.withoutLocal().Compare(s.version) >= 0 {
			return false
		}
		// A pre-release of the clause version is not "less than" it
		// unless the clause names a pre-release itself.
		if !s.version.IsPrerelease() && v.IsPrerelease() && v.baseEqual(s.version) {
			return false
		}
		return true
	case ">":
		if v.withoutLocal().Compare(s.version) <= 0 {
			return false
		}
		// Same rule on the other side for post-releases and locals.
		if !s.version.HasPost && v.HasPost && v.baseEqual(s.version) {
			return false
		}
		if v.Local != "" && v.baseEqual(s.version) {
			return false
		}
		return true
	case "~=":
		if v.withoutLocal().Compare(s.version) < 0 {
			return false
		}
		return s.matchCompatiblePrefix(v)
	}
	return false
}

// matchEqual ignores the candidate's local segment unless the clause
// names one, so ==1.0 accepts 1.0+cpu but ==1.0+cpu rejects 1.0.
func (s Specifier) matchEqual(v Version) bool {
	if s.version.Local == "" {
		v = v.withoutLocal()
	}
	return v.Compare(s.version) == 0
}

func (s Specifier) matchPrefix(v Version) bool {
	if v.Epoch != s.version.Epoch {
		return false
	}
	return releaseHasPrefix(v.Release, s.version.Release)
}

func (s Specifier) matchCompatiblePrefix(v Version) bool {
	if v.Epoch != s.version.Epoch {
		return false
	}
	return releaseHasPrefix(v.Release, s.version.Release[:len(s.version.Release)-1])
}

func releaseHasPrefix(release, prefix []int) bool {
	for i, want := range prefix {
		got := 0
		if i < len(release) {
			got = release[i]
		}
		if got != want {
			return false
		}
	}
	return true
}

// Specifiers is the conjunction of the clauses of one requirement.
type Specifiers []Specifier

// ParseSpecifiers parses a comma separated clause list such as ">=2.0,<3".
// Empty input yields an empty set, which accepts every version.
func ParseSpecifiers(text string) (Specifiers, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}
	var out Specifiers
	for _, part := range strings.Split(text, ",") {
		s, err := ParseSpecifier(part)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Compile validates a declared specifier set into matchable clauses.
func Compile(set domain.SpecifierSet) (Specifiers, error) {
	if len(set) == 0 {
		return nil, nil
	}
	out := make(Specifiers, 0, len(set))
	for _, c := range set {
		s, err := ParseSpecifier(string(c.Op) + c.Version)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Match reports whether v satisfies every clause.
func (sp Specifiers) Match(v Version) bool {
	for _, s := range sp {
		if !s.Match(v) {
			return false
		}
	}
	return true
}

// AllowsPrereleases reports whether an inclusive clause names a
// pre-release version, which opts the requirement in to pre-releases.
func (sp Specifiers) AllowsPrereleases() bool {
	for _, s := range sp {
		switch s.op {
		case "==", ">=", "<=", "~=":
			if !s.wildcard && s.version.IsPrerelease() {
				return true
			}
		case "===":
			if v, err := Parse(s.literal); err == nil && v.IsPrerelease() {
				return true
			}
		}
	}
	return false
}
