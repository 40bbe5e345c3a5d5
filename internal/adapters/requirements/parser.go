// Package requirements parses pip requirements manifests.
package requirements

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/pep440"
)

// Parser implements ports.ManifestParser for requirements.txt files.
type Parser struct{}

// NewParser creates a requirements.txt parser.
func NewParser() *Parser {
	return &Parser{}
}

// CanParse matches requirements-style text files (requirements.txt,
// requirements-dev.txt, dev-requirements.txt).
func (p *Parser) CanParse(filename string) bool {
	base := strings.ToLower(filepath.Base(filename))
	return strings.HasSuffix(base, ".txt") && strings.Contains(base, "requirements")
}

// Parse reads the manifest at path. The same bytes always produce the
// same manifest, so callers may re-parse freely.
func (p *Parser) Parse(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return nil, zerr.Wrap(err, "failed to read manifest")
	}
	return parse(path, data)
}

// parse classifies each line the way pip does: blank lines carry nothing,
// full-line comments open a named group, option lines (leading "-") are
// recorded and skipped, and everything else must parse as a requirement
// or the whole manifest is rejected.
func parse(path string, data []byte) (*domain.Manifest, error) {
	m := &domain.Manifest{
		Path:   path,
		Digest: digest(data),
	}

	group := ""
	for i, raw := range strings.Split(string(data), "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))

		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#"):
			group = strings.TrimSpace(strings.TrimLeft(line, "#"))
			if group != "" {
				m.Groups = append(m.Groups, domain.Group{Title: group, Line: lineNo})
			}
		case strings.HasPrefix(line, "-"):
			m.Options = append(m.Options, domain.Option{Raw: line, Line: lineNo})
		default:
			req, err := ParseRequirement(line)
			if err != nil {
				err = zerr.With(err, "file", path)
				return nil, zerr.With(err, "line", lineNo)
			}
			req.File = path
			req.Line = lineNo
			req.Group = group
			m.Requirements = append(m.Requirements, req)
		}
	}
	return m, nil
}

// inlineComment matches the start of a trailing comment, which pip only
// recognizes after whitespace.
var inlineComment = regexp.MustCompile(`\s+#`)

// ParseRequirement parses one declaration line into its name, extras,
// specifier set and environment marker. The same grammar covers
// requirements.txt lines and PEP 621 dependency strings.
func ParseRequirement(line string) (domain.Requirement, error) {
	if loc := inlineComment.FindStringIndex(line); loc != nil {
		line = strings.TrimSpace(line[:loc[0]])
	}

	var marker string
	if idx := strings.Index(line, ";"); idx >= 0 {
		marker = strings.TrimSpace(line[idx+1:])
		line = strings.TrimSpace(line[:idx])
	}

	name := line
	remainder := ""
	if idx := strings.IndexAny(line, "[<>=!~ \t"); idx >= 0 {
		name = line[:idx]
		remainder = strings.TrimSpace(line[idx:])
	}
	if !pep440.ValidName(name) {
		err := zerr.With(domain.ErrInvalidName, "name", name)
		return domain.Requirement{}, zerr.With(err, "requirement", line)
	}

	var extras []string
	if strings.HasPrefix(remainder, "[") {
		end := strings.Index(remainder, "]")
		if end < 0 {
			return domain.Requirement{}, zerr.With(domain.ErrInvalidRequirement, "requirement", line)
		}
		for _, e := range strings.Split(remainder[1:end], ",") {
			if e = strings.TrimSpace(e); e != "" {
				extras = append(extras, e)
			}
		}
		remainder = strings.TrimSpace(remainder[end+1:])
	}

	var set domain.SpecifierSet
	if remainder != "" {
		specs, err := pep440.ParseSpecifiers(remainder)
		if err != nil {
			return domain.Requirement{}, zerr.With(err, "requirement", line)
		}
		for _, s := range specs {
			set = append(set, domain.Specifier{
				Op:      domain.Operator(s.Operator()),
				Version: s.VersionLiteral(),
			})
		}
	}

	return domain.Requirement{
		Name:       pep440.CanonicalName(name),
		RawName:    name,
		Extras:     extras,
		Specifiers: set,
		Marker:     marker,
	}, nil
}

// digest fingerprints the raw manifest bytes. Lockfiles store it so
// verification can tell whether the manifest changed since locking.
func digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
