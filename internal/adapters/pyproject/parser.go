// Package pyproject parses PEP 621 project manifests.
package pyproject

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"

	"github.com/pinset/pinset/internal/adapters/requirements"
	"github.com/pinset/pinset/internal/core/domain"
)

// Parser implements ports.ManifestParser for pyproject.toml files.
type Parser struct{}

// NewParser creates a pyproject.toml parser.
func NewParser() *Parser {
	return &Parser{}
}

// CanParse matches pyproject.toml manifests.
func (p *Parser) CanParse(filename string) bool {
	return strings.ToLower(filepath.Base(filename)) == domain.PyprojectFileName
}

// document is the subset of pyproject.toml that declares dependencies.
type document struct {
	Project struct {
		Name                 string              `toml:"name"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// Parse reads the manifest at path. Core dependencies come first in
// declaration order, then optional dependency groups sorted by extra
// name so the manifest is stable across parses.
func (p *Parser) Parse(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, zerr.With(domain.ErrManifestNotFound, "path", path)
		}
		return nil, zerr.Wrap(err, "failed to read manifest")
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		err = zerr.Wrap(err, "failed to parse pyproject manifest")
		return nil, zerr.With(err, "path", path)
	}

	m := &domain.Manifest{
		Path:   path,
		Digest: fmt.Sprintf("%016x", xxhash.Sum64(data)),
	}

	for _, spec := range doc.Project.Dependencies {
		req, err := parseSpec(path, spec)
		if err != nil {
			return nil, err
		}
		m.Requirements = append(m.Requirements, req)
	}

	// Optional dependency groups keep their extra name as the heading.
	for _, extra := range slices.Sorted(maps.Keys(doc.Project.OptionalDependencies)) {
		m.Groups = append(m.Groups, domain.Group{Title: extra})
		for _, spec := range doc.Project.OptionalDependencies[extra] {
			req, err := parseSpec(path, spec)
			if err != nil {
				return nil, err
			}
			req.Group = extra
			m.Requirements = append(m.Requirements, req)
		}
	}
	return m, nil
}

func parseSpec(path, spec string) (domain.Requirement, error) {
	req, err := requirements.ParseRequirement(spec)
	if err != nil {
		return domain.Requirement{}, zerr.With(err, "file", path)
	}
	req.File = path
	return req, nil
}
