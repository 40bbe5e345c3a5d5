package ports

import "github.com/pinset/pinset/internal/core/domain"

// ManifestParser defines the interface for reading a dependency manifest
// into its ordered requirement list.
//
//go:generate mockgen -source=parser.go -destination=mocks/mock_parser.go -package=mocks
type ManifestParser interface {
	// CanParse reports whether the parser understands the given file name.
	CanParse(filename string) bool

	// Parse reads the manifest at path. Parsing is deterministic: the same
	// bytes always yield the same ordered manifest.
	Parse(path string) (*domain.Manifest, error)
}
