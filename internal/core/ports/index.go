package ports

import (
	"context"

	"github.com/pinset/pinset/internal/core/domain"
)

// PackageIndex defines the interface for querying a package index for the
// published releases of a distribution.
//
//go:generate go run go.uber.org/mock/mockgen -source=index.go -destination=mocks/mock_index.go -package=mocks
type PackageIndex interface {
	// Releases returns the published releases of the named distribution,
	// ordered ascending by version. The name must be in canonical form.
	// Returns domain.ErrPackageNotFound when the index has no such project.
	Releases(ctx context.Context, name string) ([]domain.Release, error)
}
