package ports

import "github.com/pinset/pinset/internal/core/domain"

// Reporter renders a resolution for output.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// Report renders the resolution in the reporter's format.
	Report(res *domain.Resolution) ([]byte, error)
}
