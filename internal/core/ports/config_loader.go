package ports

import "github.com/pinset/pinset/internal/core/domain"

// ConfigLoader loads tool settings from defaults, the optional
// configuration file, and environment overrides.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load returns the merged settings for this run.
	Load() (*domain.Settings, error)
}
