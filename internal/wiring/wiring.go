// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "github.com/pinset/pinset/internal/adapters/config"
	_ "github.com/pinset/pinset/internal/adapters/index"
	_ "github.com/pinset/pinset/internal/adapters/lockfile"
	_ "github.com/pinset/pinset/internal/adapters/logger"
	_ "github.com/pinset/pinset/internal/adapters/pyproject"
	_ "github.com/pinset/pinset/internal/adapters/requirements"
	// Register app and engine nodes.
	_ "github.com/pinset/pinset/internal/app"
	_ "github.com/pinset/pinset/internal/engine/resolver"
)
