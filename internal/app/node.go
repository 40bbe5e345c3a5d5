package app

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/pinset/pinset/internal/adapters/config"
	"github.com/pinset/pinset/internal/adapters/lockfile"
	"github.com/pinset/pinset/internal/adapters/logger"
	"github.com/pinset/pinset/internal/adapters/pyproject"
	"github.com/pinset/pinset/internal/adapters/reporter"
	"github.com/pinset/pinset/internal/adapters/requirements"
	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/core/ports"
	"github.com/pinset/pinset/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			requirements.NodeID,
			pyproject.NodeID,
			lockfile.NodeID,
			resolver.NodeID,
			config.SettingsNodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	reqParser, err := graft.Dep[*requirements.Parser](ctx)
	if err != nil {
		return nil, err
	}

	pyParser, err := graft.Dep[*pyproject.Parser](ctx)
	if err != nil {
		return nil, err
	}

	lockStore, err := graft.Dep[ports.LockStore](ctx)
	if err != nil {
		return nil, err
	}

	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}

	settings, err := graft.Dep[*domain.Settings](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	// Parser order decides which one claims a manifest name first.
	parsers := []ports.ManifestParser{reqParser, pyParser}

	return New(parsers, res, lockStore, reporter.Get, log, settings), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log), nil
}
