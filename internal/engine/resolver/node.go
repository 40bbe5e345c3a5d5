package resolver

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/pinset/pinset/internal/adapters/config"
	"github.com/pinset/pinset/internal/adapters/index"
	"github.com/pinset/pinset/internal/adapters/logger"
	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/core/ports"
)

const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{index.NodeID, logger.NodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			idx, err := graft.Dep[ports.PackageIndex](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return New(idx, log, settings), nil
		},
	})
}
