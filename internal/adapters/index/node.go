package index

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/pinset/pinset/internal/adapters/config"
	"github.com/pinset/pinset/internal/adapters/logger"
	"github.com/pinset/pinset/internal/core/domain"
	"github.com/pinset/pinset/internal/core/ports"
)

const NodeID graft.ID = "adapter.index"

func init() {
	graft.Register(graft.Node[ports.PackageIndex]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.PackageIndex, error) {
			settings, err := graft.Dep[*domain.Settings](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewClient(settings, log)
		},
	})
}
