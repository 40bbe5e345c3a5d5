package lockfile

import (
	"context"

	"github.com/grindlemire/graft"

	"github.com/pinset/pinset/internal/core/ports"
)

const NodeID graft.ID = "adapter.lock_store"

func init() {
	graft.Register(graft.Node[ports.LockStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (ports.LockStore, error) {
			return NewStore(), nil
		},
	})
}
