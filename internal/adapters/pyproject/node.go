package pyproject

import (
	"context"

	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.pyproject"

func init() {
	graft.Register(graft.Node[*Parser]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(ctx context.Context) (*Parser, error) {
			return NewParser(), nil
		},
	})
}
