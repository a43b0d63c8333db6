package sdk

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/core/ports"
)

// NodeID is the unique identifier for the platform probe Graft node.
const NodeID graft.ID = "adapter.platform_probe"

func init() {
	graft.Register(graft.Node[ports.PlatformProbe]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.PlatformProbe, error) {
			return NewProbe(), nil
		},
	})
}
