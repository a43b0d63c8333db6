package emitter

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/core/ports"
)

// NodeID is the unique identifier for the emitter registry Graft node.
const NodeID graft.ID = "adapter.emitter_registry"

func init() {
	graft.Register(graft.Node[ports.EmitterRegistry]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EmitterRegistry, error) {
			return NewDefaultRegistry(), nil
		},
	})
}
