package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/adapters/logger"
	"go.trai.ch/keel/internal/core/ports"
)

const (
	// SourceNodeID is the unique identifier for the override source Graft node.
	SourceNodeID graft.ID = "adapter.config_source"
	// ProjectNodeID is the unique identifier for the project loader Graft node.
	ProjectNodeID graft.ID = "adapter.project_loader"
)

func init() {
	graft.Register(graft.Node[ports.ConfigSource]{
		ID:        SourceNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ConfigSource, error) {
			return NewPropertiesSource(NewOSFS()), nil
		},
	})

	graft.Register(graft.Node[ports.ProjectLoader]{
		ID:        ProjectNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProjectLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewProjectLoader(NewOSFS(), log), nil
		},
	})
}
