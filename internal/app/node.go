package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/keel/internal/adapters/cas"     //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/emitter" //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/fs"      //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/sdk"     //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/keel/internal/core/ports"
	"go.trai.ch/keel/internal/engine/resolver"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.SourceNodeID,
			config.ProjectNodeID,
			sdk.NodeID,
			resolver.NodeID,
			emitter.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.WriterNodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			source, err := graft.Dep[ports.ConfigSource](ctx)
			if err != nil {
				return nil, err
			}
			projectLoader, err := graft.Dep[ports.ProjectLoader](ctx)
			if err != nil {
				return nil, err
			}
			probe, err := graft.Dep[ports.PlatformProbe](ctx)
			if err != nil {
				return nil, err
			}
			res, err := graft.Dep[ports.DescriptorResolver](ctx)
			if err != nil {
				return nil, err
			}
			emitters, err := graft.Dep[ports.EmitterRegistry](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.DescriptorStore](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			writer, err := graft.Dep[ports.Writer](ctx)
			if err != nil {
				return nil, err
			}
			w, err := graft.Dep[ports.Watcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(source, projectLoader, probe, res, emitters, store, hasher, writer, w, log), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}
