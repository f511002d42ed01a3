package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mpy/internal/adapters/archive"            //nolint:depguard // Wired in app layer
	"go.trai.ch/mpy/internal/adapters/config"             //nolint:depguard // Wired in app layer
	"go.trai.ch/mpy/internal/adapters/linear"             //nolint:depguard // Wired in app layer
	"go.trai.ch/mpy/internal/adapters/logger"             //nolint:depguard // Wired in app layer
	"go.trai.ch/mpy/internal/adapters/mpremote"           //nolint:depguard // Wired in app layer
	"go.trai.ch/mpy/internal/adapters/shell"              //nolint:depguard // Wired in app layer
	"go.trai.ch/mpy/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/mpy/internal/adapters/watcher"            //nolint:depguard // Wired in app layer
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/mpy/internal/engine/pipeline"
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
			config.NodeID,
			pipeline.NodeID,
			mpremote.NodeID,
			shell.NodeID,
			archive.ArchiverNodeID,
			archive.UploaderNodeID,
			logger.NodeID,
			linear.NodeID,
			progrock.NodeID,
			watcher.NodeID,
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
			config.NodeID,
			shell.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	pipe, err := graft.Dep[*pipeline.Pipeline](ctx)
	if err != nil {
		return nil, err
	}

	device, err := graft.Dep[ports.Device](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	archiver, err := graft.Dep[ports.Archiver](ctx)
	if err != nil {
		return nil, err
	}

	uploader, err := graft.Dep[ports.Uploader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	observer, err := graft.Dep[ports.Observer](ctx)
	if err != nil {
		return nil, err
	}

	tape, err := graft.Dep[progrock.Factory](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[watcher.Factory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, pipe, device, executor, archiver, uploader, log).
		WithObserver(observer).
		WithTape(tape).
		WithWatchers(watchers), nil
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

	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:          app,
		Logger:       log,
		ConfigLoader: loader,
		Executor:     executor,
	}, nil
}
