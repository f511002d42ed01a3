package pipeline

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mpy/internal/adapters/fs"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mpy/internal/adapters/logger"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mpy/internal/adapters/mpremote" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mpy/internal/adapters/mpycross" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/mpy/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline Graft node.
const NodeID graft.ID = "engine.pipeline"

func init() {
	graft.Register(graft.Node[*Pipeline]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.DiscovererNodeID,
			fs.OracleNodeID,
			mpycross.NodeID,
			mpremote.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Pipeline, error) {
			discoverer, err := graft.Dep[ports.SourceDiscoverer](ctx)
			if err != nil {
				return nil, err
			}

			oracle, err := graft.Dep[ports.StalenessOracle](ctx)
			if err != nil {
				return nil, err
			}

			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}

			device, err := graft.Dep[ports.Device](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewPipeline(discoverer, oracle, compiler, device, log), nil
		},
	})
}
