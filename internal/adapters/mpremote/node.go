package mpremote

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mpy/internal/adapters/shell"
	"go.trai.ch/mpy/internal/core/ports"
)

// NodeID is the unique identifier for the device Graft node.
const NodeID graft.ID = "adapter.device"

func init() {
	graft.Register(graft.Node[ports.Device]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID},
		Run: func(ctx context.Context) (ports.Device, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			return NewDevice(executor), nil
		},
	})
}
