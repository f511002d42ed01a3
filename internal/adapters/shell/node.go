package shell

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mpy/internal/core/ports"
)

// NodeID identifies the process executor shared by the compiler and device adapters.
const NodeID graft.ID = "adapter.shell"

func init() {
	graft.Register(graft.Node[ports.Executor]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Executor, error) {
			return NewExecutor(), nil
		},
	})
}
