package progrock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mpy/internal/core/ports"
)

// NodeID is the unique identifier for the progrock observer factory node.
const NodeID graft.ID = "adapter.telemetry.progrock"

// Factory creates a Recorder for one run, journaled in dir.
type Factory func(dir, runID string) (ports.Observer, error)

func init() {
	graft.Register(graft.Node[Factory]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (Factory, error) {
			return Journaled, nil
		},
	})
}

// Journaled prunes old journals in dir and opens a Recorder for runID.
func Journaled(dir, runID string) (ports.Observer, error) {
	if err := Prune(dir, KeepJournals-1); err != nil {
		return nil, err
	}
	return Open(dir, runID)
}
