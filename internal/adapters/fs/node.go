package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/mpy/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the source discovery Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// DiscovererNodeID is the unique identifier for the ports.SourceDiscoverer Graft node.
	DiscovererNodeID graft.ID = "adapter.fs.discoverer"
	// OracleNodeID is the unique identifier for the staleness oracle Graft node.
	OracleNodeID graft.ID = "adapter.fs.oracle"
	// HasherNodeID is the unique identifier for the artifact hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	// Walker Node (Concrete implementation needed by Hasher)
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.SourceDiscoverer]{
		ID:        DiscovererNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.SourceDiscoverer, error) {
			return graft.Dep[*Walker](ctx)
		},
	})

	graft.Register(graft.Node[ports.StalenessOracle]{
		ID:        OracleNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.StalenessOracle, error) {
			return NewOracle(), nil
		},
	})

	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (*Hasher, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(walker), nil
		},
	})
}
