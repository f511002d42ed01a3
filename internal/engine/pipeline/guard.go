package pipeline

import (
	"sync"

	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/zerr"
)

// targetGuard admits at most one holder per target.
type targetGuard struct {
	mu   sync.Mutex
	busy map[domain.Target]struct{}
}

func newTargetGuard() *targetGuard {
	return &targetGuard{busy: make(map[domain.Target]struct{})}
}

// acquire claims target and returns the function releasing it.
func (g *targetGuard) acquire(target domain.Target) (func(), error) {
	key := domain.Target(target.String())

	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.busy[key]; ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrTargetBusy, "cannot start run"), "target", key.String())
	}
	g.busy[key] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.busy, key)
			g.mu.Unlock()
		})
	}, nil
}
