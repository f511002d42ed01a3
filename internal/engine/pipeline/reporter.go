package pipeline

import (
	"sync"
	"sync/atomic"

	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
)

// reporter owns the counters of one run and serializes observer callbacks.
// Counters only ever increase.
type reporter struct {
	observer ports.Observer
	mu       sync.Mutex

	discovered    atomic.Uint64
	compiled      atomic.Uint64
	skipped       atomic.Uint64
	compileFailed atomic.Uint64
	deployed      atomic.Uint64
	deployFailed  atomic.Uint64
}

func newReporter(observer ports.Observer) *reporter {
	return &reporter{observer: observer}
}

func (r *reporter) snapshot() domain.Counters {
	return domain.Counters{
		Discovered:    r.discovered.Load(),
		Compiled:      r.compiled.Load(),
		Skipped:       r.skipped.Load(),
		CompileFailed: r.compileFailed.Load(),
		Deployed:      r.deployed.Load(),
		DeployFailed:  r.deployFailed.Load(),
	}
}

func (r *reporter) stageStart(stage domain.Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer.OnStageStart(stage)
}

func (r *reporter) stageComplete(stage domain.Stage, status domain.StageStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer.OnStageComplete(stage, status, r.snapshot())
}

func (r *reporter) file(stage domain.Stage, name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observer.OnFileComplete(stage, name, err)
}

// compileDone counts one compilation result and reports it.
func (r *reporter) compileDone(res domain.CompilationResult) {
	if res.Status == domain.CompileSucceeded {
		r.compiled.Add(1)
	} else {
		r.compileFailed.Add(1)
	}
	r.file(domain.StageCompile, domain.RemotePath(res.Task.Source.RelPath), res.Err)
}

// deployDone counts one deploy result and reports it.
func (r *reporter) deployDone(res domain.DeployResult) {
	if res.OK() {
		r.deployed.Add(1)
	} else {
		r.deployFailed.Add(1)
	}
	r.file(domain.StageDeploy, res.Unit.Destination, res.Err)
}
