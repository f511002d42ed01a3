// Package pipeline implements the incremental build and deploy pipeline.
package pipeline

import (
	"context"
	"os"
	"time"

	"go.trai.ch/mpy/internal/adapters/telemetry" //nolint:depguard // default observer
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/zerr"
)

// Options selects what one run does.
type Options struct {
	Stages domain.Stages
	// Clean removes the artifact root before discovery.
	Clean    bool
	Observer ports.Observer
	// RunID names the run; a fresh identifier is generated when empty.
	RunID string
}

// Pipeline discovers, compiles, deploys and launches MicroPython sources.
type Pipeline struct {
	discoverer ports.SourceDiscoverer
	oracle     ports.StalenessOracle
	compiler   ports.Compiler
	device     ports.Device
	logger     ports.Logger
	guard      *targetGuard
	sleep      func(ctx context.Context, d time.Duration) error
}

// NewPipeline creates a new Pipeline.
func NewPipeline(
	discoverer ports.SourceDiscoverer,
	oracle ports.StalenessOracle,
	compiler ports.Compiler,
	device ports.Device,
	logger ports.Logger,
) *Pipeline {
	return &Pipeline{
		discoverer: discoverer,
		oracle:     oracle,
		compiler:   compiler,
		device:     device,
		logger:     logger,
		guard:      newTargetGuard(),
		sleep:      sleepContext,
	}
}

// Run executes one pipeline invocation for cfg.
//
// Per-file failures are recorded in the returned run and never returned as
// errors. An error is returned only when the run could not start or was
// canceled; in the latter case the partial run is returned as well.
func (p *Pipeline) Run(ctx context.Context, cfg *domain.Config, opts Options) (*domain.PipelineRun, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	release, err := p.guard.acquire(cfg.Target)
	if err != nil {
		return nil, err
	}
	defer release()

	observer := opts.Observer
	if observer == nil {
		observer = telemetry.NewNoOpObserver()
	}

	if opts.Clean {
		if err := Clean(cfg); err != nil {
			return nil, err
		}
	}

	run := domain.NewPipelineRun(*cfg)
	if opts.RunID != "" {
		run.ID = opts.RunID
	}
	rep := newReporter(observer)

	rep.stageStart(domain.StageDiscover)
	run.Tasks = p.plan(cfg, rep)
	rep.stageComplete(domain.StageDiscover, domain.StageStatusCompleted)

	if !opts.Stages.Compile {
		rep.stageComplete(domain.StageCompile, domain.StageStatusSkipped)
		run.Finish(domain.OutcomeCompleted, rep.snapshot())
		return run, nil
	}

	run.Results = p.compile(ctx, cfg, run.Tasks, rep)
	if err := ctx.Err(); err != nil {
		return p.abort(run, rep, err)
	}

	if opts.Stages.Deploy {
		run.Units = units(cfg, run.Tasks, run.Results)
		run.Deployments = p.deploy(ctx, cfg, run.Units, rep)
		if err := ctx.Err(); err != nil {
			return p.abort(run, rep, err)
		}
	}

	if opts.Stages.Launch {
		p.launchStage(ctx, cfg, run, rep)
		if err := ctx.Err(); err != nil {
			return p.abort(run, rep, err)
		}
	}

	run.Finish(domain.OutcomeCompleted, rep.snapshot())
	return run, nil
}

// Restart hard-resets the target, waits for it to settle and imports the entry module.
func (p *Pipeline) Restart(ctx context.Context, cfg *domain.Config) error {
	release, err := p.guard.acquire(cfg.Target)
	if err != nil {
		return err
	}
	defer release()

	remote := cfg.Remote()
	if err := p.device.Reset(ctx, remote); err != nil {
		return err
	}
	if err := p.sleep(ctx, cfg.Launch.Settle); err != nil {
		return err
	}
	if _, err := p.device.Exec(ctx, remote, importDirective(cfg.EntryModule)); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLaunchFailed, err.Error()), "entry", cfg.EntryModule)
	}
	return nil
}

// Clean removes the artifact root. It refuses to remove a directory that
// holds the source root.
func Clean(cfg *domain.Config) error {
	if err := cfg.CheckArtifactRoot(); err != nil {
		return err
	}
	if err := os.RemoveAll(cfg.ArtifactRoot); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCleanFailed, err.Error()), "path", cfg.ArtifactRoot)
	}
	return nil
}

func (p *Pipeline) abort(run *domain.PipelineRun, rep *reporter, err error) (*domain.PipelineRun, error) {
	run.Finish(domain.OutcomeAborted, rep.snapshot())
	return run, zerr.With(zerr.Wrap(err, "pipeline canceled"), "run", run.ID)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
