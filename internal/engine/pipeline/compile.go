package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/mpy/internal/core/domain"
	"golang.org/x/sync/errgroup"
)

// compile compiles the stale tasks with at most cfg.Parallelism workers.
// Results keep the order of the stale tasks in tasks.
func (p *Pipeline) compile(
	ctx context.Context,
	cfg *domain.Config,
	tasks []domain.BuildTask,
	rep *reporter,
) []domain.CompilationResult {
	var stale []domain.BuildTask
	for _, task := range tasks {
		if task.Stale() {
			stale = append(stale, task)
		}
	}

	rep.stageStart(domain.StageCompile)
	if len(stale) == 0 {
		rep.stageComplete(domain.StageCompile, domain.StageStatusSkipped)
		return nil
	}

	results := make([]domain.CompilationResult, len(stale))
	opts := cfg.CompileOptions()

	var g errgroup.Group
	g.SetLimit(max(cfg.Parallelism, 1))
	for i, task := range stale {
		g.Go(func() error {
			var res domain.CompilationResult
			if err := ctx.Err(); err != nil {
				res = domain.CompilationResult{Task: task, Status: domain.CompileFailed, Diagnostics: err.Error(), Err: err}
			} else {
				res = p.compiler.Compile(ctx, task, opts)
			}

			if res.Status == domain.CompileFailed {
				p.discardArtifact(task)
				if res.Diagnostics != "" && ctx.Err() == nil {
					p.logger.Warn(domain.RemotePath(task.Source.RelPath) + ":\n" + res.Diagnostics)
				}
			}

			results[i] = res
			rep.compileDone(res)
			return nil
		})
	}
	_ = g.Wait()

	status := domain.StageStatusCompleted
	if ctx.Err() != nil {
		status = domain.StageStatusFailed
	}
	rep.stageComplete(domain.StageCompile, status)
	return results
}

// discardArtifact removes an outdated artifact left behind by a failed
// compilation so that it can neither be deployed nor be judged up to date.
func (p *Pipeline) discardArtifact(task domain.BuildTask) {
	if !task.Artifact.Exists {
		return
	}
	if err := os.Remove(task.Artifact.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		p.logger.Warn("could not remove outdated artifact " + task.Artifact.Path + ": " + err.Error())
	}
}
