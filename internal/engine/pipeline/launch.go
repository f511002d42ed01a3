package pipeline

import (
	"context"
	"strings"

	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/zerr"
)

func importDirective(entry string) string {
	return "import " + entry
}

func runDirective(entry string) string {
	return entry + ".run()"
}

func loadedQuery(entry string) string {
	return "import sys; print('" + entry + "' in sys.modules)"
}

// launchStage starts the entry module unless it has no usable artifact.
func (p *Pipeline) launchStage(ctx context.Context, cfg *domain.Config, run *domain.PipelineRun, rep *reporter) {
	rep.stageStart(domain.StageLaunch)

	if !cfg.Launch.Enabled {
		rep.stageComplete(domain.StageLaunch, domain.StageStatusSkipped)
		return
	}

	if err := launchBlocker(cfg.EntryModule, run); err != nil {
		p.logger.Warn("not launching: " + err.Error())
		rep.stageComplete(domain.StageLaunch, domain.StageStatusSkipped)
		return
	}

	if err := p.Launch(ctx, cfg); err != nil {
		run.LaunchErr = err
		rep.file(domain.StageLaunch, cfg.EntryModule, err)
		rep.stageComplete(domain.StageLaunch, domain.StageStatusFailed)
		return
	}

	run.Launched = true
	rep.file(domain.StageLaunch, cfg.EntryModule, nil)
	rep.stageComplete(domain.StageLaunch, domain.StageStatusCompleted)
}

// launchBlocker returns domain.ErrEntryModuleMissing when the entry module was
// not discovered, failed to compile or failed to deploy.
func launchBlocker(entry string, run *domain.PipelineRun) error {
	missing := func(reason string) error {
		return zerr.With(zerr.Wrap(domain.ErrEntryModuleMissing, reason), "entry", entry)
	}

	found := false
	for _, task := range run.Tasks {
		if domain.ModuleName(task.Source.RelPath) == entry {
			found = true
			break
		}
	}
	if !found {
		return missing("entry module was not discovered")
	}

	for _, res := range run.Results {
		if domain.ModuleName(res.Task.Source.RelPath) == entry && res.Status == domain.CompileFailed {
			return missing("entry module failed to compile")
		}
	}
	for _, d := range run.Deployments {
		if domain.ModuleName(d.Unit.Destination) == entry && !d.OK() {
			return missing("entry module failed to deploy")
		}
	}
	return nil
}

// Launch loads the entry module, waits for it to settle, verifies it was
// loaded and runs it. A failed verification is logged and the run directive is
// issued anyway.
func (p *Pipeline) Launch(ctx context.Context, cfg *domain.Config) error {
	remote := cfg.Remote()
	entry := cfg.EntryModule

	if _, err := p.device.Exec(ctx, remote, importDirective(entry)); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLaunchFailed, err.Error()), "entry", entry)
	}

	if err := p.sleep(ctx, cfg.Launch.Settle); err != nil {
		return err
	}

	if err := p.VerifyLoaded(ctx, cfg); err != nil {
		p.logger.Warn(err.Error())
	}

	if _, err := p.device.Exec(ctx, remote, runDirective(entry)); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLaunchFailed, err.Error()), "entry", entry)
	}
	return nil
}

// VerifyLoaded polls the target until the entry module appears in sys.modules.
// It tries cfg.Launch.Attempts times, waiting cfg.Launch.Poll between tries, and
// returns domain.ErrLaunchNotReady when the module never shows up.
func (p *Pipeline) VerifyLoaded(ctx context.Context, cfg *domain.Config) error {
	attempts := max(cfg.Launch.Attempts, 1)
	query := loadedQuery(cfg.EntryModule)

	for i := range attempts {
		if i > 0 {
			if err := p.sleep(ctx, cfg.Launch.Poll); err != nil {
				return err
			}
		}
		out, err := p.device.Exec(ctx, cfg.Remote(), query)
		if err == nil && strings.TrimSpace(lastLine(out)) == "True" {
			return nil
		}
	}
	return zerr.With(zerr.With(zerr.Wrap(domain.ErrLaunchNotReady, "launch verification failed"),
		"entry", cfg.EntryModule), "attempts", attempts)
}

func lastLine(s string) string {
	s = strings.TrimRight(s, "\r\n")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}
