package pipeline

import (
	"context"
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.trai.ch/mpy/internal/core/domain"
)

// dirMemoSize bounds the remote directories remembered during one deployment.
const dirMemoSize = 1024

// units derives the deployment units in discovery order. Artifacts compiled in
// this run are always included; up-to-date artifacts only with Deploy.All.
func units(cfg *domain.Config, tasks []domain.BuildTask, results []domain.CompilationResult) []domain.DeploymentUnit {
	produced := make(map[string]domain.ArtifactRef, len(results))
	for _, res := range results {
		if a, ok := res.Artifact(); ok {
			produced[a.Path] = a
		}
	}

	var out []domain.DeploymentUnit
	for _, task := range tasks {
		if task.Stale() {
			if a, ok := produced[task.Artifact.Path]; ok {
				out = append(out, domain.NewDeploymentUnit(a))
			}
			continue
		}
		if cfg.Deploy.All {
			out = append(out, domain.NewDeploymentUnit(task.Artifact))
		}
	}
	return out
}

func (p *Pipeline) deploy(
	ctx context.Context,
	cfg *domain.Config,
	units []domain.DeploymentUnit,
	rep *reporter,
) []domain.DeployResult {
	rep.stageStart(domain.StageDeploy)
	if len(units) == 0 {
		rep.stageComplete(domain.StageDeploy, domain.StageStatusSkipped)
		return nil
	}

	var results []domain.DeployResult
	if cfg.Deploy.Policy == domain.PolicyBulk {
		results = p.deployBulk(ctx, cfg, units, rep)
	} else {
		results = p.deployPerFile(ctx, cfg, units, rep)
	}

	status := domain.StageStatusCompleted
	if ctx.Err() != nil {
		status = domain.StageStatusFailed
	}
	rep.stageComplete(domain.StageDeploy, status)
	return results
}

// deployPerFile creates the parents of every unit and transfers it. A failure
// only affects its own unit.
func (p *Pipeline) deployPerFile(
	ctx context.Context,
	cfg *domain.Config,
	units []domain.DeploymentUnit,
	rep *reporter,
) []domain.DeployResult {
	remote := cfg.Remote()
	created, _ := lru.New[string, struct{}](dirMemoSize)

	results := make([]domain.DeployResult, 0, len(units))
	for _, unit := range units {
		if ctx.Err() != nil {
			break
		}

		res := domain.DeployResult{Unit: unit}
		res.Warnings = p.ensureDirs(ctx, cfg, unit, created)

		if err := p.device.CopyFile(ctx, remote, unit.Artifact.Path, unit.Destination); err != nil {
			res.Err = err
		}

		results = append(results, res)
		rep.deployDone(res)
	}
	return results
}

// ensureDirs creates each parent directory of unit root to leaf. Directories
// that already exist or were created earlier in the run are not created again.
func (p *Pipeline) ensureDirs(
	ctx context.Context,
	cfg *domain.Config,
	unit domain.DeploymentUnit,
	created *lru.Cache[string, struct{}],
) []error {
	var warnings []error
	for _, dir := range unit.Parents() {
		if created.Contains(dir) {
			continue
		}
		err := p.device.MakeDir(ctx, cfg.Remote(), dir)
		if err == nil || errors.Is(err, domain.ErrDirectoryExists) {
			created.Add(dir, struct{}{})
			continue
		}
		p.logger.Warn("could not create remote directory " + dir + ": " + err.Error())
		warnings = append(warnings, err)
	}
	return warnings
}

// deployBulk copies the whole artifact root in one operation. Its outcome
// applies to every unit.
func (p *Pipeline) deployBulk(
	ctx context.Context,
	cfg *domain.Config,
	units []domain.DeploymentUnit,
	rep *reporter,
) []domain.DeployResult {
	err := p.device.CopyTree(ctx, cfg.Remote(), cfg.ArtifactRoot)

	results := make([]domain.DeployResult, 0, len(units))
	for _, unit := range units {
		res := domain.DeployResult{Unit: unit, Err: err}
		results = append(results, res)
		rep.deployDone(res)
	}
	return results
}
