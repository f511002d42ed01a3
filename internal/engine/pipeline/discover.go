package pipeline

import (
	"os"

	"go.trai.ch/mpy/internal/core/domain"
)

// plan turns every discovered source into a BuildTask, in discovery order.
func (p *Pipeline) plan(cfg *domain.Config, rep *reporter) []domain.BuildTask {
	if _, err := os.Stat(cfg.SourceRoot); err != nil {
		p.logger.Warn("source root not found: " + cfg.SourceRoot)
	}

	var tasks []domain.BuildTask
	for src := range p.discoverer.Discover(cfg.SourceRoot, cfg.DiscoveryExclude()) {
		name := src.Name()
		ext := cfg.ArtifactExtFor(name)
		ref := p.oracle.Resolve(src, cfg.ArtifactRoot, ext)

		task := domain.BuildTask{
			Source:      src,
			Artifact:    ref,
			Disposition: domain.DispositionStale,
			Verbatim:    cfg.IsVerbatim(name),
		}
		rep.discovered.Add(1)
		if !p.oracle.IsStale(src, ref) {
			task.Disposition = domain.DispositionUpToDate
			rep.skipped.Add(1)
		}
		tasks = append(tasks, task)
	}
	return tasks
}
