package pipeline

import (
	"context"
	"time"

	"go.trai.ch/mpy/internal/core/domain"
)

// SetSleep replaces the function used for settle and poll delays.
func (p *Pipeline) SetSleep(sleep func(ctx context.Context, d time.Duration) error) {
	p.sleep = sleep
}

// LaunchBlocker exposes launchBlocker for tests.
func LaunchBlocker(entry string, run *domain.PipelineRun) error {
	return launchBlocker(entry, run)
}
