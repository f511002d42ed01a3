package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome is the terminal state of a PipelineRun.
type Outcome string

const (
	// OutcomeRunning is the state before the run terminates.
	OutcomeRunning Outcome = ""
	// OutcomeCompleted means every stage ran; individual files may still have failed.
	OutcomeCompleted Outcome = "completed"
	// OutcomeAborted means the run stopped before finishing its stages.
	OutcomeAborted Outcome = "aborted"
)

// Counters is a snapshot of the reporter counters.
// Within one run every field only ever increases.
type Counters struct {
	Discovered    uint64 `json:"discovered"`
	Compiled      uint64 `json:"compiled"`
	Skipped       uint64 `json:"skipped"`
	CompileFailed uint64 `json:"compile_failed"`
	Deployed      uint64 `json:"deployed"`
	DeployFailed  uint64 `json:"deploy_failed"`
}

// Failed reports whether any file failed to compile or deploy.
func (c Counters) Failed() bool {
	return c.CompileFailed > 0 || c.DeployFailed > 0
}

// String returns a one-line summary of the counters.
func (c Counters) String() string {
	return fmt.Sprintf("discovered=%d compiled=%d skipped=%d failed=%d deployed=%d deploy_failed=%d",
		c.Discovered, c.Compiled, c.Skipped, c.CompileFailed, c.Deployed, c.DeployFailed)
}

// PipelineRun is the aggregate of one pipeline invocation.
type PipelineRun struct {
	ID          string
	Config      Config
	Tasks       []BuildTask
	Results     []CompilationResult
	Units       []DeploymentUnit
	Deployments []DeployResult
	// Launched is set once the run directive was issued.
	Launched   bool
	LaunchErr  error
	Outcome    Outcome
	Counters   Counters
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewPipelineRun creates a run for the given configuration snapshot.
func NewPipelineRun(cfg Config) *PipelineRun {
	return &PipelineRun{
		ID:        uuid.NewString(),
		Config:    cfg,
		StartedAt: time.Now(),
	}
}

// Finish records the terminal outcome.
func (r *PipelineRun) Finish(outcome Outcome, counters Counters) {
	r.Outcome = outcome
	r.Counters = counters
	r.FinishedAt = time.Now()
}

// Duration returns the wall time of a finished run.
func (r *PipelineRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Failed reports whether the run aborted or recorded any per-file failure.
func (r *PipelineRun) Failed() bool {
	return r.Outcome == OutcomeAborted || r.Counters.Failed() || r.LaunchErr != nil
}
