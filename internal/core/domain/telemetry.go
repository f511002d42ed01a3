package domain

// Stage is one step of the pipeline.
type Stage string

const (
	// StageDiscover enumerates sources and decides staleness.
	StageDiscover Stage = "discover"
	// StageCompile compiles stale sources.
	StageCompile Stage = "compile"
	// StageDeploy transfers artifacts to the target.
	StageDeploy Stage = "deploy"
	// StageLaunch imports and runs the entry module.
	StageLaunch Stage = "launch"
)

// StageStatus represents the lifecycle state of a stage.
type StageStatus string

const (
	// StageStatusRunning indicates the stage is executing.
	StageStatusRunning StageStatus = "running"
	// StageStatusCompleted indicates the stage finished; files inside it may have failed.
	StageStatusCompleted StageStatus = "completed"
	// StageStatusFailed indicates the stage could not run to the end.
	StageStatusFailed StageStatus = "failed"
	// StageStatusSkipped indicates the stage had nothing to do or was disabled.
	StageStatusSkipped StageStatus = "skipped"
)

// IsTerminal reports whether the status ends a stage.
func (s StageStatus) IsTerminal() bool {
	switch s {
	case StageStatusCompleted, StageStatusFailed, StageStatusSkipped:
		return true
	default:
		return false
	}
}

// Stages selects which stages a run executes after discovery.
type Stages struct {
	Compile bool
	Deploy  bool
	Launch  bool
}

// BuildOnly runs discovery and compilation.
func BuildOnly() Stages {
	return Stages{Compile: true}
}

// FullPipeline runs every stage.
func FullPipeline() Stages {
	return Stages{Compile: true, Deploy: true, Launch: true}
}
