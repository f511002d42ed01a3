package ports

import "go.trai.ch/mpy/internal/core/domain"

// Observer receives progress of a pipeline run as it happens.
// Calls for one run are never concurrent with each other.
//
//go:generate mockgen -source=observer.go -destination=mocks/mock_observer.go -package=mocks
type Observer interface {
	// OnStageStart is called when a stage begins.
	OnStageStart(stage domain.Stage)
	// OnFileComplete is called after each file of a stage was handled.
	// err is nil on success.
	OnFileComplete(stage domain.Stage, name string, err error)
	// OnStageComplete is called when a stage ends with the counters observed at that point.
	OnStageComplete(stage domain.Stage, status domain.StageStatus, counters domain.Counters)
	// Close flushes any buffered output.
	Close() error
}
