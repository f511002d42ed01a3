// Package telemetry provides pipeline observers that do not render to a terminal.
package telemetry

import (
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
)

var _ ports.Observer = (*NoOpObserver)(nil)

// NoOpObserver is a no-op implementation of ports.Observer.
type NoOpObserver struct{}

// NewNoOpObserver creates a new NoOpObserver.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// OnStageStart does nothing.
func (o *NoOpObserver) OnStageStart(domain.Stage) {}

// OnFileComplete does nothing.
func (o *NoOpObserver) OnFileComplete(domain.Stage, string, error) {}

// OnStageComplete does nothing.
func (o *NoOpObserver) OnStageComplete(domain.Stage, domain.StageStatus, domain.Counters) {}

// Close does nothing.
func (o *NoOpObserver) Close() error {
	return nil
}
