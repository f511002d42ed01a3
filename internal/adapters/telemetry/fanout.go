package telemetry

import (
	"errors"

	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
)

var _ ports.Observer = Fanout(nil)

// Fanout forwards every callback to each observer in order.
type Fanout []ports.Observer

// OnStageStart implements ports.Observer.
func (f Fanout) OnStageStart(stage domain.Stage) {
	for _, o := range f {
		o.OnStageStart(stage)
	}
}

// OnFileComplete implements ports.Observer.
func (f Fanout) OnFileComplete(stage domain.Stage, name string, err error) {
	for _, o := range f {
		o.OnFileComplete(stage, name, err)
	}
}

// OnStageComplete implements ports.Observer.
func (f Fanout) OnStageComplete(stage domain.Stage, status domain.StageStatus, counters domain.Counters) {
	for _, o := range f {
		o.OnStageComplete(stage, status, counters)
	}
}

// Close closes every observer and joins their errors.
func (f Fanout) Close() error {
	errs := make([]error, 0, len(f))
	for _, o := range f {
		errs = append(errs, o.Close())
	}
	return errors.Join(errs...)
}
