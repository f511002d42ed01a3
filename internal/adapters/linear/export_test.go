package linear

import "time"

// SetClock replaces the time source used for stage durations.
func (r *Renderer) SetClock(now func() time.Time) {
	r.now = now
}
