// Package linear provides a synchronous, line-oriented pipeline observer for terminals and CI.
package linear

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/mpy/internal/ui/output"
	"go.trai.ch/mpy/internal/ui/style"
)

var _ ports.Observer = (*Renderer)(nil)

// Renderer implements ports.Observer.
// It outputs linear, chronological lines prefixed with the stage name.
type Renderer struct {
	w      io.Writer
	output *termenv.Output
	now    func() time.Time

	mu     sync.Mutex
	starts map[domain.Stage]time.Time
}

// NewRenderer creates a new Renderer writing to w, or to os.Stderr when w is nil.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stderr
	}

	return &Renderer{
		w:      w,
		output: output.New(w, false),
		now:    time.Now,
		starts: make(map[domain.Stage]time.Time),
	}
}

// OnStageStart prints a stage start message.
func (r *Renderer) OnStageStart(stage domain.Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.starts[stage] = r.now()
	_, _ = fmt.Fprintf(r.w, "%s Starting...\n", r.prefix(stage))
}

// OnFileComplete prints one line per handled file.
func (r *Renderer) OnFileComplete(stage domain.Stage, name string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.w, "%s %s %s: %v\n", r.prefix(stage), symbol, name, err)
		return
	}
	symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(r.w, "%s %s %s\n", r.prefix(stage), symbol, name)
}

// OnStageComplete prints the stage outcome and the counters observed so far.
func (r *Renderer) OnStageComplete(stage domain.Stage, status domain.StageStatus, counters domain.Counters) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var duration time.Duration
	if start, ok := r.starts[stage]; ok {
		duration = r.now().Sub(start).Round(time.Millisecond)
		delete(r.starts, stage)
	}

	prefix := r.prefix(stage)
	summary := r.output.String(counters.String()).Faint().String()

	switch status {
	case domain.StageStatusFailed:
		symbol := r.output.String(style.Cross).Foreground(termenv.ANSIRed).String()
		_, _ = fmt.Fprintf(r.w, "%s %s Failed after %v %s\n", prefix, symbol, duration, summary)
	case domain.StageStatusSkipped:
		symbol := r.output.String(style.Skip).Faint().String()
		_, _ = fmt.Fprintf(r.w, "%s %s Skipped\n", prefix, symbol)
	default:
		symbol := r.output.String(style.Check).Foreground(termenv.ANSIGreen).String()
		_, _ = fmt.Fprintf(r.w, "%s %s Completed in %v %s\n", prefix, symbol, duration, summary)
	}
}

// Close is a no-op; every line is written synchronously.
func (r *Renderer) Close() error {
	return nil
}

// prefix renders the stage label. Must be called with r.mu held.
func (r *Renderer) prefix(stage domain.Stage) string {
	return r.output.String(fmt.Sprintf("[%s]", stage)).Faint().String()
}
