// Package progrock records pipeline stages on a Progrock tape and keeps a
// journal of every run that can be replayed later.
package progrock

import (
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/mpy/internal/core/domain"
	"go.trai.ch/mpy/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Observer = (*Recorder)(nil)

// Recorder implements ports.Observer with one progrock vertex per stage.
type Recorder struct {
	rec      *progrock.Recorder
	runID    string
	mu       sync.Mutex
	vertices map[domain.Stage]*progrock.VertexRecorder
}

// Open creates a Recorder whose run is also written to a journal in dir.
func Open(dir, runID string) (*Recorder, error) {
	journal, err := createJournal(dir, runID)
	if err != nil {
		return nil, err
	}
	return NewRecorder(journal, runID), nil
}

// NewRecorder creates a new Recorder with the given writer.
func NewRecorder(w progrock.Writer, runID string) *Recorder {
	return &Recorder{
		rec:      progrock.NewRecorder(w),
		runID:    runID,
		vertices: make(map[domain.Stage]*progrock.VertexRecorder),
	}
}

// OnStageStart starts the vertex of a stage.
func (r *Recorder) OnStageStart(stage domain.Stage) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := digest.FromString(r.runID + "/" + string(stage))
	r.vertices[stage] = r.rec.Vertex(d, string(stage))
}

// OnFileComplete writes one line per file to the stage vertex.
func (r *Recorder) OnFileComplete(stage domain.Stage, name string, err error) {
	v := r.vertex(stage)
	if v == nil {
		return
	}
	if err != nil {
		_, _ = fmt.Fprintf(v.Stderr(), "%s: %v\n", name, err)
		return
	}
	_, _ = fmt.Fprintf(v.Stdout(), "%s\n", name)
}

// OnStageComplete marks the stage vertex as done.
func (r *Recorder) OnStageComplete(stage domain.Stage, status domain.StageStatus, counters domain.Counters) {
	r.mu.Lock()
	v, ok := r.vertices[stage]
	delete(r.vertices, stage)
	r.mu.Unlock()

	if !ok {
		if status != domain.StageStatusSkipped {
			return
		}
		d := digest.FromString(r.runID + "/" + string(stage))
		v = r.rec.Vertex(d, string(stage))
	}

	_, _ = fmt.Fprintln(v.Stdout(), counters.String())

	switch status {
	case domain.StageStatusSkipped:
		v.Cached()
		v.Done(nil)
	case domain.StageStatusFailed:
		v.Done(zerr.With(domain.ErrPipelineFailed, "stage", string(stage)))
	default:
		v.Done(nil)
	}
}

// Close completes the recording and closes its writer.
func (r *Recorder) Close() error {
	r.rec.Complete()
	return r.rec.Close()
}

func (r *Recorder) vertex(stage domain.Stage) *progrock.VertexRecorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.vertices[stage]
}
