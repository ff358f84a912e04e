// Package progrock provides the Progrock implementation of the probe
// adapter: one vertex per executing task.
package progrock

import (
	"fmt"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
)

// Probe implements ports.Probe using the progrock library.
type Probe struct {
	w   progrock.Writer
	rec *progrock.Recorder

	mu       sync.Mutex
	vertices map[uint64]*progrock.VertexRecorder
}

// New creates a new Probe with a default tape.
func New() *Probe {
	tape := progrock.NewTape()
	return NewProbe(tape)
}

// NewProbe creates a new Probe with the given writer.
func NewProbe(w progrock.Writer) *Probe {
	return &Probe{
		w:        w,
		rec:      progrock.NewRecorder(w),
		vertices: make(map[uint64]*progrock.VertexRecorder),
	}
}

var _ ports.Probe = (*Probe)(nil)

// EdgeCreated does nothing: edges precede vertex creation and are carried by
// the graph dump instead.
func (p *Probe) EdgeCreated(_, _ uint64, _ domain.Edge) {}

// StateChanged does nothing: the vertex lifecycle is driven by
// TaskBegin/TaskEnd.
func (p *Probe) StateChanged(_ uint64, _, _ domain.TaskStatus) {}

// TaskBegin starts recording a vertex for the task.
func (p *Probe) TaskBegin(id uint64, description string) {
	d := digest.FromString(fmt.Sprintf("%d:%s", id, description))
	v := p.rec.Vertex(d, description)
	p.mu.Lock()
	p.vertices[id] = v
	p.mu.Unlock()
}

// TaskEnd completes the task's vertex, marking it failed on abort.
func (p *Probe) TaskEnd(id uint64, err error) {
	p.mu.Lock()
	v := p.vertices[id]
	delete(p.vertices, id)
	p.mu.Unlock()
	if v != nil {
		v.Done(err)
	}
}

// Close flushes and closes the recording session.
func (p *Probe) Close() error {
	if c, ok := p.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
