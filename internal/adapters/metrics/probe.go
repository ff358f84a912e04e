// Package metrics provides a Prometheus implementation of the probe
// adapter.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
)

// Probe implements ports.Probe exporting counters for edges, lifecycle
// transitions and task outcomes plus a task duration histogram.
type Probe struct {
	edges       *prometheus.CounterVec
	transitions *prometheus.CounterVec
	running     prometheus.Gauge
	durations   prometheus.Histogram
	aborted     prometheus.Counter

	mu      sync.Mutex
	started map[uint64]time.Time
}

// New creates a Probe registered with reg. A nil reg uses the default
// registerer.
func New(reg prometheus.Registerer) *Probe {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)
	return &Probe{
		edges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "weft_edges_created_total",
			Help: "Dependency edges installed, by edge kind and dependency type.",
		}, []string{"kind", "dep_type"}),
		transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "weft_state_transitions_total",
			Help: "Task lifecycle transitions, by target state.",
		}, []string{"to"}),
		running: f.NewGauge(prometheus.GaugeOpts{
			Name: "weft_tasks_running",
			Help: "Tasks currently executing on a worker.",
		}),
		durations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "weft_task_duration_seconds",
			Help:    "Wall-clock task execution time.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 16),
		}),
		aborted: f.NewCounter(prometheus.CounterOpts{
			Name: "weft_tasks_aborted_total",
			Help: "Tasks that finished with an error.",
		}),
		started: make(map[uint64]time.Time),
	}
}

var _ ports.Probe = (*Probe)(nil)

// EdgeCreated counts the edge by kind and dependency type.
func (p *Probe) EdgeCreated(_, _ uint64, edge domain.Edge) {
	p.edges.WithLabelValues(edge.Kind.String(), edge.Dep.String()).Inc()
}

// StateChanged counts the transition by target state.
func (p *Probe) StateChanged(_ uint64, _, to domain.TaskStatus) {
	p.transitions.WithLabelValues(to.String()).Inc()
}

// TaskBegin marks the task running and records its start time.
func (p *Probe) TaskBegin(id uint64, _ string) {
	p.running.Inc()
	p.mu.Lock()
	p.started[id] = time.Now()
	p.mu.Unlock()
}

// TaskEnd observes the task's duration and counts aborts.
func (p *Probe) TaskEnd(id uint64, err error) {
	p.running.Dec()
	p.mu.Lock()
	start, ok := p.started[id]
	delete(p.started, id)
	p.mu.Unlock()
	if ok {
		p.durations.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		p.aborted.Inc()
	}
}
