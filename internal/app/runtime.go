// Package app implements the application layer: the runtime context that
// threads through every public entry point. There is no process-wide
// singleton; callers keep the handle and pass it along.
package app

import (
	"context"
	"errors"
	"io"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"go.trai.ch/weft/internal/adapters/graphdump"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/engine/depend"
	"go.trai.ch/weft/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// Runtime owns the dependency domains of one team, the schedule policy and
// the worker pool.
type Runtime struct {
	id       uuid.UUID
	settings ports.Settings
	log      ports.Logger
	probe    ports.Probe
	policy   *scheduler.FIFO
	pool     *scheduler.Pool
	limiter  *rate.Limiter

	mu      sync.Mutex
	domains []*depend.Domain
	handles []*TaskHandle

	closed atomic.Bool
	cancel context.CancelFunc
}

// NewRuntime assembles a runtime context with one default domain.
func NewRuntime(settings ports.Settings, probe ports.Probe, log ports.Logger) *Runtime {
	policy := scheduler.NewFIFO()
	r := &Runtime{
		id:       uuid.New(),
		settings: settings,
		log:      log,
		probe:    probe,
		policy:   policy,
		pool:     scheduler.NewPool(policy, probe, log),
	}
	if threshold := r.admissionThreshold(); threshold > 0 && settings.AdmissionRate > 0 {
		r.limiter = rate.NewLimiter(rate.Limit(settings.AdmissionRate), 1)
	}
	r.domains = []*depend.Domain{depend.NewDomain(policy, probe, log)}
	return r
}

// ID returns the runtime instance id.
func (r *Runtime) ID() uuid.UUID { return r.id }

// Start launches the worker pool.
func (r *Runtime) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.pool.Start(ctx, r.settings.Workers)
	r.log.Info("runtime started", "instance", r.id.String(), "workers", r.settings.Workers)
}

// Default returns the default dependency domain.
func (r *Runtime) Default() *depend.Domain {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.domains[0]
}

// OpenDomain creates an additional domain in the team. Barrier drains it
// along with the default one.
func (r *Runtime) OpenDomain() *depend.Domain {
	d := depend.NewDomain(r.policy, r.probe, r.log)
	r.mu.Lock()
	r.domains = append(r.domains, d)
	r.mu.Unlock()
	return d
}

func (r *Runtime) teamDomains() []*depend.Domain {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.domains)
}

func (r *Runtime) admissionThreshold() int {
	if r.settings.AdmissionThreshold > 0 {
		return r.settings.AdmissionThreshold
	}
	return r.settings.QueueCapacity
}

// Submit wraps work in a task node, registers its accesses against the
// default domain and releases it once its dependencies resolve. Submission
// is throttled while the ready queue is saturated.
func (r *Runtime) Submit(ctx context.Context, work ports.WorkDescriptor, accesses []domain.Access) (*TaskHandle, error) {
	if r.closed.Load() {
		return nil, domain.ErrRuntimeClosed
	}
	if work == nil {
		return nil, domain.ErrNilWork
	}
	if r.limiter != nil && r.policy.QueueSize() > r.admissionThreshold() {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, zerr.Wrap(err, "admission wait interrupted")
		}
	}
	dom := r.Default()
	o := dom.NewTask(work)
	// The handle holds a reference so the node survives for waiters and the
	// graph dump until Release or shutdown.
	o.IncreaseReferences()
	h := &TaskHandle{do: o}
	if err := dom.Submit(o, accesses); err != nil {
		h.Release()
		return nil, err
	}
	r.mu.Lock()
	r.handles = append(r.handles, h)
	r.mu.Unlock()
	return h, nil
}

// Taskwait blocks until all prior submissions to the default domain
// finished.
func (r *Runtime) Taskwait(ctx context.Context) error {
	return r.Default().Taskwait(ctx)
}

// Barrier blocks until all tasks across the team's domains finished.
func (r *Runtime) Barrier(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, d := range r.teamDomains() {
		g.Go(func() error { return d.Barrier(ctx) })
	}
	return g.Wait()
}

// RegisterObject attaches user memory regions to the default domain.
func (r *Runtime) RegisterObject(regions []domain.Region) error {
	return r.Default().RegisterObject(regions)
}

// UnregisterObject detaches the object registered at base.
func (r *Runtime) UnregisterObject(base uint64) error {
	return r.Default().UnregisterObject(base)
}

// Dump serializes the team's task graphs to w.
func (r *Runtime) Dump(w io.Writer) error {
	return graphdump.Write(w, r.teamDomains()...)
}

// Shutdown stops admission, drains every domain and waits for the worker
// pool to exit.
func (r *Runtime) Shutdown(ctx context.Context) error {
	if r.closed.Swap(true) {
		return nil
	}
	var errs error
	for _, d := range r.teamDomains() {
		errs = errors.Join(errs, d.Drain(ctx))
	}
	r.mu.Lock()
	handles := r.handles
	r.handles = nil
	r.mu.Unlock()
	for _, h := range handles {
		h.Release()
	}
	errs = errors.Join(errs, r.pool.Stop())
	if r.cancel != nil {
		r.cancel()
	}
	r.log.Info("runtime stopped", "instance", r.id.String())
	return errs
}
