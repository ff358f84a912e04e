package depend

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

// edgeKey identifies an edge between one (source, target) pair. Re-inserting
// an edge with the same key is a no-op.
type edgeKey struct {
	kind domain.EdgeKind
	dep  domain.DepType
}

// SuccessorEdge pairs an installed edge with its target node, as exposed to
// the task-graph serializer.
type SuccessorEdge struct {
	Target *DependableObject
	Edge   domain.Edge
}

// Gate serializes execution of commutative pool members. It implements
// ports.Gate on a weight-1 semaphore.
type Gate struct {
	id  uint64
	sem *semaphore.Weighted
}

func newGate(id uint64) *Gate {
	return &Gate{id: id, sem: semaphore.NewWeighted(1)}
}

// ID returns the id of the pool node owning the gate.
func (g *Gate) ID() uint64 { return g.id }

// Acquire blocks until the gate is free or ctx is done.
func (g *Gate) Acquire(ctx context.Context) error { return g.sem.Acquire(ctx, 1) }

// Release frees the gate for the next pool member.
func (g *Gate) Release() { g.sem.Release(1) }

// DependableObject is a node in the dynamic task graph: predecessor count,
// successor edges, lifecycle latches and the access lists it owns. All graph
// mutations happen under the per-object mutex; counters and latches are
// atomic so readers never take the lock.
type DependableObject struct {
	id       uint64
	dom      *Domain
	typ      domain.NodeType
	work     ports.WorkDescriptor
	poolMode domain.AccessMode

	numPredecessors atomic.Int32
	references      atomic.Int32
	submitted       atomic.Bool
	released        atomic.Bool
	status          atomic.Int32
	aborted         atomic.Bool

	mu              sync.Mutex
	finished        bool
	needsSubmission bool
	predecessors    map[*DependableObject]struct{}
	successors      map[*DependableObject]map[edgeKey]domain.Region
	readAccesses    []domain.Access
	writeAccesses   []domain.Access
	gates           []ports.Gate
	err             error

	done chan struct{}

	sdMu          sync.Mutex
	schedulerData any
}

func newObject(dom *Domain, typ domain.NodeType, work ports.WorkDescriptor) *DependableObject {
	o := &DependableObject{
		id:           dom.nextID.Add(1),
		dom:          dom,
		typ:          typ,
		work:         work,
		predecessors: make(map[*DependableObject]struct{}),
		successors:   make(map[*DependableObject]map[edgeKey]domain.Region),
		done:         make(chan struct{}),
	}
	o.needsSubmission = true
	o.references.Store(1)
	return o
}

// ID returns the node's id, unique within its domain.
func (o *DependableObject) ID() uint64 { return o.id }

// Type returns the node's graph type.
func (o *DependableObject) Type() domain.NodeType { return o.typ }

// Work returns the associated work descriptor, nil for waiter and pool nodes.
func (o *DependableObject) Work() ports.WorkDescriptor { return o.work }

// Description names the node for logs and the graph dump.
func (o *DependableObject) Description() string {
	if o.work != nil {
		return o.work.Description()
	}
	return o.typ.String()
}

// Waits reports whether the node is a universal sink for its cohort
// (root, taskwait, barrier) rather than a unit of user work.
func (o *DependableObject) Waits() bool {
	switch o.typ {
	case domain.NodeRoot, domain.NodeTaskwait, domain.NodeBarrier:
		return true
	default:
		return false
	}
}

// SchedulerData returns the opaque per-policy payload.
func (o *DependableObject) SchedulerData() any {
	o.sdMu.Lock()
	defer o.sdMu.Unlock()
	return o.schedulerData
}

// SetSchedulerData stores the opaque per-policy payload.
func (o *DependableObject) SetSchedulerData(data any) {
	o.sdMu.Lock()
	o.schedulerData = data
	o.sdMu.Unlock()
}

// Status returns the node's current lifecycle state.
func (o *DependableObject) Status() domain.TaskStatus {
	return domain.TaskStatus(o.status.Load())
}

func (o *DependableObject) setStatus(to domain.TaskStatus) {
	from := domain.TaskStatus(o.status.Swap(int32(to)))
	if from != to {
		o.dom.probe.StateChanged(o.id, from, to)
	}
}

// NeedsSubmission reports whether the node's predecessor linkage is still
// in progress. The graph serializer skips such nodes.
func (o *DependableObject) NeedsSubmission() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.needsSubmission
}

// IsSubmitted reports whether the submitted latch is set.
func (o *DependableObject) IsSubmitted() bool { return o.submitted.Load() }

// NumPredecessors returns the current unresolved predecessor count.
func (o *DependableObject) NumPredecessors() int { return int(o.numPredecessors.Load()) }

// IncreasePredecessors adds one unresolved predecessor and returns the new
// count. Used for phantom holds that keep pool and root nodes open.
func (o *DependableObject) IncreasePredecessors() int {
	return int(o.numPredecessors.Add(1))
}

// DecreasePredecessors resolves one predecessor. finishedPred is the node
// that completed, or nil when dropping a phantom hold. With batch set the
// release is deferred so a caller resolving many predecessors can emit a
// single notification via ReleaseDeferred.
func (o *DependableObject) DecreasePredecessors(finishedPred *DependableObject, batch bool) int {
	n := int(o.numPredecessors.Add(-1))
	if n < 0 {
		panic(zerr.With(zerr.New("predecessor count underflow"), "task", o.id))
	}
	if finishedPred != nil {
		o.dom.policy.AtSuccessor(o, finishedPred, false, n)
		if o.work != nil && finishedPred.work != nil {
			o.work.PredecessorFinished(finishedPred.work)
		}
		o.mu.Lock()
		delete(o.predecessors, finishedPred)
		o.mu.Unlock()
	}
	if n == 0 && !batch {
		o.dependenciesSatisfied()
	}
	return n
}

// ReleaseDeferred releases the object if a batch of deferred decrements
// brought its predecessor count to zero.
func (o *DependableObject) ReleaseDeferred() {
	if o.numPredecessors.Load() == 0 {
		o.dependenciesSatisfied()
	}
}

// MarkSubmitted publishes the submitted latch once all predecessor linkage
// for the object is in place. Submitting twice is a programming error.
func (o *DependableObject) MarkSubmitted() {
	if o.submitted.Swap(true) {
		panic(zerr.With(domain.ErrDoubleSubmission, "task", o.id))
	}
	o.mu.Lock()
	o.needsSubmission = false
	o.mu.Unlock()
	o.setStatus(domain.StatusSubmitted)
}

// maybeRelease hands the object to the scheduler if its initial predecessor
// count already resolved to zero.
func (o *DependableObject) maybeRelease() {
	if o.numPredecessors.Load() == 0 {
		o.dependenciesSatisfied()
	}
}

// dependenciesSatisfied releases the object to the scheduler. Both the
// submitter's post-linkage check and a racing final decrement can observe a
// zero count after the submitted latch; the released latch guarantees a
// single handoff.
func (o *DependableObject) dependenciesSatisfied() {
	if !o.submitted.Load() {
		return
	}
	if !o.released.CompareAndSwap(false, true) {
		return
	}
	o.setStatus(domain.StatusReady)
	if o.work == nil {
		// Waiter and pool nodes carry no user work; completion is immediate.
		o.Finish(nil)
		return
	}
	if err := o.dom.policy.Submit(o); err != nil {
		o.dom.log.Error(zerr.With(err, "task", o.id))
		o.Finish(err)
	}
}

// addSuccessor installs the edge o→t, makes o a predecessor of t and
// notifies the policy. It is a no-op if an equivalent edge already exists or
// o already finished, in which case the ordering the edge would impose is
// already met; a count the caller reserved for a skipped edge is returned.
// Locks are taken source before target; the graph is acyclic, so the order
// is global.
func (o *DependableObject) addSuccessor(t *DependableObject, e domain.Edge, reserved bool) bool {
	if t == nil || o == t {
		return false
	}
	o.mu.Lock()
	if o.finished {
		o.mu.Unlock()
		o.undoReservation(t, reserved)
		return false
	}
	k := edgeKey{kind: e.Kind, dep: e.Dep}
	if set := o.successors[t]; set != nil {
		if _, dup := set[k]; dup {
			o.mu.Unlock()
			o.undoReservation(t, reserved)
			return false
		}
	}

	t.mu.Lock()
	if t.predecessors == nil {
		// Target already reaped; the ordering the edge would impose is moot.
		t.mu.Unlock()
		o.mu.Unlock()
		o.undoReservation(t, reserved)
		return false
	}
	set := o.successors[t]
	if set == nil {
		set = make(map[edgeKey]domain.Region)
		o.successors[t] = set
	}
	set[k] = e.DataRange
	t.predecessors[o] = struct{}{}
	t.mu.Unlock()

	remaining := int(t.numPredecessors.Load())
	if !reserved {
		remaining = int(t.numPredecessors.Add(1))
	}
	o.dom.policy.AtSuccessor(t, o, true, remaining)
	o.mu.Unlock()

	o.dom.probe.EdgeCreated(o.id, t.id, e)
	return true
}

// undoReservation returns a predecessor count the caller reserved under the
// domain lock for an edge that was not installed.
func (o *DependableObject) undoReservation(t *DependableObject, reserved bool) {
	if reserved {
		t.DecreasePredecessors(nil, false)
	}
}

// MarkRunning transitions the object to running. Only the worker that
// received the object from the schedule policy may call it.
func (o *DependableObject) MarkRunning() {
	if n := o.numPredecessors.Load(); n != 0 {
		panic(zerr.With(zerr.With(zerr.New("running with unresolved predecessors"), "task", o.id), "remaining", n))
	}
	o.setStatus(domain.StatusRunning)
}

// Finish records completion of the object's work and releases successors.
// A non-nil err flags the completion as aborted; successors are released
// regardless, in id order.
func (o *DependableObject) Finish(err error) {
	o.mu.Lock()
	if o.finished {
		o.mu.Unlock()
		return
	}
	o.finished = true
	o.err = err
	succs := make([]*DependableObject, 0, len(o.successors))
	for s := range o.successors {
		succs = append(succs, s)
	}
	o.mu.Unlock()

	if err != nil {
		o.aborted.Store(true)
	}
	o.setStatus(domain.StatusFinished)
	close(o.done)

	slices.SortFunc(succs, func(a, b *DependableObject) int {
		return compareID(a.id, b.id)
	})
	for _, s := range succs {
		s.DecreasePredecessors(o, false)
	}
	o.dom.objectFinished(o)
}

// Finished reports whether the object's work completed.
func (o *DependableObject) Finished() bool {
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}

// Aborted reports whether the object finished with an error.
func (o *DependableObject) Aborted() bool { return o.aborted.Load() }

// Err returns the error the object finished with, if any.
func (o *DependableObject) Err() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.err
}

// WaitForCompletion blocks until the object finished or ctx is done. It
// returns the abort error of the object, if any.
func (o *DependableObject) WaitForCompletion(ctx context.Context) error {
	select {
	case <-o.done:
		return o.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IncreaseReferences registers an external hold that prevents reaping.
func (o *DependableObject) IncreaseReferences() {
	o.references.Add(1)
}

// DecreaseReferences drops an external hold. The object is reaped once it
// finished and the last hold is gone.
func (o *DependableObject) DecreaseReferences() {
	n := o.references.Add(-1)
	if n < 0 {
		panic(zerr.With(zerr.New("reference count underflow"), "task", o.id))
	}
	if n == 0 {
		o.dom.maybeReap(o)
	}
}

// Gates returns the pool gates the worker must hold while running the
// object's work, ordered by pool id.
func (o *DependableObject) Gates() []ports.Gate {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gates
}

func (o *DependableObject) addGate(g ports.Gate) {
	o.mu.Lock()
	for _, have := range o.gates {
		if have.ID() == g.ID() {
			o.mu.Unlock()
			return
		}
	}
	o.gates = append(o.gates, g)
	slices.SortFunc(o.gates, func(a, b ports.Gate) int {
		return compareID(a.ID(), b.ID())
	})
	o.mu.Unlock()
}

// recordAccesses stores the object's owned access lists. They are defined at
// submission and immutable afterward.
func (o *DependableObject) recordAccesses(accesses []domain.Access) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, a := range accesses {
		if a.Mode.Reads() {
			o.readAccesses = append(o.readAccesses, a)
		}
		if a.Mode.Writes() {
			o.writeAccesses = append(o.writeAccesses, a)
		}
	}
}

// ReadAccesses returns a copy of the object's read access list.
func (o *DependableObject) ReadAccesses() []domain.Access {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.readAccesses)
}

// WriteAccesses returns a copy of the object's write access list.
func (o *DependableObject) WriteAccesses() []domain.Access {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.writeAccesses)
}

// Successors returns a snapshot of the installed outgoing edges, expanded
// per edge kind, ordered by target id.
func (o *DependableObject) Successors() []SuccessorEdge {
	o.mu.Lock()
	out := make([]SuccessorEdge, 0, len(o.successors))
	for t, set := range o.successors {
		for k, r := range set {
			out = append(out, SuccessorEdge{
				Target: t,
				Edge:   domain.Edge{Kind: k.kind, Dep: k.dep, DataRange: r},
			})
		}
	}
	o.mu.Unlock()
	slices.SortFunc(out, func(a, b SuccessorEdge) int {
		if a.Target.id != b.Target.id {
			return compareID(a.Target.id, b.Target.id)
		}
		return int(a.Edge.Kind) - int(b.Edge.Kind)
	})
	return out
}

// reap frees the object's graph storage after completion. It removes the
// object from its predecessors' successor sets under each predecessor's
// lock, then clears its own sets.
func (o *DependableObject) reap() {
	o.mu.Lock()
	preds := make([]*DependableObject, 0, len(o.predecessors))
	for p := range o.predecessors {
		preds = append(preds, p)
	}
	o.mu.Unlock()

	for _, p := range preds {
		p.mu.Lock()
		delete(p.successors, o)
		p.mu.Unlock()
	}

	o.mu.Lock()
	o.predecessors = nil
	o.successors = nil
	o.readAccesses = nil
	o.writeAccesses = nil
	o.gates = nil
	o.mu.Unlock()
	o.setStatus(domain.StatusReaped)
}
