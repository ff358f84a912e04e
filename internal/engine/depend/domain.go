package depend

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

// Domain maintains the mapping from memory regions to their last producer
// and readers and derives dependency edges from access overlap. The domain
// lock serializes region-map mutation for one task's entire access
// registration; it is never held across a call into the schedule policy.
type Domain struct {
	policy ports.SchedulePolicy
	probe  ports.Probe
	log    ports.Logger

	nextID  atomic.Uint64
	drained atomic.Bool

	mu       sync.Mutex
	regions  regionMap
	live     map[uint64]*DependableObject
	finished []*DependableObject
	objects  map[uint64]domain.Region

	root *DependableObject
}

// NewDomain creates an empty dependency domain. The root node is the
// permanent ancestor: every submitted task links to it so its completion
// implies drain of the entire graph.
func NewDomain(policy ports.SchedulePolicy, probe ports.Probe, log ports.Logger) *Domain {
	d := &Domain{
		policy:  policy,
		probe:   probe,
		log:     log,
		live:    make(map[uint64]*DependableObject),
		objects: make(map[uint64]domain.Region),
	}
	d.root = newObject(d, domain.NodeRoot, nil)
	d.root.IncreasePredecessors()
	d.root.MarkSubmitted()
	return d
}

// Root returns the domain's permanent ancestor node.
func (d *Domain) Root() *DependableObject { return d.root }

// NewTask wraps work in a fresh unsubmitted task node owned by the domain.
func (d *Domain) NewTask(work ports.WorkDescriptor) *DependableObject {
	return newObject(d, domain.NodeTask, work)
}

// Submit registers the task's accesses, installs all data-ordering edges
// with previously submitted tasks, marks the task submitted and releases it
// if it has no unresolved predecessors. Submitting the same node twice is a
// programming error and aborts.
func (d *Domain) Submit(o *DependableObject, accesses []domain.Access) error {
	if o.IsSubmitted() {
		panic(zerr.With(domain.ErrDoubleSubmission, "task", o.id))
	}
	if len(accesses) == 0 {
		return domain.ErrEmptyAccessList
	}
	for _, a := range accesses {
		if err := a.Validate(); err != nil {
			return zerr.With(zerr.With(zerr.With(err, "base", a.Base), "length", a.Length), "mode", a.Mode.String())
		}
	}

	o.recordAccesses(accesses)

	plan := newSubmitPlan()
	d.mu.Lock()
	for _, a := range accesses {
		d.planAccessLocked(o, a, plan)
	}
	d.live[o.id] = o
	d.mu.Unlock()

	// Edges are installed only after the domain lock is released: every
	// insertion fires the policy hook, and the domain lock is never held
	// across a scheduler call.
	plan.install()

	// Pools closed by this submission drop their record hold only after the
	// edges from them are installed: a hold drop can cascade a release into
	// the policy.
	for _, g := range plan.holds {
		g.DecreasePredecessors(nil, false)
	}

	o.addSuccessor(d.root, domain.Edge{Kind: domain.EdgeSynchronization, Dep: domain.DepNull}, false)
	o.MarkSubmitted()
	o.maybeRelease()
	return nil
}

// plannedEdge is one edge decided under the domain lock and installed after
// it is released. reserved marks edges whose target count was already taken
// under the lock.
type plannedEdge struct {
	source   *DependableObject
	target   *DependableObject
	edge     domain.Edge
	reserved bool
}

type edgeIdentity struct {
	source *DependableObject
	target *DependableObject
	kind   domain.EdgeKind
	dep    domain.DepType
}

// submitPlan collects the edges and pool-hold drops one submission decided
// under the domain lock. Duplicates within the submission are dropped at
// planning time; duplicates against earlier submissions are dropped by
// addSuccessor itself.
type submitPlan struct {
	edges []plannedEdge
	holds []*DependableObject
	seen  map[edgeIdentity]bool
}

func newSubmitPlan() *submitPlan {
	return &submitPlan{seen: make(map[edgeIdentity]bool)}
}

func (p *submitPlan) link(source, target *DependableObject, e domain.Edge) bool {
	id := edgeIdentity{source: source, target: target, kind: e.Kind, dep: e.Dep}
	if p.seen[id] {
		return false
	}
	p.seen[id] = true
	p.edges = append(p.edges, plannedEdge{source: source, target: target, edge: e})
	return true
}

// linkReserved queues an edge whose target predecessor count the caller
// increments under the domain lock.
func (p *submitPlan) linkReserved(source, target *DependableObject, e domain.Edge) bool {
	if !p.link(source, target, e) {
		return false
	}
	p.edges[len(p.edges)-1].reserved = true
	return true
}

// install creates the planned edges in planning order. The caller must not
// hold the domain lock.
func (p *submitPlan) install() {
	for _, pe := range p.edges {
		pe.source.addSuccessor(pe.target, pe.edge, pe.reserved)
	}
}

// planAccessLocked updates the commit records one access covers and queues
// the edges it demands on the plan. Pool nodes closed by the access join
// the plan's hold list, dropped once the edges from them are installed.
func (d *Domain) planAccessLocked(o *DependableObject, a domain.Access, plan *submitPlan) {
	if a.Mode.Pooled() {
		d.planPooledLocked(o, a, plan)
		return
	}
	for _, rec := range d.regions.cover(a.Region()) {
		overlap := rec.region
		if rec.group != nil {
			// A non-matching access closes the pool. The pool node stays the
			// record's last writer, so ordering flows through it.
			plan.holds = append(plan.holds, rec.group.do)
			rec.group = nil
		}
		w := rec.lastWriter
		if a.Mode == domain.AccessInput {
			if w != nil {
				plan.link(w, o, domain.Edge{Kind: domain.EdgeDependency, Dep: readDepFrom(w), DataRange: overlap})
			}
			rec.readers[o] = struct{}{}
			continue
		}
		// Output or inout: WAW before WAR. An inout first takes the true
		// dependency on the prior writer's data.
		if w != nil {
			if a.Mode == domain.AccessInout {
				plan.link(w, o, domain.Edge{Kind: domain.EdgeDependency, Dep: readDepFrom(w), DataRange: overlap})
			}
			plan.link(w, o, domain.Edge{Kind: domain.EdgeDependency, Dep: writeDepFrom(w), DataRange: overlap})
		}
		for _, r := range rec.sortedReaders() {
			plan.link(r, o, domain.Edge{Kind: domain.EdgeDependency, Dep: domain.DepAnti, DataRange: overlap})
		}
		rec.lastWriter = o
		clear(rec.readers)
	}
}

// planPooledLocked joins o to the shared pool of each record the access
// covers, opening pools as needed. Members order against the state the pool
// opened over, never against each other. The member's count on the pool is
// reserved here, under the domain lock: a concurrent close must never
// observe the pool without this member.
func (d *Domain) planPooledLocked(o *DependableObject, a domain.Access, plan *submitPlan) {
	for _, rec := range d.regions.cover(a.Region()) {
		overlap := rec.region
		g := rec.group
		if g != nil && g.mode != a.Mode {
			plan.holds = append(plan.holds, g.do)
			rec.group = nil
			g = nil
		}
		if g == nil {
			g = d.openPoolLocked(a.Mode, rec)
		}
		if w := g.prevWriter; w != nil && w != o {
			plan.link(w, o, domain.Edge{Kind: domain.EdgeDependency, Dep: readDepFrom(w), DataRange: overlap})
		}
		for _, r := range g.prevReaders {
			if r != o {
				plan.link(r, o, domain.Edge{Kind: domain.EdgeDependency, Dep: domain.DepAnti, DataRange: overlap})
			}
		}
		if plan.linkReserved(o, g.do, domain.Edge{Kind: domain.EdgeDependency, Dep: inDep(a.Mode), DataRange: overlap}) {
			g.do.IncreasePredecessors()
		}
		if g.gate != nil {
			o.addGate(g.gate)
		}
	}
}

// openPoolLocked creates the pool node for one record and makes it the
// record's last writer. The record keeps a hold on the node so the pool can
// only finish once a non-matching access closes it.
func (d *Domain) openPoolLocked(mode domain.AccessMode, rec *commitRecord) *accessGroup {
	gdo := newObject(d, poolNodeType(mode), nil)
	gdo.poolMode = mode
	gdo.IncreasePredecessors()
	gdo.MarkSubmitted()
	g := &accessGroup{
		do:          gdo,
		mode:        mode,
		prevWriter:  rec.lastWriter,
		prevReaders: rec.sortedReaders(),
	}
	if mode == domain.AccessCommutative {
		g.gate = newGate(gdo.id)
	}
	d.live[gdo.id] = gdo
	rec.group = g
	rec.lastWriter = gdo
	clear(rec.readers)
	return g
}

// Taskwait blocks until every task submitted to the domain so far finished.
func (d *Domain) Taskwait(ctx context.Context) error {
	return d.waitCohort(ctx, domain.NodeTaskwait)
}

// Barrier blocks like Taskwait. Barrier nodes differ only in graph type so
// the dump can tell team-wide waits apart; the runtime issues one per
// domain of the team.
func (d *Domain) Barrier(ctx context.Context) error {
	return d.waitCohort(ctx, domain.NodeBarrier)
}

// waitCohort submits a waiter node with synchronization edges from every
// outstanding node, closing open pools, then blocks on its completion.
func (d *Domain) waitCohort(ctx context.Context, typ domain.NodeType) error {
	w := newObject(d, typ, nil)
	d.mu.Lock()
	pending := make([]*DependableObject, 0, len(d.live))
	for _, o := range d.live {
		pending = append(pending, o)
	}
	holds := d.closeAllPoolsLocked()
	d.live[w.id] = w
	d.mu.Unlock()

	slices.SortFunc(pending, func(a, b *DependableObject) int {
		return compareID(a.id, b.id)
	})
	for _, o := range pending {
		o.addSuccessor(w, domain.Edge{Kind: domain.EdgeSynchronization, Dep: domain.DepNull}, false)
	}
	for _, g := range holds {
		g.DecreasePredecessors(nil, false)
	}
	w.MarkSubmitted()
	w.maybeRelease()
	return w.WaitForCompletion(ctx)
}

// Drain closes all pools, drops the root's open hold and waits for the root
// to finish, which implies every submitted task finished.
func (d *Domain) Drain(ctx context.Context) error {
	d.mu.Lock()
	holds := d.closeAllPoolsLocked()
	d.mu.Unlock()
	for _, g := range holds {
		g.DecreasePredecessors(nil, false)
	}
	if d.drained.CompareAndSwap(false, true) {
		d.root.DecreasePredecessors(nil, false)
	}
	return d.root.WaitForCompletion(ctx)
}

func (d *Domain) closeAllPoolsLocked() []*DependableObject {
	var out []*DependableObject
	for _, rec := range d.regions.records {
		if rec.group != nil {
			out = append(out, rec.group.do)
			rec.group = nil
		}
	}
	return out
}

// RegisterObject attaches user memory regions so later accesses can
// intersect them and unregistration can validate quiescence. Registration
// is all-or-nothing: on error no region was attached.
func (d *Domain) RegisterObject(regions []domain.Region) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, r := range regions {
		if r.Empty() || r.Start == 0 {
			return zerr.With(zerr.With(domain.ErrInvalidAccess, "base", r.Start), "end", r.End)
		}
		for _, have := range d.objects {
			if have.Overlaps(r) {
				return zerr.With(zerr.With(domain.ErrObjectOverlap, "base", r.Start), "registered", have.Start)
			}
		}
	}
	for _, r := range regions {
		d.objects[r.Start] = r
	}
	return nil
}

// UnregisterObject detaches the object registered at base. It fails while
// tasks still hold accesses over the object's regions.
func (d *Domain) UnregisterObject(base uint64) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	r, ok := d.objects[base]
	if !ok {
		return zerr.With(domain.ErrObjectNotRegistered, "base", base)
	}
	for _, rec := range d.regions.overlapping(r) {
		if !rec.empty() {
			return zerr.With(zerr.With(domain.ErrObjectBusy, "base", base), "region_start", rec.region.Start)
		}
	}
	d.regions.drop(r)
	delete(d.objects, base)
	return nil
}

// Snapshot returns the domain's nodes, root first, with an external
// reference taken on each. The caller must release every node via
// DecreaseReferences when done.
func (d *Domain) Snapshot() []*DependableObject {
	d.mu.Lock()
	out := make([]*DependableObject, 0, len(d.live)+len(d.finished)+1)
	out = append(out, d.root)
	for _, o := range d.live {
		out = append(out, o)
	}
	out = append(out, d.finished...)
	for _, o := range out {
		o.IncreaseReferences()
	}
	d.mu.Unlock()

	slices.SortFunc(out, func(a, b *DependableObject) int {
		return compareID(a.id, b.id)
	})
	return out
}

// objectFinished scrubs a finished node from the region map before any
// later submission could link to it, then queues it for reaping.
func (d *Domain) objectFinished(o *DependableObject) {
	d.mu.Lock()
	d.regions.scrub(o)
	delete(d.live, o.id)
	d.finished = append(d.finished, o)
	d.mu.Unlock()
	o.DecreaseReferences()
}

// maybeReap destroys a finished node once its last external hold is gone.
func (d *Domain) maybeReap(o *DependableObject) {
	if !o.Finished() {
		return
	}
	d.mu.Lock()
	if o.references.Load() != 0 {
		d.mu.Unlock()
		return
	}
	idx := slices.Index(d.finished, o)
	if idx < 0 {
		d.mu.Unlock()
		return
	}
	d.finished = slices.Delete(d.finished, idx, idx+1)
	d.mu.Unlock()
	o.reap()
}

func poolNodeType(mode domain.AccessMode) domain.NodeType {
	if mode == domain.AccessCommutative {
		return domain.NodeCommutative
	}
	return domain.NodeConcurrent
}

func inDep(mode domain.AccessMode) domain.DepType {
	switch mode {
	case domain.AccessCommutative:
		return domain.DepInCommutative
	case domain.AccessAny:
		return domain.DepInAny
	default:
		return domain.DepInConcurrent
	}
}

func outDep(mode domain.AccessMode) domain.DepType {
	switch mode {
	case domain.AccessCommutative:
		return domain.DepOutCommutative
	case domain.AccessAny:
		return domain.DepOutAny
	default:
		return domain.DepOutConcurrent
	}
}

// readDepFrom types the edge a dependent access takes on the record's last
// writer: True for a task writer, the pool's out-type when the writer is a
// pool node.
func readDepFrom(w *DependableObject) domain.DepType {
	if w.poolMode.Pooled() {
		return outDep(w.poolMode)
	}
	return domain.DepTrue
}

// writeDepFrom types the write-after-write edge on the record's last writer.
func writeDepFrom(w *DependableObject) domain.DepType {
	if w.poolMode.Pooled() {
		return outDep(w.poolMode)
	}
	return domain.DepOutput
}
