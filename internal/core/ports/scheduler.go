// Package ports defines the core interfaces for the runtime.
package ports

import "context"

// SchedulePolicy is the boundary the dependency core depends on. It is a
// capability set, not an inheritance root: FIFO, work-stealing and priority
// policies differ only in how they order ready nodes.
//
//go:generate go run go.uber.org/mock/mockgen -source=scheduler.go -destination=mocks/mock_scheduler.go -package=mocks
type SchedulePolicy interface {
	// AtSuccessor is an advisory notification that target gained or lost a
	// predecessor. isNewEdge is true during edge creation and false when a
	// finished predecessor decremented the target. remaining is the
	// predecessor count after the event. The policy may update the node's
	// scheduler data but must not block on a lock owned by the caller.
	AtSuccessor(target Schedulable, source Schedulable, isNewEdge bool, remaining int)

	// Submit hands a ready node into the policy's runnable structure.
	// It must be non-blocking and thread-safe.
	Submit(ready Schedulable) error

	// QueueSize returns the number of runnable nodes currently queued.
	// Admission control uses it to throttle submission.
	QueueSize() int
}

// Schedulable is the view of a task-graph node the scheduler operates on:
// identity and scheduler data for policies, lifecycle for workers.
type Schedulable interface {
	// ID returns the node's id, unique within its domain.
	ID() uint64

	// Work returns the associated work descriptor, nil for waiter nodes.
	Work() WorkDescriptor

	// SchedulerData returns the opaque per-policy payload.
	SchedulerData() any

	// SetSchedulerData stores the opaque per-policy payload.
	SetSchedulerData(data any)

	// Gates returns the pool gates a worker must hold while running the
	// node's work, ordered by pool id.
	Gates() []Gate

	// MarkRunning transitions the node to running before its work starts.
	MarkRunning()

	// Finish records completion of the node's work. A non-nil err flags the
	// completion as aborted; successors are released regardless.
	Finish(err error)
}

// Gate serializes execution within a commutative pool. Workers acquire all
// of a node's gates in id order before running it.
type Gate interface {
	// ID returns the id of the pool node owning the gate.
	ID() uint64

	// Acquire blocks until the gate is free or ctx is done.
	Acquire(ctx context.Context) error

	// Release frees the gate for the next pool member.
	Release()
}
