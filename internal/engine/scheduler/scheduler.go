// Package scheduler provides the schedule policies and the worker pool that
// executes ready task nodes.
package scheduler

import (
	"sync"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
)

// Hint is the per-node scheduler data a policy records on AtSuccessor
// events: which node last touched the predecessor count and what remained.
type Hint struct {
	LastSource uint64
	NewEdge    bool
	Remaining  int
}

// FIFO is a first-in-first-out schedule policy. Ready nodes run in the
// order their dependencies resolved. It implements ports.SchedulePolicy.
type FIFO struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []ports.Schedulable
	closed bool
}

// NewFIFO creates an open FIFO policy.
func NewFIFO() *FIFO {
	f := &FIFO{}
	f.cond = sync.NewCond(&f.mu)
	return f
}

var _ ports.SchedulePolicy = (*FIFO)(nil)

// AtSuccessor records the event on the target's scheduler data. FIFO
// ordering itself ignores the hint.
func (f *FIFO) AtSuccessor(target, source ports.Schedulable, isNewEdge bool, remaining int) {
	h := Hint{NewEdge: isNewEdge, Remaining: remaining}
	if source != nil {
		h.LastSource = source.ID()
	}
	target.SetSchedulerData(h)
}

// Submit appends a ready node to the queue and wakes one worker. It never
// blocks.
func (f *FIFO) Submit(ready ports.Schedulable) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return domain.ErrQueueClosed
	}
	f.queue = append(f.queue, ready)
	f.cond.Signal()
	return nil
}

// QueueSize returns the number of queued ready nodes.
func (f *FIFO) QueueSize() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Next blocks until a ready node is available or the policy is closed.
// Nodes queued before Close still drain; ok is false once the queue is
// closed and empty.
func (f *FIFO) Next() (next ports.Schedulable, ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.queue) == 0 && !f.closed {
		f.cond.Wait()
	}
	if len(f.queue) == 0 {
		return nil, false
	}
	next = f.queue[0]
	f.queue = f.queue[1:]
	return next, true
}

// Close stops admission and wakes all blocked workers.
func (f *FIFO) Close() {
	f.mu.Lock()
	f.closed = true
	f.mu.Unlock()
	f.cond.Broadcast()
}
