package app

import (
	"context"
	"sync/atomic"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/engine/depend"
)

// TaskHandle is the caller's view of a submitted task. The handle holds one
// external reference on the underlying node; Release drops it.
type TaskHandle struct {
	do       *depend.DependableObject
	released atomic.Bool
}

// ID returns the task's id within its domain.
func (h *TaskHandle) ID() uint64 { return h.do.ID() }

// Wait blocks until the task finished or ctx is done. It returns the
// task's abort error, if any.
func (h *TaskHandle) Wait(ctx context.Context) error {
	return h.do.WaitForCompletion(ctx)
}

// Status returns the task's current lifecycle state.
func (h *TaskHandle) Status() domain.TaskStatus { return h.do.Status() }

// Aborted reports whether the task finished with an error.
func (h *TaskHandle) Aborted() bool { return h.do.Aborted() }

// Release drops the handle's reference on the node. Safe to call more than
// once; the runtime releases unreleased handles at shutdown.
func (h *TaskHandle) Release() {
	if h.released.CompareAndSwap(false, true) {
		h.do.DecreaseReferences()
	}
}
