// Package shell provides a work descriptor that runs a command.
package shell

import (
	"context"
	"os/exec"
	"strings"
	"sync/atomic"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

// CommandWork implements ports.WorkDescriptor by executing a command.
type CommandWork struct {
	name string
	argv []string
	size uint64
	log  ports.Logger

	predsSeen atomic.Int64
}

// NewCommandWork wraps a command line in a work descriptor. size is the
// heuristic resource accounting figure, typically the sum of the task's
// declared access lengths.
func NewCommandWork(name string, argv []string, size uint64, log ports.Logger) *CommandWork {
	return &CommandWork{name: name, argv: argv, size: size, log: log}
}

var _ ports.WorkDescriptor = (*CommandWork)(nil)

// Description returns the task name.
func (w *CommandWork) Description() string { return w.name }

// Run executes the command and waits for it. A task with no command is a
// no-op placeholder.
func (w *CommandWork) Run(ctx context.Context) error {
	if len(w.argv) == 0 {
		return nil
	}
	cmd := exec.CommandContext(ctx, w.argv[0], w.argv[1:]...) //nolint:gosec // command comes from the user's pipeline file
	out, err := cmd.CombinedOutput()
	if trimmed := strings.TrimSpace(string(out)); trimmed != "" {
		w.log.Info(trimmed, "task", w.name)
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrTaskFailed.Error()), "task", w.name)
	}
	return nil
}

// PredecessorFinished counts completed predecessors.
func (w *CommandWork) PredecessorFinished(_ ports.WorkDescriptor) {
	w.predsSeen.Add(1)
}

// PredecessorsObserved returns how many predecessor completions the work
// was notified about.
func (w *CommandWork) PredecessorsObserved() int64 {
	return w.predsSeen.Load()
}

// Size returns the heuristic resource accounting figure in bytes.
func (w *CommandWork) Size() uint64 { return w.size }
