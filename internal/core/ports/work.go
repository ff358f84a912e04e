package ports

import "context"

// WorkDescriptor is the unit of user work wrapped by a task node. The core
// is opaque to its contents and interacts only through this interface.
//
//go:generate go run go.uber.org/mock/mockgen -source=work.go -destination=mocks/mock_work.go -package=mocks
type WorkDescriptor interface {
	// Description names the work for logs, probes and the graph dump.
	Description() string

	// Run executes the work. It blocks until the work completes and is
	// invoked by a worker thread. A non-nil error marks the completion as
	// aborted; the dependency core still releases successors.
	Run(ctx context.Context) error

	// PredecessorFinished notifies the work that one of its predecessors
	// just completed. Used by instrumentation.
	PredecessorFinished(pred WorkDescriptor)

	// Size returns a heuristic resource accounting figure in bytes.
	Size() uint64
}
