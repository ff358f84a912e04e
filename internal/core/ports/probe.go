package ports

import "go.trai.ch/weft/internal/core/domain"

// Probe receives instrumentation events from the dependency core.
// Implementations must be safe for concurrent use and must not call back
// into the runtime. The default implementation is a no-op.
//
//go:generate go run go.uber.org/mock/mockgen -source=probe.go -destination=mocks/mock_probe.go -package=mocks
type Probe interface {
	// EdgeCreated fires once per installed edge.
	EdgeCreated(source, target uint64, edge domain.Edge)

	// StateChanged fires on every lifecycle transition of a node.
	StateChanged(id uint64, from, to domain.TaskStatus)

	// TaskBegin fires when a worker starts executing a node's work.
	TaskBegin(id uint64, description string)

	// TaskEnd fires when the work completes. err is non-nil on abort.
	TaskEnd(id uint64, err error)
}
