package domain

// TaskStatus represents the lifecycle state of a node in the task graph.
type TaskStatus int32

const (
	// StatusUnsubmitted indicates linkage of the node is still in progress.
	StatusUnsubmitted TaskStatus = iota
	// StatusSubmitted indicates all dependency edges are in place.
	StatusSubmitted
	// StatusReady indicates the node has no unresolved predecessors and has
	// been handed to the scheduler.
	StatusReady
	// StatusRunning indicates the associated work is executing.
	StatusRunning
	// StatusFinished indicates the work completed (successfully or not).
	StatusFinished
	// StatusReaped indicates the node has been destroyed and removed from
	// all domain structures.
	StatusReaped
)

// String returns the string representation of the TaskStatus.
func (s TaskStatus) String() string {
	switch s {
	case StatusUnsubmitted:
		return "unsubmitted"
	case StatusSubmitted:
		return "submitted"
	case StatusReady:
		return "ready"
	case StatusRunning:
		return "running"
	case StatusFinished:
		return "finished"
	case StatusReaped:
		return "reaped"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the status is Finished or Reaped.
func (s TaskStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusReaped
}
