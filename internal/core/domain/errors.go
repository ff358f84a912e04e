package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidAccess is returned when an access descriptor has a zero base
	// with a non-zero length, or covers no bytes at all.
	ErrInvalidAccess = zerr.New("invalid access descriptor")

	// ErrEmptyAccessList is returned when a task is submitted without any
	// access declarations.
	ErrEmptyAccessList = zerr.New("empty access list")

	// ErrNilWork is returned when a task is submitted without a work descriptor.
	ErrNilWork = zerr.New("nil work descriptor")

	// ErrDoubleSubmission reports that a task node was submitted twice.
	// Double submission is a programming error and aborts the process.
	ErrDoubleSubmission = zerr.New("dependable object submitted twice")

	// ErrObjectNotRegistered is returned when unregistering a base address
	// that was never registered.
	ErrObjectNotRegistered = zerr.New("object not registered")

	// ErrObjectBusy is returned when unregistering an object while tasks
	// still reference its regions.
	ErrObjectBusy = zerr.New("object has outstanding accesses")

	// ErrObjectOverlap is returned when registering a region that overlaps
	// an already registered object.
	ErrObjectOverlap = zerr.New("object overlaps a registered region")

	// ErrRuntimeClosed is returned when submitting after shutdown began.
	ErrRuntimeClosed = zerr.New("runtime is shut down")

	// ErrQueueClosed is returned when handing a task to a stopped scheduler.
	ErrQueueClosed = zerr.New("ready queue is closed")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnknownBuffer is returned when a pipeline task references a buffer
	// that is not declared.
	ErrUnknownBuffer = zerr.New("unknown buffer")

	// ErrDuplicateTask is returned when a pipeline declares two tasks with
	// the same name.
	ErrDuplicateTask = zerr.New("duplicate task name")

	// ErrNoTasks is returned when a pipeline declares no tasks.
	ErrNoTasks = zerr.New("pipeline declares no tasks")

	// ErrTaskFailed is returned when a pipeline task's command fails.
	ErrTaskFailed = zerr.New("task execution failed")
)
