package ports

import "go.trai.ch/weft/internal/core/domain"

// Pipeline is a parsed weft.yaml: runtime settings plus a set of tasks
// operating on named buffers.
type Pipeline struct {
	Settings Settings
	Buffers  []Buffer
	Tasks    []PipelineTask
}

// Settings carries the runtime tunables of a pipeline file.
type Settings struct {
	// Workers is the worker pool size; zero means GOMAXPROCS.
	Workers int
	// QueueCapacity is the ready-queue depth used as the admission threshold
	// when AdmissionThreshold is zero. The ready queue itself is unbounded.
	QueueCapacity int
	// AdmissionThreshold is the ready-queue depth above which submission is
	// throttled; zero falls back to QueueCapacity. Admission control is off
	// when both are zero or AdmissionRate is zero.
	AdmissionThreshold int
	// AdmissionRate is the throttled submission rate per second.
	AdmissionRate float64
	// Probe selects the instrumentation backend: "none", "progress" or
	// "prometheus". Empty means none.
	Probe string
}

// Buffer is a named synthetic memory object a pipeline's tasks access.
type Buffer struct {
	Name string
	Size uint64
}

// PipelineTask is one task declaration: a command plus buffer accesses.
type PipelineTask struct {
	Name     string
	Command  []string
	Accesses []BufferAccess
}

// BufferAccess binds a buffer name to an access mode.
type BufferAccess struct {
	Buffer string
	Mode   domain.AccessMode
}

// ConfigLoader loads a pipeline definition from a working directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	Load(cwd string) (*Pipeline, error)
}
