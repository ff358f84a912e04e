// Package config provides the configuration loader for weft pipelines.
package config

import (
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultFilename is the pipeline file looked up in the working directory.
const DefaultFilename = "weft.yaml"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Filename string
}

// NewLoader creates a Loader for the default filename.
func NewLoader() *Loader {
	return &Loader{Filename: DefaultFilename}
}

var _ ports.ConfigLoader = (*Loader)(nil)

// Load reads the pipeline definition from the given working directory.
func (l *Loader) Load(cwd string) (*ports.Pipeline, error) {
	name := l.Filename
	if name == "" {
		name = DefaultFilename
	}
	return Load(filepath.Join(cwd, name))
}

// Load reads a pipeline file from the given path.
func Load(path string) (*ports.Pipeline, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	var file Weftfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}

	return build(&file)
}

func build(file *Weftfile) (*ports.Pipeline, error) {
	if len(file.Tasks) == 0 {
		return nil, domain.ErrNoTasks
	}

	p := &ports.Pipeline{
		Settings: ports.Settings{
			Workers:            file.Runtime.Workers,
			QueueCapacity:      file.Runtime.QueueCapacity,
			AdmissionThreshold: file.Runtime.Admission.Threshold,
			AdmissionRate:      file.Runtime.Admission.Rate,
			Probe:              file.Runtime.Probe,
		},
	}

	// Buffer order in YAML maps is not stable; sort by name so synthetic
	// address assignment downstream is deterministic.
	names := make([]string, 0, len(file.Buffers))
	for name := range file.Buffers {
		names = append(names, name)
	}
	slices.Sort(names)
	known := make(map[string]bool, len(names))
	for _, name := range names {
		known[name] = true
		p.Buffers = append(p.Buffers, ports.Buffer{Name: name, Size: file.Buffers[name]})
	}

	seen := make(map[string]bool, len(file.Tasks))
	for _, t := range file.Tasks {
		if seen[t.Name] {
			return nil, zerr.With(domain.ErrDuplicateTask, "task", t.Name)
		}
		seen[t.Name] = true

		task := ports.PipelineTask{Name: t.Name, Command: t.Cmd}
		groups := []struct {
			buffers []string
			mode    domain.AccessMode
		}{
			{t.In, domain.AccessInput},
			{t.Out, domain.AccessOutput},
			{t.Inout, domain.AccessInout},
			{t.Concurrent, domain.AccessConcurrent},
			{t.Commutative, domain.AccessCommutative},
			{t.Any, domain.AccessAny},
		}
		for _, g := range groups {
			for _, buf := range g.buffers {
				if !known[buf] {
					return nil, zerr.With(zerr.With(domain.ErrUnknownBuffer, "task", t.Name), "buffer", buf)
				}
				task.Accesses = append(task.Accesses, ports.BufferAccess{Buffer: buf, Mode: g.mode})
			}
		}
		p.Tasks = append(p.Tasks, task)
	}

	return p, nil
}
