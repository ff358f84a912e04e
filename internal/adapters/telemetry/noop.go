// Package telemetry provides probe adapters for the dependency core.
package telemetry

import (
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
)

// NoOpProbe is a no-op implementation of ports.Probe. It is the default
// probe: the core never couples to an instrumentation backend.
type NoOpProbe struct{}

// NewNoOpProbe creates a new NoOpProbe.
func NewNoOpProbe() *NoOpProbe {
	return &NoOpProbe{}
}

var _ ports.Probe = (*NoOpProbe)(nil)

// EdgeCreated does nothing.
func (p *NoOpProbe) EdgeCreated(_, _ uint64, _ domain.Edge) {}

// StateChanged does nothing.
func (p *NoOpProbe) StateChanged(_ uint64, _, _ domain.TaskStatus) {}

// TaskBegin does nothing.
func (p *NoOpProbe) TaskBegin(_ uint64, _ string) {}

// TaskEnd does nothing.
func (p *NoOpProbe) TaskEnd(_ uint64, _ error) {}
