package telemetry

import (
	"context"

	"github.com/grindlemire/graft"

	"go.trai.ch/weft/internal/core/ports"
)

// ProbeNodeID is the unique identifier for the default probe Graft node.
const ProbeNodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Probe]{
		ID:        ProbeNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Probe, error) {
			return NewNoOpProbe(), nil
		},
	})
}
