package metrics_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"go.trai.ch/weft/internal/adapters/metrics"
	"go.trai.ch/weft/internal/core/domain"
)

func TestProbe_CountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := metrics.New(reg)

	p.EdgeCreated(1, 2, domain.Edge{Kind: domain.EdgeDependency, Dep: domain.DepTrue})
	p.EdgeCreated(2, 3, domain.Edge{Kind: domain.EdgeDependency, Dep: domain.DepTrue})
	p.EdgeCreated(1, 3, domain.Edge{Kind: domain.EdgeDependency, Dep: domain.DepAnti})
	p.StateChanged(1, domain.StatusSubmitted, domain.StatusReady)

	p.TaskBegin(1, "writer")
	p.TaskEnd(1, nil)
	p.TaskBegin(2, "reader")
	p.TaskEnd(2, errors.New("boom"))

	mfs, err := reg.Gather()
	assert.NoError(t, err)

	values := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			key := mf.GetName()
			for _, l := range m.GetLabel() {
				key += "/" + l.GetValue()
			}
			if m.GetCounter() != nil {
				values[key] = m.GetCounter().GetValue()
			}
		}
	}

	// Gathered label pairs are sorted by label name: dep_type before kind.
	assert.InDelta(t, 2.0, values["weft_edges_created_total/True/Dependency"], 0.01)
	assert.InDelta(t, 1.0, values["weft_edges_created_total/Anti/Dependency"], 0.01)
	assert.InDelta(t, 1.0, values["weft_state_transitions_total/ready"], 0.01)
	assert.InDelta(t, 1.0, values["weft_tasks_aborted_total"], 0.01)

	// Both tasks ended, so nothing is running.
	gauges := map[string]float64{}
	for _, mf := range mfs {
		for _, m := range mf.GetMetric() {
			if m.GetGauge() != nil {
				gauges[mf.GetName()] = m.GetGauge().GetValue()
			}
		}
	}
	assert.InDelta(t, 0.0, gauges["weft_tasks_running"], 0.01)
}
