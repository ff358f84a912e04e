package graphdump_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.trai.ch/weft/internal/adapters/graphdump"
	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/core/ports"
	"go.trai.ch/weft/internal/engine/depend"
)

type dropPolicy struct{}

func (dropPolicy) AtSuccessor(_, _ ports.Schedulable, _ bool, _ int) {}
func (dropPolicy) Submit(_ ports.Schedulable) error                  { return nil }
func (dropPolicy) QueueSize() int                                    { return 0 }

type nopProbe struct{}

func (nopProbe) EdgeCreated(_, _ uint64, _ domain.Edge)        {}
func (nopProbe) StateChanged(_ uint64, _, _ domain.TaskStatus) {}
func (nopProbe) TaskBegin(_ uint64, _ string)                  {}
func (nopProbe) TaskEnd(_ uint64, _ error)                     {}

type nopLogger struct{}

func (nopLogger) Info(_ string, _ ...any) {}
func (nopLogger) Warn(_ string, _ ...any) {}
func (nopLogger) Error(_ error)           {}

type namedWork struct{ name string }

func (w *namedWork) Description() string                        { return w.name }
func (w *namedWork) Run(_ context.Context) error                { return nil }
func (w *namedWork) PredecessorFinished(_ ports.WorkDescriptor) {}
func (w *namedWork) Size() uint64                               { return 0 }

func TestWrite_SerializesNodesAndEdges(t *testing.T) {
	d := depend.NewDomain(dropPolicy{}, nopProbe{}, nopLogger{})

	a := d.NewTask(&namedWork{name: "writer"})
	require.NoError(t, d.Submit(a, []domain.Access{domain.NewAccess(0x1000, 64, domain.AccessOutput)}))
	b := d.NewTask(&namedWork{name: "reader"})
	require.NoError(t, d.Submit(b, []domain.Access{domain.NewAccess(0x1020, 64, domain.AccessInput)}))

	var buf bytes.Buffer
	require.NoError(t, graphdump.Write(&buf, d))

	var doc graphdump.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	byType := map[string]int{}
	var writer, reader *graphdump.NodeRecord
	for i := range doc.Nodes {
		n := &doc.Nodes[i]
		byType[n.Type]++
		switch n.WdID {
		case int64(a.ID()):
			writer = n
		case int64(b.ID()):
			reader = n
		}
	}

	assert.Equal(t, 1, byType["Root"])
	assert.Equal(t, 2, byType["Task"])
	require.NotNil(t, writer)
	require.NotNil(t, reader)
	assert.NotZero(t, writer.FuncID)

	// The data dependency writer->reader covers the overlapping range with
	// inclusive addresses.
	var dep *graphdump.EdgeRecord
	for i := range writer.ExitEdges {
		if writer.ExitEdges[i].Kind == "Dependency" {
			dep = &writer.ExitEdges[i]
		}
	}
	require.NotNil(t, dep, "missing dependency exit edge on the writer")
	assert.Equal(t, "True", dep.DepType)
	assert.Equal(t, reader.WdID, dep.Target)
	assert.Equal(t, uint64(0x1020), dep.DataRange.StartAddress)
	assert.Equal(t, uint64(0x103f), dep.DataRange.EndAddress)
	assert.Equal(t, uint64(0x20), dep.DataRange.Size)

	// The writer has no data predecessor, so it nests under the root.
	nested := false
	for _, e := range writer.EntryEdges {
		if e.Kind == "Nesting" {
			nested = true
		}
	}
	assert.True(t, nested, "writer should carry a nesting entry edge from the root")

	// IO accesses use inclusive addresses too.
	require.Len(t, writer.IoAccesses, 1)
	io := writer.IoAccesses[0]
	assert.False(t, io.IsInput)
	assert.True(t, io.IsOutput)
	assert.Equal(t, uint64(0x1000), io.StartAddress)
	assert.Equal(t, uint64(0x103f), io.EndAddress)
}

func TestWrite_SkipsNothingAfterCompletion(t *testing.T) {
	d := depend.NewDomain(dropPolicy{}, nopProbe{}, nopLogger{})

	a := d.NewTask(&namedWork{name: "only"})
	a.IncreaseReferences()
	require.NoError(t, d.Submit(a, []domain.Access{domain.NewAccess(0x1000, 64, domain.AccessOutput)}))
	a.MarkRunning()
	a.Finish(nil)

	var buf bytes.Buffer
	require.NoError(t, graphdump.Write(&buf, d))

	var doc graphdump.Document
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	found := false
	for _, n := range doc.Nodes {
		if n.WdID == int64(a.ID()) {
			found = true
		}
	}
	assert.True(t, found, "finished node with an external hold must still be dumped")
	a.DecreaseReferences()
}
