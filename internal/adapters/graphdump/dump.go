// Package graphdump serializes the dependable-object graph to the JSON
// record format consumed by downstream visualization tooling. The node and
// edge vocabulary must stay stable for that tooling.
package graphdump

import (
	"encoding/json"
	"io"

	"github.com/cespare/xxhash/v2"

	"go.trai.ch/weft/internal/core/domain"
	"go.trai.ch/weft/internal/engine/depend"
	"go.trai.ch/zerr"
)

// NodeRecord is one serialized graph node.
type NodeRecord struct {
	WdID       int64        `json:"wd_id"`
	FuncID     int64        `json:"func_id"`
	Type       string       `json:"type"`
	EntryEdges []EdgeRecord `json:"entry_edges"`
	ExitEdges  []EdgeRecord `json:"exit_edges"`
	IoAccesses []IORecord   `json:"io_accesses"`
}

// EdgeRecord is one serialized edge.
type EdgeRecord struct {
	Kind      string      `json:"kind"`
	DepType   string      `json:"dep_type"`
	Source    int64       `json:"source"`
	Target    int64       `json:"target"`
	DataRange RangeRecord `json:"data_range"`
}

// RangeRecord is the serialized byte range of an edge. Addresses are
// inclusive, matching the historical dump format.
type RangeRecord struct {
	StartAddress uint64 `json:"start_address"`
	EndAddress   uint64 `json:"end_address"`
	Size         uint64 `json:"size"`
}

// IORecord describes one task access.
type IORecord struct {
	IsInput      bool   `json:"is_input"`
	IsOutput     bool   `json:"is_output"`
	StartAddress uint64 `json:"start_address"`
	EndAddress   uint64 `json:"end_address"`
	Size         uint64 `json:"size"`
}

// Document is the dump's top-level JSON shape.
type Document struct {
	Nodes []NodeRecord `json:"nodes"`
}

// Write serializes the given domains into one JSON document. It holds an
// external reference on every node while reading the graph so nothing is
// reaped mid-walk.
func Write(w io.Writer, domains ...*depend.Domain) error {
	doc := Document{Nodes: []NodeRecord{}}

	for _, d := range domains {
		snap := d.Snapshot()
		doc.Nodes = append(doc.Nodes, buildRecords(d, snap)...)
		for _, o := range snap {
			o.DecreaseReferences()
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return zerr.Wrap(err, "failed to encode task graph")
	}
	return nil
}

func buildRecords(d *depend.Domain, snap []*depend.DependableObject) []NodeRecord {
	records := make(map[uint64]*NodeRecord, len(snap))
	order := make([]uint64, 0, len(snap))

	for _, o := range snap {
		if o.NeedsSubmission() {
			// Linkage in progress; the node is not part of the graph yet.
			continue
		}
		records[o.ID()] = &NodeRecord{
			WdID:       int64(o.ID()),
			FuncID:     funcID(o.Description()),
			Type:       o.Type().String(),
			EntryEdges: []EdgeRecord{},
			ExitEdges:  []EdgeRecord{},
			IoAccesses: ioRecords(o),
		}
		order = append(order, o.ID())
	}

	for _, o := range snap {
		src, ok := records[o.ID()]
		if !ok {
			continue
		}
		for _, s := range o.Successors() {
			dst, ok := records[s.Target.ID()]
			if !ok {
				continue
			}
			rec := edgeRecord(o.ID(), s.Target.ID(), s.Edge)
			src.ExitEdges = append(src.ExitEdges, rec)
			dst.EntryEdges = append(dst.EntryEdges, rec)
		}
	}

	// Tasks with no data predecessor hang off the root with a nesting edge.
	root := records[d.Root().ID()]
	for _, id := range order {
		rec := records[id]
		if root == nil || rec == root || rec.Type == domain.NodeRoot.String() {
			continue
		}
		if !hasDependencyEntry(rec) {
			nest := EdgeRecord{
				Kind:    domain.EdgeNesting.String(),
				DepType: domain.DepNull.String(),
				Source:  root.WdID,
				Target:  rec.WdID,
			}
			root.ExitEdges = append(root.ExitEdges, nest)
			rec.EntryEdges = append(rec.EntryEdges, nest)
		}
	}

	out := make([]NodeRecord, 0, len(order))
	for _, id := range order {
		out = append(out, *records[id])
	}
	return out
}

func hasDependencyEntry(rec *NodeRecord) bool {
	for _, e := range rec.EntryEdges {
		if e.Kind == domain.EdgeDependency.String() {
			return true
		}
	}
	return false
}

func edgeRecord(source, target uint64, e domain.Edge) EdgeRecord {
	return EdgeRecord{
		Kind:      e.Kind.String(),
		DepType:   e.Dep.String(),
		Source:    int64(source),
		Target:    int64(target),
		DataRange: rangeRecord(e.DataRange),
	}
}

func rangeRecord(r domain.Region) RangeRecord {
	if r.Empty() {
		return RangeRecord{}
	}
	return RangeRecord{
		StartAddress: r.Start,
		EndAddress:   r.End - 1,
		Size:         r.Len(),
	}
}

func ioRecords(o *depend.DependableObject) []IORecord {
	var out []IORecord
	seen := make(map[domain.Access]bool)
	add := func(a domain.Access) {
		if seen[a] {
			return
		}
		seen[a] = true
		r := a.Region()
		out = append(out, IORecord{
			IsInput:      a.Mode.Reads(),
			IsOutput:     a.Mode.Writes(),
			StartAddress: r.Start,
			EndAddress:   r.End - 1,
			Size:         r.Len(),
		})
	}
	for _, a := range o.ReadAccesses() {
		add(a)
	}
	for _, a := range o.WriteAccesses() {
		add(a)
	}
	if out == nil {
		out = []IORecord{}
	}
	return out
}

// funcID hashes the work description into the stable function id the dump
// tooling groups nodes by.
func funcID(description string) int64 {
	return int64(xxhash.Sum64String(description))
}
