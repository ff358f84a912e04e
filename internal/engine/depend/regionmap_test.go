package depend

import (
	"testing"

	"go.trai.ch/weft/internal/core/domain"
)

func record(d *Domain, start, end uint64) *commitRecord {
	for _, rec := range d.regions.records {
		if rec.region.Start == start && rec.region.End == end {
			return rec
		}
	}
	return nil
}

func TestRegionMap_PartialOverlapSplits(t *testing.T) {
	d, _ := newTestDomain()

	a := submitTask(t, d, "A", out(base, 100))
	b := submitTask(t, d, "B", in(base+50, 100))

	assertEdge(t, a, b, domain.DepTrue)

	d.mu.Lock()
	defer d.mu.Unlock()

	head := record(d, base, base+50)
	if head == nil {
		t.Fatal("missing record for the writer-only sub-region")
	}
	if head.lastWriter != a || len(head.readers) != 0 {
		t.Errorf("head record writer=%v readers=%d, want writer=A readers=0", head.lastWriter, len(head.readers))
	}

	mid := record(d, base+50, base+100)
	if mid == nil {
		t.Fatal("missing record for the overlapping sub-region")
	}
	if mid.lastWriter != a {
		t.Error("overlap record lost its writer")
	}
	if _, ok := mid.readers[b]; !ok || len(mid.readers) != 1 {
		t.Error("overlap record should have exactly reader B")
	}

	tail := record(d, base+100, base+150)
	if tail == nil {
		t.Fatal("missing record for the reader-only sub-region")
	}
	if tail.lastWriter != nil {
		t.Error("reader-only record must have no writer")
	}
	if _, ok := tail.readers[b]; !ok {
		t.Error("reader-only record should have reader B")
	}
}

func TestRegionMap_CoverTilesGaps(t *testing.T) {
	var m regionMap

	first := m.cover(domain.Region{Start: 100, End: 200})
	if len(first) != 1 {
		t.Fatalf("cover of empty map returned %d records, want 1", len(first))
	}

	// Covering a superset splits around the existing record and fills gaps.
	recs := m.cover(domain.Region{Start: 50, End: 250})
	if len(recs) != 3 {
		t.Fatalf("cover returned %d records, want 3", len(recs))
	}
	wants := []domain.Region{
		{Start: 50, End: 100},
		{Start: 100, End: 200},
		{Start: 200, End: 250},
	}
	for i, w := range wants {
		if recs[i].region != w {
			t.Errorf("record %d = %+v, want %+v", i, recs[i].region, w)
		}
	}
}

func TestRegionMap_CloneSharesPoolWithExtraHold(t *testing.T) {
	d, _ := newTestDomain()

	// One commutative member opens a pool over the whole region.
	submitTask(t, d, "A", domain.NewAccess(base, 100, domain.AccessCommutative))

	d.mu.Lock()
	rec := record(d, base, base+100)
	if rec == nil || rec.group == nil {
		d.mu.Unlock()
		t.Fatal("expected an open pool on the record")
	}
	pool := rec.group.do
	before := pool.NumPredecessors()
	d.mu.Unlock()

	// A partially overlapping member splits the record; both halves keep the
	// pool and the pool gains one hold for the new record.
	submitTask(t, d, "B", domain.NewAccess(base, 50, domain.AccessCommutative))

	d.mu.Lock()
	defer d.mu.Unlock()
	left := record(d, base, base+50)
	right := record(d, base+50, base+100)
	if left == nil || right == nil {
		t.Fatal("expected the record to split")
	}
	if left.group == nil || right.group == nil || left.group != right.group {
		t.Fatal("split records must share the pool")
	}
	// before = open hold + member A; after the split adds a hold and B joins.
	if got := pool.NumPredecessors(); got != before+2 {
		t.Fatalf("pool predecessors = %d, want %d", got, before+2)
	}
}

func TestRegionMap_ScrubDropsEmptyRecords(t *testing.T) {
	d, _ := newTestDomain()

	a := submitTask(t, d, "A", out(base, 64))
	finish(a)

	d.mu.Lock()
	defer d.mu.Unlock()
	if n := len(d.regions.records); n != 0 {
		t.Fatalf("region map has %d records after its only task finished, want 0", n)
	}
}
