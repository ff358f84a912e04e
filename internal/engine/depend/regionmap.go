package depend

import (
	"slices"

	"go.trai.ch/weft/internal/core/domain"
)

// commitRecord tracks the most recent writer and the current reader set for
// one memory region. Records never overlap; an access partially overlapping
// a record splits it so each sub-region carries its own bookkeeping.
type commitRecord struct {
	region     domain.Region
	lastWriter *DependableObject
	readers    map[*DependableObject]struct{}
	group      *accessGroup
}

func newCommitRecord(r domain.Region) *commitRecord {
	return &commitRecord{region: r, readers: make(map[*DependableObject]struct{})}
}

func (c *commitRecord) empty() bool {
	return c.lastWriter == nil && len(c.readers) == 0 && c.group == nil
}

// clone duplicates the record's bookkeeping for a split sub-range. A record
// referencing an open pool contributes one more hold keeping the pool open,
// matching the hold the close of each record drops.
func (c *commitRecord) clone(r domain.Region) *commitRecord {
	n := newCommitRecord(r)
	n.lastWriter = c.lastWriter
	for reader := range c.readers {
		n.readers[reader] = struct{}{}
	}
	if c.group != nil {
		n.group = c.group
		c.group.do.IncreasePredecessors()
	}
	return n
}

// sortedReaders returns the record's readers in id order.
func (c *commitRecord) sortedReaders() []*DependableObject {
	out := make([]*DependableObject, 0, len(c.readers))
	for r := range c.readers {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b *DependableObject) int {
		return compareID(a.id, b.id)
	})
	return out
}

// accessGroup is the shared pool for commutative/concurrent/any accesses on
// one region. Members order against the snapshot taken when the pool
// opened, never against each other. Commutative pools carry a gate so at
// most one member runs at a time.
type accessGroup struct {
	do          *DependableObject
	mode        domain.AccessMode
	prevWriter  *DependableObject
	prevReaders []*DependableObject
	gate        *Gate
}

// regionMap is the ordered interval list backing a domain's region map.
// All methods require the domain lock.
type regionMap struct {
	records []*commitRecord
}

// cover returns the commit records tiling r exactly, in key order. Records
// partially overlapping r are split; sub-ranges of r not covered by any
// record get fresh empty records.
func (m *regionMap) cover(r domain.Region) []*commitRecord {
	if r.Empty() {
		return nil
	}
	i := m.firstOverlap(r)
	var out []*commitRecord
	cur := r.Start
	for cur < r.End {
		if i < len(m.records) && m.records[i].region.Start <= cur {
			rec := m.records[i]
			if rec.region.Start < cur {
				head := rec.clone(domain.Region{Start: rec.region.Start, End: cur})
				rec.region.Start = cur
				m.records = slices.Insert(m.records, i, head)
				i++
			}
			if rec.region.End > r.End {
				tail := rec.clone(domain.Region{Start: r.End, End: rec.region.End})
				rec.region.End = r.End
				m.records = slices.Insert(m.records, i+1, tail)
			}
			out = append(out, rec)
			cur = rec.region.End
			i++
			continue
		}
		end := r.End
		if i < len(m.records) && m.records[i].region.Start < end {
			end = m.records[i].region.Start
		}
		rec := newCommitRecord(domain.Region{Start: cur, End: end})
		m.records = slices.Insert(m.records, i, rec)
		out = append(out, rec)
		cur = end
		i++
	}
	return out
}

// overlapping returns the records intersecting r, in key order, without
// splitting them.
func (m *regionMap) overlapping(r domain.Region) []*commitRecord {
	var out []*commitRecord
	for i := m.firstOverlap(r); i < len(m.records) && m.records[i].region.Start < r.End; i++ {
		out = append(out, m.records[i])
	}
	return out
}

// firstOverlap returns the index of the first record whose region ends past
// r.Start.
func (m *regionMap) firstOverlap(r domain.Region) int {
	i, _ := slices.BinarySearchFunc(m.records, r, func(rec *commitRecord, reg domain.Region) int {
		if rec.region.End <= reg.Start {
			return -1
		}
		return 1
	})
	return i
}

// scrub removes o from every record's bookkeeping and drops records left
// with no writer, readers or pool.
func (m *regionMap) scrub(o *DependableObject) {
	kept := m.records[:0]
	for _, rec := range m.records {
		if rec.lastWriter == o {
			rec.lastWriter = nil
		}
		delete(rec.readers, o)
		if !rec.empty() {
			kept = append(kept, rec)
		}
	}
	m.records = kept
}

// drop removes all records inside r. Callers must have verified the records
// are quiescent.
func (m *regionMap) drop(r domain.Region) {
	m.records = slices.DeleteFunc(m.records, func(rec *commitRecord) bool {
		return rec.region.Overlaps(r)
	})
}

func compareID(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
