// Package relation is the minimal external-iterator contract an index's
// bulk build consumes: enough to read fixed-width records and know their
// record ids, nothing more. It knows nothing about keys or B+ trees.
package relation

// RID identifies a tuple by its heap location. It mirrors bptree.RID field
// for field; this package does not import bptree, so bptree converts at the
// boundary (see bptree.Index's bulk build).
type RID struct {
	PageNumber int32
	SlotNumber int32
}

// RecordIterator yields one fixed-width record at a time. Next returns
// ok=false once exhausted, the idiomatic replacement for the source's
// end-of-file exception.
type RecordIterator interface {
	Next() (record []byte, rid RID, ok bool)
}

// Relation is anything a bulk build can scan once, start to finish.
type Relation interface {
	Records() RecordIterator
}

// SliceRelation is an in-memory Relation over a fixed slice of records,
// used by tests. Records are assigned
// sequential RIDs, one record per synthetic page with slot 0.
type SliceRelation struct {
	records [][]byte
}

// NewSliceRelation wraps records as a Relation.
func NewSliceRelation(records [][]byte) *SliceRelation {
	return &SliceRelation{records: records}
}

func (s *SliceRelation) Records() RecordIterator {
	return &sliceIterator{records: s.records}
}

type sliceIterator struct {
	records [][]byte
	pos     int
}

func (it *sliceIterator) Next() ([]byte, RID, bool) {
	if it.pos >= len(it.records) {
		return nil, RID{}, false
	}
	rec := it.records[it.pos]
	rid := RID{PageNumber: int32(it.pos), SlotNumber: 0}
	it.pos++
	return rec, rid, true
}
