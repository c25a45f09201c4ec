package bptree

import (
	"encoding/binary"
	"fmt"
	"log"

	"bpindex/bufpool"
	"bpindex/diskfile"
	"bpindex/relation"
)

const metaPageID = 1

// Index is the on-disk B+ tree handle: it owns the buffer pool (and
// through it the blob file), the current root/leafRoot state mirrored
// from the meta page, and at most one active scan cursor.
type Index struct {
	pool *bufpool.Pool

	leafCap    int
	nonLeafCap int

	attrByteOffset int32
	attrType       AttrType

	rootPageNo Pointer
	leafRoot   bool

	scan scanState
}

func indexFileName(relationName string, attrByteOffset int32) string {
	return fmt.Sprintf("%s.%d", relationName, attrByteOffset)
}

// Open opens relationName's index file for attrByteOffset/attrType,
// creating it (and bulk-building from source) if it does not yet exist.
// pageSize is the usable content bytes per node, exclusive of the
// checksum trailer the buffer pool appends; poolSize is the number of
// frames to cache. A poolSize of 0 selects bufpool.DefaultPoolSize.
func Open(relationName string, attrByteOffset int32, attrType AttrType, source relation.Relation, pageSize, poolSize int) (*Index, error) {
	name := indexFileName(relationName, attrByteOffset)

	leafCap := LeafCap(pageSize)
	nonLeafCap := NonLeafCap(pageSize)
	must(pageSize >= metaPageSize, "bptree: pageSize %d too small to hold a meta page of %d bytes", pageSize, metaPageSize)
	must(leafCap >= 1 && nonLeafCap >= 1, "bptree: pageSize %d yields a zero node capacity (leafCap=%d, nonLeafCap=%d)", pageSize, leafCap, nonLeafCap)

	file, existed, err := diskfile.Open(name, bufpool.RawPageSize(pageSize))
	if err != nil {
		return nil, fmt.Errorf("bptree: open %s: %w", name, err)
	}

	pool := bufpool.New(file, poolSize)
	idx := &Index{
		pool:           pool,
		leafCap:        leafCap,
		nonLeafCap:     nonLeafCap,
		attrByteOffset: attrByteOffset,
		attrType:       attrType,
	}

	if existed {
		if err := idx.loadMeta(); err != nil {
			pool.Close()
			return nil, err
		}
		return idx, nil
	}

	log.Printf("bptree: creating new index file %s", name)
	if err := idx.bootstrap(); err != nil {
		pool.Close()
		return nil, err
	}
	if source != nil {
		if err := idx.bulkBuild(source); err != nil {
			return idx, err
		}
	}
	log.Printf("bptree: finished inserting all records into %s", name)

	return idx, nil
}

// loadMeta reads an existing meta page and validates it against the
// caller's attrByteOffset/attrType.
func (idx *Index) loadMeta() error {
	frame, err := idx.pool.Read(metaPageID)
	if err != nil {
		return err
	}
	g := newGuard(idx.pool, frame)
	defer g.release()

	m := newMetaView(g.content())
	if m.attrByteOffset() != idx.attrByteOffset || m.attrType() != idx.attrType {
		return ErrBadIndexInfo
	}

	idx.rootPageNo = m.rootPageNo()
	idx.leafRoot = m.leafRoot()
	return nil
}

// bootstrap allocates the meta page and an empty leaf root for a brand
// new index file.
func (idx *Index) bootstrap() error {
	metaFrame, err := idx.pool.Alloc()
	if err != nil {
		return err
	}
	metaGuard := newGuard(idx.pool, metaFrame)
	defer metaGuard.release()

	rootFrame, err := idx.pool.Alloc()
	if err != nil {
		return err
	}
	rootGuard := newGuard(idx.pool, rootFrame)
	defer rootGuard.release()

	initLeaf(rootGuard.content())
	rootGuard.markDirty()

	idx.rootPageNo = rootGuard.pageID()
	idx.leafRoot = true

	m := newMetaView(metaGuard.content())
	m.setAttrByteOffset(idx.attrByteOffset)
	m.setAttrType(idx.attrType)
	m.setRootPageNo(idx.rootPageNo)
	m.setLeafRoot(idx.leafRoot)
	metaGuard.markDirty()

	return nil
}

// bulkBuild feeds every record the source relation produces through
// InsertEntry, deriving each key from the 4 big-endian bytes starting at
// byte offset attrByteOffset of the record.
func (idx *Index) bulkBuild(source relation.Relation) error {
	it := source.Records()
	for {
		record, rid, ok := it.Next()
		if !ok {
			return nil
		}
		if int(idx.attrByteOffset)+4 > len(record) {
			return fmt.Errorf("bptree: record of %d bytes too short for attrByteOffset %d", len(record), idx.attrByteOffset)
		}
		key := int32(binary.BigEndian.Uint32(record[idx.attrByteOffset : idx.attrByteOffset+4]))
		if err := idx.InsertEntry(key, RID{PageNumber: rid.PageNumber, SlotNumber: rid.SlotNumber}); err != nil {
			return err
		}
	}
}

// Close rewrites the meta page, ends any in-progress scan, flushes, and
// releases the backing file.
func (idx *Index) Close() error {
	if idx.scan.active {
		_ = idx.EndScan()
	}

	frame, err := idx.pool.Read(metaPageID)
	if err != nil {
		return err
	}
	g := newGuard(idx.pool, frame)
	m := newMetaView(g.content())
	m.setAttrByteOffset(idx.attrByteOffset)
	m.setAttrType(idx.attrType)
	m.setRootPageNo(idx.rootPageNo)
	m.setLeafRoot(idx.leafRoot)
	g.markDirty()
	g.release()

	return idx.pool.Close()
}
