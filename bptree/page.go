// Package bptree implements the disk-resident B+ tree index: the on-page
// node layouts, the split-propagating insert engine, and the range-scan
// cursor. Every mutation goes through a bufpool.Pool frame, pinned before
// access and unpinned exactly once via the scoped guard in guard.go.
package bptree

import "encoding/binary"

// Pointer is a page id, the only kind of inter-node reference this package
// keeps; there are never live pointers between in-memory nodes, only ids
// resolved through the pool on each descent.
type Pointer uint64

func putPointer(dst []byte, p Pointer) {
	binary.BigEndian.PutUint64(dst, uint64(p))
}

func getPointer(src []byte) Pointer {
	return Pointer(binary.BigEndian.Uint64(src))
}

const (
	leafHeaderSize    = 2 + 8 // numEntries uint16, rightSib Pointer
	leafEntrySize     = 4 + ridSize
	nonLeafHeaderSize = 2 + 1 // numEntries uint16, level uint8
	nonLeafEntrySize  = 4 + 8 // separator int32, Pointer
)

// LeafCap returns the number of <key, rid> entries a leaf node built on a
// pageSize-byte content area can hold. Implementations that need a fixed
// number for testing (the spec's worked examples use 5) pick a small
// pageSize; production indexes derive it from the real page size.
func LeafCap(pageSize int) int {
	return (pageSize - leafHeaderSize) / leafEntrySize
}

// NonLeafCap returns the number of separator keys a non-leaf node built on
// a pageSize-byte content area can hold. Its pageNoArray always has one
// more entry than keyArray, so the capacity formula reserves one extra
// Pointer up front.
func NonLeafCap(pageSize int) int {
	return (pageSize - nonLeafHeaderSize - 8) / nonLeafEntrySize
}
