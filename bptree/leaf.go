package bptree

import "encoding/binary"

// leafView overlays the leaf node layout onto a page's content bytes. It
// keeps no copy of the data: every getter/setter reads or writes through
// buf directly, the way spec.md's Design Notes describe a "tagged page
// view that borrows the page buffer".
type leafView struct {
	buf []byte
	cap int
}

func newLeafView(buf []byte, cap int) leafView {
	return leafView{buf: buf, cap: cap}
}

// initLeaf zeroes buf into an empty leaf with no right sibling.
func initLeaf(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

func (l leafView) numEntries() int {
	return int(binary.BigEndian.Uint16(l.buf[0:2]))
}

func (l leafView) setNumEntries(n int) {
	binary.BigEndian.PutUint16(l.buf[0:2], uint16(n))
}

func (l leafView) rightSib() Pointer {
	return getPointer(l.buf[2:10])
}

func (l leafView) setRightSib(p Pointer) {
	putPointer(l.buf[2:10], p)
}

func (l leafView) keyOffset(i int) int {
	return leafHeaderSize + i*4
}

func (l leafView) ridOffset(i int) int {
	return leafHeaderSize + l.cap*4 + i*ridSize
}

func (l leafView) keyAt(i int) int32 {
	return int32(binary.BigEndian.Uint32(l.buf[l.keyOffset(i):]))
}

func (l leafView) setKeyAt(i int, key int32) {
	binary.BigEndian.PutUint32(l.buf[l.keyOffset(i):], uint32(key))
}

func (l leafView) ridAt(i int) RID {
	return getRID(l.buf[l.ridOffset(i):])
}

func (l leafView) setRIDAt(i int, r RID) {
	putRID(l.buf[l.ridOffset(i):], r)
}

// findLow returns the smallest index in [0, numEntries) whose key satisfies
// the low predicate, or numEntries if none does. Entries are sorted, so a
// linear scan suffices and mirrors spec.md's "scan keyArray left to right".
func (l leafView) findLow(op Operator, val int32) int {
	n := l.numEntries()
	for i := 0; i < n; i++ {
		if satisfiesLow(l.keyAt(i), op, val) {
			return i
		}
	}
	return n
}

// insertSlot returns the position where key belongs under strict
// less-than descent with equal keys routed right: the smallest i with
// key < keyAt(i), or numEntries if none.
func (l leafView) insertSlot(key int32) int {
	n := l.numEntries()
	for i := 0; i < n; i++ {
		if key < l.keyAt(i) {
			return i
		}
	}
	return n
}
