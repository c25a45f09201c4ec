package bptree

import "encoding/binary"

// nonLeafView overlays the non-leaf node layout onto a page's content
// bytes, the same borrowed-buffer pattern as leafView.
type nonLeafView struct {
	buf []byte
	cap int
}

func newNonLeafView(buf []byte, cap int) nonLeafView {
	return nonLeafView{buf: buf, cap: cap}
}

func initNonLeaf(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}

func (n nonLeafView) numEntries() int {
	return int(binary.BigEndian.Uint16(n.buf[0:2]))
}

func (n nonLeafView) setNumEntries(c int) {
	binary.BigEndian.PutUint16(n.buf[0:2], uint16(c))
}

// level is 1 if this node's children are leaves, 0 otherwise.
func (n nonLeafView) level() int {
	return int(n.buf[2])
}

func (n nonLeafView) setLevel(l int) {
	n.buf[2] = byte(l)
}

func (n nonLeafView) keyOffset(i int) int {
	return nonLeafHeaderSize + i*4
}

func (n nonLeafView) pageNoOffset(i int) int {
	return nonLeafHeaderSize + n.cap*4 + i*8
}

func (n nonLeafView) keyAt(i int) int32 {
	return int32(binary.BigEndian.Uint32(n.buf[n.keyOffset(i):]))
}

func (n nonLeafView) setKeyAt(i int, key int32) {
	binary.BigEndian.PutUint32(n.buf[n.keyOffset(i):], uint32(key))
}

func (n nonLeafView) pageNoAt(i int) Pointer {
	return getPointer(n.buf[n.pageNoOffset(i):])
}

func (n nonLeafView) setPageNoAt(i int, p Pointer) {
	putPointer(n.buf[n.pageNoOffset(i):], p)
}

// childSlot returns the index i such that key should descend via
// pageNoAt(i): the smallest i with key < keyAt(i), or numEntries if none.
// Per spec.md's Design Notes, descent always indexes pageNoArray by this
// slot, never keyArray.
func (n nonLeafView) childSlot(key int32) int {
	c := n.numEntries()
	for i := 0; i < c; i++ {
		if key < n.keyAt(i) {
			return i
		}
	}
	return c
}

// insertSeparator shifts keyArray[i:count] and pageNoArray[i+1:count+1]
// right by one slot, then writes sep at i and right at pageNoArray[i+1].
// pageNoArray[i] (equal to left in practice) is left untouched.
func (n nonLeafView) insertSeparator(i int, sep int32, right Pointer) {
	c := n.numEntries()
	for j := c; j > i; j-- {
		n.setKeyAt(j, n.keyAt(j-1))
		n.setPageNoAt(j+1, n.pageNoAt(j))
	}
	n.setKeyAt(i, sep)
	n.setPageNoAt(i+1, right)
	n.setNumEntries(c + 1)
}
