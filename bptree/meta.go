package bptree

import "encoding/binary"

// AttrType tags the key domain a meta page was built for. The operational
// insert/scan path only ever runs over Integer; other tags are recorded and
// validated on open but never interpreted, per spec.md's Non-goals.
type AttrType int32

const (
	Integer AttrType = iota
	// Additional tags may be recorded in the meta page without this core
	// ever acting on them; see spec.md §1 and §3.
)

const metaPageSize = 4 + 4 + 8 + 1 // attrByteOffset, attrType, rootPageNo, leafRoot

// metaView overlays the meta page layout: attrByteOffset, attrType,
// rootPageNo, leafRoot.
type metaView struct {
	buf []byte
}

func newMetaView(buf []byte) metaView {
	return metaView{buf: buf}
}

func (m metaView) attrByteOffset() int32 {
	return int32(binary.BigEndian.Uint32(m.buf[0:4]))
}

func (m metaView) setAttrByteOffset(v int32) {
	binary.BigEndian.PutUint32(m.buf[0:4], uint32(v))
}

func (m metaView) attrType() AttrType {
	return AttrType(binary.BigEndian.Uint32(m.buf[4:8]))
}

func (m metaView) setAttrType(v AttrType) {
	binary.BigEndian.PutUint32(m.buf[4:8], uint32(v))
}

func (m metaView) rootPageNo() Pointer {
	return getPointer(m.buf[8:16])
}

func (m metaView) setRootPageNo(p Pointer) {
	putPointer(m.buf[8:16], p)
}

func (m metaView) leafRoot() bool {
	return m.buf[16] != 0
}

func (m metaView) setLeafRoot(v bool) {
	if v {
		m.buf[16] = 1
	} else {
		m.buf[16] = 0
	}
}
