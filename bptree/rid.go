package bptree

import "encoding/binary"

// ridSize is the encoded width of a RID: two int32 fields.
const ridSize = 8

// RID identifies a tuple in the indexed relation by its heap location.
type RID struct {
	PageNumber int32
	SlotNumber int32
}

func getRID(src []byte) RID {
	return RID{
		PageNumber: int32(binary.BigEndian.Uint32(src)),
		SlotNumber: int32(binary.BigEndian.Uint32(src[4:])),
	}
}

func putRID(dst []byte, r RID) {
	binary.BigEndian.PutUint32(dst, uint32(r.PageNumber))
	binary.BigEndian.PutUint32(dst[4:], uint32(r.SlotNumber))
}
