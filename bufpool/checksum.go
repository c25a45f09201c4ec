package bufpool

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// stampChecksum writes the xxhash of raw's content bytes into its trailer.
func stampChecksum(raw []byte) {
	content := raw[:len(raw)-checksumSize]
	sum := xxhash.Sum64(content)
	binary.BigEndian.PutUint64(raw[len(raw)-checksumSize:], sum)
}

// verifyChecksum reports whether raw's trailer matches the xxhash of its
// content bytes.
func verifyChecksum(raw []byte) error {
	content := raw[:len(raw)-checksumSize]
	want := binary.BigEndian.Uint64(raw[len(raw)-checksumSize:])
	got := xxhash.Sum64(content)
	if want != got {
		return fmt.Errorf("bufpool: checksum mismatch: on-disk %x, computed %x", want, got)
	}
	return nil
}
