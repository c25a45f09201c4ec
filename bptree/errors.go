package bptree

import "errors"

// Error kinds returned by the index-level API. None of these are wrapped
// exception types: Go surfaces them as plain sentinel errors, matched with
// errors.Is, the way the teacher's own packages report failure.
var (
	// ErrBadIndexInfo is returned by Open when an existing file's meta page
	// disagrees with the caller's attrByteOffset/attrType.
	ErrBadIndexInfo = errors.New("bptree: bad index info")

	// ErrBadOpcodes is returned by StartScan when lowOp/highOp fall outside
	// their allowed sets.
	ErrBadOpcodes = errors.New("bptree: bad opcodes")

	// ErrBadScanRange is returned by StartScan when lowVal > highVal.
	ErrBadScanRange = errors.New("bptree: bad scan range")

	// ErrNoSuchKeyFound is returned by StartScan when the root is a non-leaf
	// and no leaf from the descent target rightward holds an entry
	// satisfying the low predicate. A leaf root never produces it; the high
	// bound is checked later, by ScanNext.
	ErrNoSuchKeyFound = errors.New("bptree: no such key found")

	// ErrScanNotInitialized is returned by ScanNext or EndScan without a
	// preceding StartScan.
	ErrScanNotInitialized = errors.New("bptree: scan not initialized")

	// ErrIndexScanCompleted is returned by ScanNext once the cursor passes
	// the last qualifying entry.
	ErrIndexScanCompleted = errors.New("bptree: index scan completed")
)
