package bptree

import "fmt"

// scanState is the cursor a range scan holds between StartScan and
// EndScan: the pinned leaf frame plus the index of the next entry to
// emit, modeled as a distinct value rather than loose instance fields so
// a stray second StartScan can't silently share state with the first.
type scanState struct {
	active bool
	guard  *guard

	lowOp, highOp   Operator
	lowVal, highVal int32
	nextEntry       int
}

// StartScan validates the range, descends to the first qualifying leaf
// entry, and leaves that leaf pinned for ScanNext to walk. A scan already
// in progress is implicitly ended first.
func (idx *Index) StartScan(lowVal int32, lowOp Operator, highVal int32, highOp Operator) error {
	if idx.scan.active {
		_ = idx.EndScan()
	}

	if !isLowOp(lowOp) || !isHighOp(highOp) {
		return fmt.Errorf("%w: lowOp=%s highOp=%s", ErrBadOpcodes, lowOp, highOp)
	}
	if lowVal > highVal {
		return ErrBadScanRange
	}

	if idx.leafRoot {
		frame, err := idx.pool.Read(uint64(idx.rootPageNo))
		if err != nil {
			return err
		}
		g := newGuard(idx.pool, frame)
		l := newLeafView(g.content(), idx.leafCap)
		idx.scan = scanState{
			active:    true,
			guard:     g,
			lowOp:     lowOp,
			highOp:    highOp,
			lowVal:    lowVal,
			highVal:   highVal,
			nextEntry: l.findLow(lowOp, lowVal),
		}
		return nil
	}

	pageNo := idx.rootPageNo
	for {
		frame, err := idx.pool.Read(uint64(pageNo))
		if err != nil {
			return err
		}
		g := newGuard(idx.pool, frame)
		nl := newNonLeafView(g.content(), idx.nonLeafCap)
		i := nl.childSlot(lowVal)
		child := nl.pageNoAt(i)
		atLeafLevel := nl.level() == 1
		g.release()
		pageNo = child
		if atLeafLevel {
			break
		}
	}

	for {
		frame, err := idx.pool.Read(uint64(pageNo))
		if err != nil {
			return err
		}
		g := newGuard(idx.pool, frame)
		l := newLeafView(g.content(), idx.leafCap)

		next := l.findLow(lowOp, lowVal)
		if next < l.numEntries() {
			idx.scan = scanState{
				active:    true,
				guard:     g,
				lowOp:     lowOp,
				highOp:    highOp,
				lowVal:    lowVal,
				highVal:   highVal,
				nextEntry: next,
			}
			return nil
		}

		sib := l.rightSib()
		g.release()
		if sib == 0 {
			return ErrNoSuchKeyFound
		}
		pageNo = sib
	}
}

// ScanNext emits the next qualifying rid, advancing within the current
// leaf or across the sibling chain as needed. It returns
// ErrIndexScanCompleted once the cursor passes the high bound or runs off
// the end of the sibling chain.
func (idx *Index) ScanNext() (RID, error) {
	if !idx.scan.active {
		return RID{}, ErrScanNotInitialized
	}
	s := &idx.scan

	l := newLeafView(s.guard.content(), idx.leafCap)
	if s.nextEntry >= l.numEntries() {
		sib := l.rightSib()
		s.guard.release()
		if sib == 0 {
			idx.scan = scanState{}
			return RID{}, ErrIndexScanCompleted
		}

		frame, err := idx.pool.Read(uint64(sib))
		if err != nil {
			idx.scan = scanState{}
			return RID{}, err
		}
		s.guard = newGuard(idx.pool, frame)
		s.nextEntry = 0
		l = newLeafView(s.guard.content(), idx.leafCap)
	}

	key := l.keyAt(s.nextEntry)
	if !satisfiesHigh(key, s.highOp, s.highVal) {
		s.guard.release()
		idx.scan = scanState{}
		return RID{}, ErrIndexScanCompleted
	}

	rid := l.ridAt(s.nextEntry)
	s.nextEntry++
	return rid, nil
}

// EndScan releases the cursor's pin and returns the scan to IDLE.
func (idx *Index) EndScan() error {
	if !idx.scan.active {
		return ErrScanNotInitialized
	}
	idx.scan.guard.release()
	idx.scan = scanState{}
	return nil
}
