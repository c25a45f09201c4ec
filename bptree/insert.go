package bptree

// splitResult is the sum-typed replacement for the source's out-parameter
// split record: NoSplit carries nothing, Split carries the separator and
// the two page ids it bubbles up to the caller.
type splitResult struct {
	split      bool
	separator  int32
	left       Pointer
	right      Pointer
	fromLeaf   bool
}

func noSplit() splitResult { return splitResult{} }

func didSplit(separator int32, left, right Pointer, fromLeaf bool) splitResult {
	return splitResult{split: true, separator: separator, left: left, right: right, fromLeaf: fromLeaf}
}

// InsertEntry inserts (key, rid) into the tree, descending from the root
// and propagating any split back up. If the root itself splits, a fresh
// non-leaf root is allocated over the two halves returned by the descent.
func (idx *Index) InsertEntry(key int32, rid RID) error {
	res, err := idx.descend(key, rid, idx.rootPageNo, idx.leafRoot)
	if err != nil {
		return err
	}
	if !res.split {
		return nil
	}

	frame, err := idx.pool.Alloc()
	if err != nil {
		return err
	}
	g := newGuard(idx.pool, frame)
	defer g.release()

	initNonLeaf(g.content())
	nl := newNonLeafView(g.content(), idx.nonLeafCap)
	level := 0
	if res.fromLeaf {
		level = 1
	}
	nl.setLevel(level)
	nl.setNumEntries(1)
	nl.setKeyAt(0, res.separator)
	nl.setPageNoAt(0, res.left)
	nl.setPageNoAt(1, res.right)
	g.markDirty()

	idx.rootPageNo = g.pageID()
	idx.leafRoot = false
	return nil
}

// descend pins pageNo, inserts or recurses into the appropriate child, and
// reports whether pageNo's node split. Every pin this function acquires,
// directly or via a nested descend, is released by a guard before it
// returns, on every path including the error ones.
func (idx *Index) descend(key int32, rid RID, pageNo Pointer, isLeaf bool) (splitResult, error) {
	frame, err := idx.pool.Read(uint64(pageNo))
	if err != nil {
		return splitResult{}, err
	}
	g := newGuard(idx.pool, frame)
	defer g.release()

	if isLeaf {
		return idx.insertIntoLeaf(g, key, rid)
	}
	return idx.insertIntoNonLeaf(g, key, rid)
}

func (idx *Index) insertIntoLeaf(g *guard, key int32, rid RID) (splitResult, error) {
	l := newLeafView(g.content(), idx.leafCap)

	if l.numEntries() < idx.leafCap {
		i := l.insertSlot(key)
		insertLeafEntry(l, i, key, rid)
		g.markDirty()
		return noSplit(), nil
	}

	rightFrame, err := idx.pool.Alloc()
	if err != nil {
		return splitResult{}, err
	}
	rg := newGuard(idx.pool, rightFrame)
	defer rg.release()

	initLeaf(rg.content())
	right := newLeafView(rg.content(), idx.leafCap)

	i := l.insertSlot(key)
	oldSib := l.rightSib()
	separator := splitLeaf(l, right, i, key, rid)
	right.setRightSib(oldSib)
	l.setRightSib(rg.pageID())

	g.markDirty()
	rg.markDirty()

	return didSplit(separator, g.pageID(), rg.pageID(), true), nil
}

func (idx *Index) insertIntoNonLeaf(g *guard, key int32, rid RID) (splitResult, error) {
	nl := newNonLeafView(g.content(), idx.nonLeafCap)

	i := nl.childSlot(key)
	childPageNo := nl.pageNoAt(i)
	childIsLeaf := nl.level() == 1

	childRes, err := idx.descend(key, rid, childPageNo, childIsLeaf)
	if err != nil {
		return splitResult{}, err
	}
	if !childRes.split {
		return noSplit(), nil
	}

	if nl.numEntries() < idx.nonLeafCap {
		nl.insertSeparator(i, childRes.separator, childRes.right)
		g.markDirty()
		return noSplit(), nil
	}

	rightFrame, err := idx.pool.Alloc()
	if err != nil {
		return splitResult{}, err
	}
	rg := newGuard(idx.pool, rightFrame)
	defer rg.release()

	initNonLeaf(rg.content())
	right := newNonLeafView(rg.content(), idx.nonLeafCap)
	right.setLevel(nl.level())

	separator := splitNonLeaf(nl, right, i, childRes.separator, childRes.right)

	g.markDirty()
	rg.markDirty()

	return didSplit(separator, g.pageID(), rg.pageID(), false), nil
}
