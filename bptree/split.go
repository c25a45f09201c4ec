package bptree

// insertLeafEntry shifts keyArray/ridArray right from i and writes key/rid
// at i, then bumps numEntries. Caller must have already checked there is
// room (numEntries < cap).
func insertLeafEntry(l leafView, i int, key int32, rid RID) {
	n := l.numEntries()
	for j := n; j > i; j-- {
		l.setKeyAt(j, l.keyAt(j-1))
		l.setRIDAt(j, l.ridAt(j-1))
	}
	l.setKeyAt(i, key)
	l.setRIDAt(i, rid)
	l.setNumEntries(n + 1)
}

// splitLeaf splits a full left leaf that must additionally absorb
// (key, rid) at position insertIdx. It builds a LeafCap+1-entry ordered
// array (spec.md's "temporary array"), copies the first half back into
// left and the rest into right, and returns the separator to copy up —
// right's first key, per spec.md's leaf copy-up policy (the entry stays
// stored in a leaf; the parent's separator is a copy of it, not a move).
func splitLeaf(left, right leafView, insertIdx int, key int32, rid RID) (separator int32) {
	cap := left.cap
	tempKeys := make([]int32, cap+1)
	tempRIDs := make([]RID, cap+1)

	for i, j := 0, 0; i < cap; i++ {
		if j == insertIdx {
			tempKeys[j] = key
			tempRIDs[j] = rid
			j++
		}
		tempKeys[j] = left.keyAt(i)
		tempRIDs[j] = left.ridAt(i)
		j++
	}
	if insertIdx == cap {
		tempKeys[cap] = key
		tempRIDs[cap] = rid
	}

	leftCount := (cap + 2) / 2 // ceil((cap+1)/2)
	rightCount := (cap + 1) - leftCount

	for i := 0; i < leftCount; i++ {
		left.setKeyAt(i, tempKeys[i])
		left.setRIDAt(i, tempRIDs[i])
	}
	left.setNumEntries(leftCount)

	for i := 0; i < rightCount; i++ {
		right.setKeyAt(i, tempKeys[leftCount+i])
		right.setRIDAt(i, tempRIDs[leftCount+i])
	}
	right.setNumEntries(rightCount)

	return tempKeys[leftCount]
}

// splitNonLeaf splits a full left non-leaf that must additionally absorb
// separator sep with its right child rightChild at position insertIdx. It
// returns the middle key, which is removed from both halves and handed to
// the caller to install in the parent — spec.md's non-leaf move-up policy.
func splitNonLeaf(left, right nonLeafView, insertIdx int, sep int32, rightChild Pointer) (separator int32) {
	cap := left.cap
	tempKeys := make([]int32, cap+1)
	tempPtrs := make([]Pointer, cap+2)

	for i := 0; i < cap; i++ {
		tempKeys[i] = left.keyAt(i)
	}
	for i := 0; i <= cap; i++ {
		tempPtrs[i] = left.pageNoAt(i)
	}

	for j := cap; j > insertIdx; j-- {
		tempKeys[j] = tempKeys[j-1]
	}
	tempKeys[insertIdx] = sep

	for j := cap + 1; j > insertIdx+1; j-- {
		tempPtrs[j] = tempPtrs[j-1]
	}
	tempPtrs[insertIdx+1] = rightChild

	leftCount := (cap + 2) / 2 // ceil((cap+1)/2)
	middleIdx := leftCount
	rightCount := cap - leftCount

	for i := 0; i < leftCount; i++ {
		left.setKeyAt(i, tempKeys[i])
	}
	for i := 0; i <= leftCount; i++ {
		left.setPageNoAt(i, tempPtrs[i])
	}
	left.setNumEntries(leftCount)

	for i := 0; i < rightCount; i++ {
		right.setKeyAt(i, tempKeys[middleIdx+1+i])
	}
	for i := 0; i <= rightCount; i++ {
		right.setPageNoAt(i, tempPtrs[leftCount+1+i])
	}
	right.setNumEntries(rightCount)

	return tempKeys[middleIdx]
}
