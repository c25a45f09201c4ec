package bptree

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bpindex/relation"
)

// smallPageSize reproduces spec's worked examples of LEAF_CAP = NONLEAF_CAP
// = 5: see LeafCap/NonLeafCap in page.go for the arithmetic.
const smallPageSize = 76

func openTestIndex(t *testing.T, source relation.Relation) *Index {
	dir := t.TempDir()
	name := filepath.Join(dir, uuid.New().String())

	idx, err := Open(name, 0, Integer, source, smallPageSize, 64)
	require.NoError(t, err)
	t.Cleanup(func() { idx.Close() })
	return idx
}

func unitRID(key int32) RID { return RID{PageNumber: key, SlotNumber: 0} }

func drainScan(t *testing.T, idx *Index) []RID {
	var out []RID
	for {
		rid, err := idx.ScanNext()
		if err == ErrIndexScanCompleted {
			break
		}
		require.NoError(t, err)
		out = append(out, rid)
	}
	return out
}

func TestScenario1_SingleKey(t *testing.T) {
	idx := openTestIndex(t, nil)
	require.NoError(t, idx.InsertEntry(10, unitRID(10)))

	require.NoError(t, idx.StartScan(10, GTE, 10, LTE))
	rids := drainScan(t, idx)
	require.ErrorIs(t, idx.EndScan(), ErrScanNotInitialized)

	assert.Equal(t, []RID{unitRID(10)}, rids)
	assert.True(t, idx.leafRoot)
}

func TestScenario2_FillsOneLeafNoSplit(t *testing.T) {
	idx := openTestIndex(t, nil)
	for _, k := range []int32{5, 3, 8, 1, 9} {
		require.NoError(t, idx.InsertEntry(k, unitRID(k)))
	}

	require.NoError(t, idx.StartScan(0, GTE, 100, LT))
	rids := drainScan(t, idx)
	require.ErrorIs(t, idx.EndScan(), ErrScanNotInitialized)

	want := []RID{unitRID(1), unitRID(3), unitRID(5), unitRID(8), unitRID(9)}
	assert.Equal(t, want, rids)
	assert.True(t, idx.leafRoot)
}

func TestScenario3_SixthInsertSplitsLeaf(t *testing.T) {
	idx := openTestIndex(t, nil)
	for _, k := range []int32{5, 3, 8, 1, 9, 7} {
		require.NoError(t, idx.InsertEntry(k, unitRID(k)))
	}

	assert.False(t, idx.leafRoot)

	require.NoError(t, idx.StartScan(4, GT, 8, LTE))
	rids := drainScan(t, idx)
	require.ErrorIs(t, idx.EndScan(), ErrScanNotInitialized)

	want := []RID{unitRID(5), unitRID(7), unitRID(8)}
	assert.Equal(t, want, rids)
}

func TestScenario4_RootSplitOnManyKeys(t *testing.T) {
	idx := openTestIndex(t, nil)
	for k := int32(1); k <= 26; k++ {
		require.NoError(t, idx.InsertEntry(k, unitRID(k)))
	}

	require.NoError(t, idx.StartScan(13, GTE, 15, LTE))
	rids := drainScan(t, idx)
	require.ErrorIs(t, idx.EndScan(), ErrScanNotInitialized)

	want := []RID{unitRID(13), unitRID(14), unitRID(15)}
	assert.Equal(t, want, rids)
}

func TestScenario5_BadScanRange(t *testing.T) {
	idx := openTestIndex(t, nil)
	require.NoError(t, idx.InsertEntry(1, unitRID(1)))

	err := idx.StartScan(100, GT, 50, LTE)
	assert.ErrorIs(t, err, ErrBadScanRange)
}

func TestScenario6_BadOpcodes(t *testing.T) {
	idx := openTestIndex(t, nil)
	require.NoError(t, idx.InsertEntry(1, unitRID(1)))

	err := idx.StartScan(1, LT, 10, GT)
	assert.ErrorIs(t, err, ErrBadOpcodes)
}

func TestScenario7_EmptyRelationHasNoQualifyingKey(t *testing.T) {
	idx := openTestIndex(t, nil)

	err := idx.StartScan(0, GTE, 0, LTE)
	require.NoError(t, err)

	_, err = idx.ScanNext()
	assert.ErrorIs(t, err, ErrIndexScanCompleted)
}

func TestP3_HeightBalance_DecreasingKeys(t *testing.T) {
	idx := openTestIndex(t, nil)
	for k := int32(50); k >= 1; k-- {
		require.NoError(t, idx.InsertEntry(k, unitRID(k)))
	}

	require.NoError(t, idx.StartScan(1, GTE, 50, LTE))
	rids := drainScan(t, idx)
	require.ErrorIs(t, idx.EndScan(), ErrScanNotInitialized)
	assert.Len(t, rids, 50)
	for i := 1; i < len(rids); i++ {
		assert.Less(t, rids[i-1].PageNumber, rids[i].PageNumber)
	}
}

func TestEndScan_WithoutStartScanFails(t *testing.T) {
	idx := openTestIndex(t, nil)
	err := idx.EndScan()
	assert.ErrorIs(t, err, ErrScanNotInitialized)
}

func TestEndScan_Twice_SecondFails(t *testing.T) {
	idx := openTestIndex(t, nil)
	require.NoError(t, idx.InsertEntry(1, unitRID(1)))

	require.NoError(t, idx.StartScan(0, GTE, 10, LTE))
	require.NoError(t, idx.EndScan())
	assert.ErrorIs(t, idx.EndScan(), ErrScanNotInitialized)
}

func TestStartScan_RepeatedWithoutEndScan_DoesNotLeakPins(t *testing.T) {
	idx := openTestIndex(t, nil)
	for _, k := range []int32{1, 2, 3} {
		require.NoError(t, idx.InsertEntry(k, unitRID(k)))
	}

	require.NoError(t, idx.StartScan(0, GTE, 1, LTE))
	require.NoError(t, idx.StartScan(0, GTE, 3, LTE))
	rids := drainScan(t, idx)
	require.ErrorIs(t, idx.EndScan(), ErrScanNotInitialized)
	assert.Len(t, rids, 3)
}

func TestBulkBuild_FromSliceRelation(t *testing.T) {
	records := make([][]byte, 0, 10)
	for i := int32(10); i >= 1; i-- {
		rec := make([]byte, 4)
		rec[0] = byte(i >> 24)
		rec[1] = byte(i >> 16)
		rec[2] = byte(i >> 8)
		rec[3] = byte(i)
		records = append(records, rec)
	}
	source := relation.NewSliceRelation(records)

	idx := openTestIndex(t, source)

	require.NoError(t, idx.StartScan(1, GTE, 10, LTE))
	rids := drainScan(t, idx)
	require.ErrorIs(t, idx.EndScan(), ErrScanNotInitialized)
	assert.Len(t, rids, 10)
}

func TestPersistenceRoundTrip_SurvivesCloseAndReopen(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, uuid.New().String())

	idx, err := Open(name, 0, Integer, nil, smallPageSize, 64)
	require.NoError(t, err)
	for _, k := range []int32{5, 3, 8, 1, 9, 7} {
		require.NoError(t, idx.InsertEntry(k, unitRID(k)))
	}
	require.NoError(t, idx.Close())

	reopened, err := Open(name, 0, Integer, nil, smallPageSize, 64)
	require.NoError(t, err)
	defer reopened.Close()

	require.NoError(t, reopened.StartScan(0, GTE, 100, LT))
	rids := drainScan(t, reopened)
	require.ErrorIs(t, reopened.EndScan(), ErrScanNotInitialized)

	want := []RID{unitRID(1), unitRID(3), unitRID(5), unitRID(7), unitRID(8), unitRID(9)}
	assert.Equal(t, want, rids)
}

func TestOpen_MismatchedIndexInfoFails(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, uuid.New().String())

	idx, err := Open(name, 4, Integer, nil, smallPageSize, 64)
	require.NoError(t, err)
	require.NoError(t, idx.Close())

	_, err = Open(name, 4, AttrType(1), nil, smallPageSize, 64)
	assert.ErrorIs(t, err, ErrBadIndexInfo)
}
