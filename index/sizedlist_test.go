package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUint32ListFindBeforeAndAfterAccel(t *testing.T) {
	items := make([]uint32, 0, 100)
	for i := uint32(0); i < 100; i++ {
		items = append(items, i*2)
	}
	l := NewUint32List(items)

	// First few finds go through the plain binary-search path.
	for i := 0; i < eytzingerThreshold-1; i++ {
		idx := l.Find(40)
		require.Equal(t, 20, idx)
	}
	require.Nil(t, l.eytz)

	// Crossing the threshold builds the accelerator; results must not change.
	for i := 0; i < 10; i++ {
		idx := l.Find(40)
		assert.Equal(t, 20, idx)
	}
	assert.NotNil(t, l.eytz)
	assert.Equal(t, -1, l.Find(41))
	assert.True(t, l.Contains(0))
	assert.False(t, l.Contains(199))
}

func TestUint32ListFindLocatesEveryPresentElementAfterAccelBuilds(t *testing.T) {
	items := make([]uint32, 0, 97)
	for i := uint32(0); i < 97; i++ {
		items = append(items, i*3)
	}
	l := NewUint32List(items)

	// Warm the accelerator on a value whose search path ends in a right
	// turn, not just a left one: eytzingerAccel.find must strip the whole
	// trailing run of right turns, not just the last bit.
	for i := 0; i < eytzingerThreshold; i++ {
		l.Find(items[len(items)-2])
	}
	require.NotNil(t, l.eytz)

	for pos, v := range items {
		require.Equalf(t, pos, l.Find(v), "value %d at original position %d", v, pos)
	}
	assert.Equal(t, -1, l.Find(items[len(items)-1]+1))
}

func TestUint32ListInsertSortedKeepsOrder(t *testing.T) {
	l := NewUint32List([]uint32{1, 3, 5})
	assert.True(t, l.InsertSorted(4))
	assert.Equal(t, []uint32{1, 3, 4, 5}, l.Items)
	assert.False(t, l.InsertSorted(4))
}

func TestDirectIndexSentinelOutOfRange(t *testing.T) {
	d := NewDirectIndex[int32](4, -1)
	d.Insert(2, 42)
	assert.Equal(t, int32(42), d.Retrieve(2))
	assert.Equal(t, int32(-1), d.Retrieve(3))
	assert.Equal(t, int32(-1), d.Retrieve(100))
}

func TestLinkedSizedListFlatten(t *testing.T) {
	arena := NewArena[int](2)
	l := NewLinkedSizedList[int](arena)
	for i := 0; i < 5; i++ {
		l.Append(i)
	}
	flat := l.Flatten()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, flat.Items)
}

func TestHashIndexMergeWithNoClobber(t *testing.T) {
	a := NewHashIndex[string, int](0, -1)
	b := NewHashIndex[string, int](0, -1)
	a.Insert("x", 1)
	b.Insert("x", 2)
	b.Insert("y", 3)
	a.MergeWith(b)
	assert.Equal(t, 1, a.Retrieve("x"))
	assert.Equal(t, 3, a.Retrieve("y"))
}
