package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint32ListFindSwitchesToEytzingerAfterThreshold(t *testing.T) {
	items := make([]uint32, 64)
	for i := range items {
		items[i] = uint32(i * 2)
	}
	l := NewUint32List(items)

	for i := 0; i < eytzingerThreshold-1; i++ {
		assert.Equal(t, 5, l.Find(10))
	}
	assert.Equal(t, 5, l.Find(10)) // this call crosses the threshold and builds the accelerator
	assert.NotNil(t, l.eytz)
	assert.Equal(t, 5, l.Find(10)) // now served by the accelerator
	assert.Equal(t, -1, l.Find(11))
}

func TestUint32ListInsertSortedInvalidatesAccelerator(t *testing.T) {
	items := make([]uint32, 40)
	for i := range items {
		items[i] = uint32(i * 2)
	}
	l := NewUint32List(items)
	for i := 0; i < eytzingerThreshold; i++ {
		l.Find(0)
	}
	assert.NotNil(t, l.eytz)

	assert.True(t, l.InsertSorted(1))
	assert.Nil(t, l.eytz)
	assert.True(t, l.Contains(1))
	assert.False(t, l.InsertSorted(0))
}

func TestArenaAndLinkedSizedListFlatten(t *testing.T) {
	arena := NewArena[int](2)
	ll := NewLinkedSizedList[int](arena)
	for i := 0; i < 5; i++ {
		ll.Append(i)
	}
	assert.Equal(t, 5, ll.Len())

	flat := ll.Flatten()
	assert.Equal(t, []int{0, 1, 2, 3, 4}, flat.Items)
}

func TestLinkedSizedListConcat(t *testing.T) {
	arena := NewArena[int](4)
	a := NewLinkedSizedList[int](arena)
	b := NewLinkedSizedList[int](arena)
	a.Append(1)
	b.Append(2)
	b.Append(3)

	a.Concat(b)
	assert.Equal(t, 3, a.Len())
	assert.Equal(t, []int{1, 2, 3}, a.Flatten().Items)
}
