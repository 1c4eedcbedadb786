package topk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func byIntDesc(a, b int) bool { return a > b }

func TestListKeepsKLargest(t *testing.T) {
	l := New(3, byIntDesc)
	for _, v := range []int{5, 1, 9, 3, 7, 2, 8} {
		l.Offer(v)
	}
	assert.Equal(t, []int{9, 8, 7}, l.Sorted())
}

func TestListWorstReflectsBound(t *testing.T) {
	l := New(2, byIntDesc)
	_, full := l.Worst()
	assert.False(t, full)
	l.Offer(10)
	l.Offer(4)
	w, full := l.Worst()
	assert.True(t, full)
	assert.Equal(t, 4, w)
	l.Offer(3) // worse than current worst, rejected
	w, _ = l.Worst()
	assert.Equal(t, 4, w)
	l.Offer(6) // better than current worst, replaces it
	assert.Equal(t, []int{10, 6}, l.Sorted())
}

type pair struct {
	name  string
	count int
}

func TestListSecondaryTieBreak(t *testing.T) {
	less := func(a, b pair) bool {
		if a.count != b.count {
			return a.count > b.count
		}
		return a.name < b.name
	}
	l := New(2, less)
	l.Offer(pair{"opera", 3})
	l.Offer(pair{"cinema", 5})
	l.Offer(pair{"ballet", 3})
	got := l.Sorted()
	assert.Equal(t, []pair{{"cinema", 5}, {"ballet", 3}}, got)
}
