// Package topk implements the bounded-size ordered collection used by Q2
// and Q3 (Q4 keeps its own top-k list): a min-heap over the current k best elements under a given
// comparator, so an element worse than the current worst is rejected in
// O(1) and an improvement costs O(log k). Grounded on the container/heap
// min-heap shape used for range queries in the retrieval pack's spatial
// index examples.
package topk

import "container/heap"

// Less reports whether a should rank strictly ahead of b under the
// list's ordering (larger-is-better semantics are expressed by the
// concrete Less implementation, not by this package).
type Less[T any] func(a, b T) bool

// List holds at most K elements, the K "largest" under less.
type List[T any] struct {
	k     int
	less  Less[T]
	items minHeap[T]
}

func New[T any](k int, less Less[T]) *List[T] {
	return &List[T]{k: k, less: less, items: minHeap[T]{less: less}}
}

// Offer inserts v if the list has room or v beats the current worst
// element; returns true if v was kept.
func (l *List[T]) Offer(v T) bool {
	if l.k <= 0 {
		return false
	}
	if len(l.items.data) < l.k {
		heap.Push(&l.items, v)
		return true
	}
	worst := l.items.data[0]
	// worst is kept only while nothing beats it: replace it once v ranks
	// strictly ahead of worst.
	if l.less(v, worst) {
		l.items.data[0] = v
		heap.Fix(&l.items, 0)
		return true
	}
	return false
}

// Len returns the number of elements currently held (<= k).
func (l *List[T]) Len() int { return len(l.items.data) }

// Worst returns the current k-th best element and whether the list is
// full; Q2 uses this for monotone-bound pruning.
func (l *List[T]) Worst() (T, bool) {
	var zero T
	if len(l.items.data) < l.k {
		return zero, false
	}
	return l.items.data[0], true
}

// Sorted drains the list into a slice ordered best-to-worst.
func (l *List[T]) Sorted() []T {
	out := make([]T, len(l.items.data))
	tmp := minHeap[T]{data: append([]T(nil), l.items.data...), less: l.less}
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = heap.Pop(&tmp).(T)
	}
	return out
}

type minHeap[T any] struct {
	data []T
	less Less[T]
}

func (h minHeap[T]) Len() int            { return len(h.data) }
func (h minHeap[T]) Less(i, j int) bool  { return h.less(h.data[j], h.data[i]) } // min-heap of "worst first"
func (h minHeap[T]) Swap(i, j int)       { h.data[i], h.data[j] = h.data[j], h.data[i] }
func (h *minHeap[T]) Push(x interface{}) { h.data = append(h.data, x.(T)) }
func (h *minHeap[T]) Pop() interface{} {
	old := h.data
	n := len(old)
	item := old[n-1]
	h.data = old[:n-1]
	return item
}
