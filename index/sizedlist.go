package index

import "sort"

// SizedList is `[count][entry]*count`: a flat, immutable-once-finalized
// list. Used for relations that do not need the branch-predictable
// numeric search Uint32List provides (e.g. LinkedSizedList.Flatten's
// output); Knows adjacency and HasInterest use Uint32List.
type SizedList[T any] struct {
	Items []T
}

func NewSizedList[T any](items []T) SizedList[T] { return SizedList[T]{Items: items} }

func (s SizedList[T]) Len() int { return len(s.Items) }

// Uint32List is a sorted, duplicate-free list of uint32 (person ids, tag
// ids). It backs Knows adjacency and HasInterest, and exposes the
// "SIMD-accelerated find" contract of spec.md §4.B as a portable binary
// search plus an optional eytzinger-order accelerator (index/eytzinger.go)
// for lists that are queried far more often than they are built.
type Uint32List struct {
	Items []uint32

	eytz     *eytzingerAccel // lazily built eytzinger-order accelerator
	eytzHits int             // Find() calls since last reset; triggers eytz build
}

// NewUint32List wraps an already-sorted, duplicate-free slice. Callers own
// the sortedness invariant (component B invariant 2 in spec.md §3).
func NewUint32List(sorted []uint32) *Uint32List {
	return &Uint32List{Items: sorted}
}

func (l *Uint32List) Len() int { return len(l.Items) }

// eytzingerThreshold is the number of Find calls on one list (of more than
// 32 items) after which an eytzinger accelerator is built, so a list probed
// only a few times never pays the build, while a list probed repeatedly
// (Graph.WeightBetween in Q1, AddReplyWeight during ingest) does.
const eytzingerThreshold = 8

// Find performs a branch-predictable search for x, returning its index or
// -1. Once a list crosses eytzingerThreshold lookups it builds an
// eytzinger-order accelerator and searches that instead.
func (l *Uint32List) Find(x uint32) int {
	l.eytzHits++
	if l.eytzHits == eytzingerThreshold && l.eytz == nil && len(l.Items) > 32 {
		l.eytz = buildEytzingerAccel(l.Items)
	}
	if l.eytz != nil {
		return l.eytz.find(x)
	}
	i := sort.Search(len(l.Items), func(i int) bool { return l.Items[i] >= x })
	if i < len(l.Items) && l.Items[i] == x {
		return i
	}
	return -1
}

// Contains reports membership without exposing the index.
func (l *Uint32List) Contains(x uint32) bool { return l.Find(x) >= 0 }

// InsertSorted inserts x keeping Items sorted and duplicate-free; returns
// false if x was already present. Invalidates any built accelerator.
func (l *Uint32List) InsertSorted(x uint32) bool {
	i := sort.Search(len(l.Items), func(i int) bool { return l.Items[i] >= x })
	if i < len(l.Items) && l.Items[i] == x {
		return false
	}
	l.Items = append(l.Items, 0)
	copy(l.Items[i+1:], l.Items[i:])
	l.Items[i] = x
	l.eytz = nil
	l.eytzHits = 0
	return true
}
