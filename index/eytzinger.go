package index

import "math/bits"

// eytzingerAccel holds a breadth-first (eytzinger) reordering of a sorted
// list alongside a parallel back-reference to each value's index in the
// original list, so a search can walk predictable array offsets instead of
// chasing a binary-search midpoint pattern the branch predictor cannot
// learn, while still returning a position in the caller's original slice.
// Grounded on the eytzinger layout used for numeric search acceleration in
// the retrieval pack's columnar-index examples.
type eytzingerAccel struct {
	keys []uint32
	back []int
}

func buildEytzingerAccel(sorted []uint32) *eytzingerAccel {
	n := len(sorted)
	a := &eytzingerAccel{keys: make([]uint32, n), back: make([]int, n)}
	pos := 0
	var dfs func(i int)
	dfs = func(i int) {
		if i > n {
			return
		}
		dfs(i << 1)
		a.keys[i-1] = sorted[pos]
		a.back[i-1] = pos
		pos++
		dfs((i << 1) | 1)
	}
	dfs(1)
	return a
}

// find returns the index of x in the original slice the accelerator was
// built from, or -1.
func (a *eytzingerAccel) find(x uint32) int {
	i := 1
	n := len(a.keys)
	for i <= n {
		if a.keys[i-1] < x {
			i = (i << 1) | 1
		} else {
			i = i << 1
		}
	}
	// The descent's final position overshoots by exactly the trailing run
	// of right turns it took (each right turn sets a low bit); undo the
	// whole run, then one more step, to land back on the last left turn
	// the path made (or 0, if it never turned left).
	i >>= bits.TrailingZeros(uint(^uint(i))) + 1
	if i == 0 || a.keys[i-1] != x {
		return -1
	}
	return a.back[i-1]
}
