package q4

import (
	"sync"

	"go.uber.org/atomic"
)

// bound is the immutable record published via an atomic pointer so
// readers never see a torn value (spec.md §5).
type bound struct {
	centrality float64
	full       bool
}

// searchState is the shared, mutex/atomic-protected state every strategy
// updates as candidates complete.
type searchState struct {
	mu           sync.Mutex
	top          []CentralityResult // kept sorted best-to-worst, len <= k
	k            int
	n            int
	publishedPtr atomic.Value // *bound
	originalOf   func(subID) uint64
}

func newSearchState(k, n int, originalOf func(subID) uint64) *searchState {
	s := &searchState{k: k, n: n, originalOf: originalOf}
	s.publishedPtr.Store(&bound{})
	return s
}

func (s *searchState) currentBound() *bound {
	return s.publishedPtr.Load().(*bound)
}

// offer inserts r into the top-k under lock if it qualifies, then
// republishes the bound.
func (s *searchState) offer(r CentralityResult) {
	if r.EarlyExit || r.NumReachable == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	insertAt := len(s.top)
	for i, cur := range s.top {
		if better(r, cur, s.originalOf) {
			insertAt = i
			break
		}
	}
	if insertAt >= s.k {
		return
	}
	s.top = append(s.top, CentralityResult{})
	copy(s.top[insertAt+1:], s.top[insertAt:])
	s.top[insertAt] = r
	if len(s.top) > s.k {
		s.top = s.top[:s.k]
	}

	if len(s.top) == s.k {
		s.publishedPtr.Store(&bound{centrality: s.top[len(s.top)-1].Centrality, full: true})
	}
}

// better reports whether a ranks ahead of b: closeness descending with a
// 1e-12 tolerance, then original person id ascending (spec.md §4.J; the
// tie-break is on the source dataset's id, matching the reference, not on
// the densified subgraph id, which follows discovery order rather than id
// order).
func better(a, b CentralityResult, originalOf func(subID) uint64) bool {
	const tolerance = 1e-12
	if a.Centrality-b.Centrality > tolerance {
		return true
	}
	if b.Centrality-a.Centrality > tolerance {
		return false
	}
	return originalOf(a.Person) < originalOf(b.Person)
}

func (s *searchState) results() []CentralityResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]CentralityResult(nil), s.top...)
}

// runDirect implements the "build mode A" strategy of spec.md §4.J: a
// short sequential warm-up in estimate order until the bound first
// improves, then the remaining persons dispatched as up-to-128 morsels
// run concurrently.
func runDirect(g *subgraph, comp *components, ordered []estimate, state *searchState, morselSize int) {
	i := 0
	for ; i < len(ordered); i++ {
		before := state.currentBound()
		state.offer(runOne(g, comp, ordered[i].person, state))
		if state.currentBound().full && !before.full {
			i++
			break
		}
	}

	remaining := ordered[i:]
	var wg sync.WaitGroup
	for start := 0; start < len(remaining); start += morselSize {
		end := start + morselSize
		if end > len(remaining) {
			end = len(remaining)
		}
		morsel := remaining[start:end]
		wg.Add(1)
		go func(morsel []estimate) {
			defer wg.Done()
			for _, e := range morsel {
				state.offer(runOne(g, comp, e.person, state))
			}
		}(morsel)
	}
	wg.Wait()
}

func runOne(g *subgraph, comp *components, seed subID, state *searchState) CentralityResult {
	b := state.currentBound()
	allowedMax := int64(-1)
	if b.full {
		allowedMax = pruningBound(b.centrality, comp.sizeOf(seed), state.n)
	}
	return exactBFS(g, comp, seed, state.n, allowedMax)
}

// runExpBackoff implements "build mode B" of spec.md §4.J: rounds over
// successive estimate-order windows, each a shrinking share of the persons
// not yet visited, stopping after two consecutive rounds with no bound
// improvement. This implementation folds the odd/even
// "interesting seed" resampling into a single estimate-order window per
// round, since interesting-seed sampling depends on qualified-pair
// shortest paths that only exist after a first successful round.
func runExpBackoff(g *subgraph, comp *components, ordered []estimate, state *searchState, morselSize int) {
	const noImprovementLimit = 2
	pos := 0
	stale := 0
	round := 1
	for pos < len(ordered) && stale < noImprovementLimit {
		before := state.currentBound()
		window := (len(ordered)-pos)/(round/2+2) + 1
		if window < 1 {
			window = 1
		}
		end := pos + window
		if end > len(ordered) {
			end = len(ordered)
		}
		runDirect(g, comp, ordered[pos:end], state, morselSize)

		after := state.currentBound()
		if after.full && (!before.full || after.centrality > before.centrality) {
			stale = 0
		} else {
			stale++
		}
		pos = end
		round++
	}
}
