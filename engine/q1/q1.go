// Package q1 implements the bounded shortest-path query of spec.md §4.G:
// a bidirectional BFS over the Knows graph where a hop is only traversable
// when both directions of the edge carry more than a minimum number of
// reply-comment interactions.
package q1

import (
	"github.com/ZanzyTHEbar/snb-graphcore/ingest"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// Run returns the hop count of the shortest qualifying path between
// source and target, 0 if they are equal, or -1 if disconnected (or no
// qualifying edge exists). n < 0 disables the interaction-weight filter.
func Run(idx *ingest.FileIndexes, source, target model.PersonID, n int64) int {
	if source == target {
		return 0
	}

	fwdSeen := map[model.PersonID]int{source: 0}
	bwdSeen := map[model.PersonID]int{target: 0}
	fwdFrontier := []model.PersonID{source}
	bwdFrontier := []model.PersonID{target}
	best := -1

	traversable := func(u, v model.PersonID) bool {
		if n < 0 {
			return true
		}
		wUV, ok := idx.Graph.WeightBetween(u, v)
		if !ok || int64(wUV) <= n {
			return false
		}
		wVU, ok := idx.Graph.WeightBetween(v, u)
		return ok && int64(wVU) > n
	}

	expand := func(frontier []model.PersonID, seen, other map[model.PersonID]int) []model.PersonID {
		var next []model.PersonID
		for _, u := range frontier {
			adj := idx.Graph.Adjacency[u]
			if adj == nil {
				continue
			}
			du := seen[u]
			for _, raw := range adj.Items {
				v := model.PersonID(raw)
				if _, ok := seen[v]; ok {
					continue
				}
				if !traversable(u, v) {
					continue
				}
				seen[v] = du + 1
				next = append(next, v)
				if od, ok := other[v]; ok {
					candidate := seen[v] + od
					if best < 0 || candidate < best {
						best = candidate
					}
				}
			}
		}
		return next
	}

	for len(fwdFrontier) > 0 && len(bwdFrontier) > 0 {
		if len(fwdFrontier) <= len(bwdFrontier) {
			fwdFrontier = expand(fwdFrontier, fwdSeen, bwdSeen)
		} else {
			bwdFrontier = expand(bwdFrontier, bwdSeen, fwdSeen)
		}
	}

	return best
}
