package q4

import "github.com/ZanzyTHEbar/snb-graphcore/internal"

// CentralityResult is one completed seed's exact BFS outcome (spec.md
// §4.J: "Completed seeds yield CentralityResult{person, distances,
// numReachable, centrality}").
type CentralityResult struct {
	Person       subID
	Distances    int64
	NumReachable int
	Centrality   float64
	EarlyExit    bool
}

// closeness implements spec.md §4.J's formula: (r-1)^2 / ((N-1)*D), 0
// when D, r, or N is zero.
func closeness(r int, d int64, n int) float64 {
	if d <= 0 || r <= 0 || n <= 0 {
		return 0
	}
	num := float64(r-1) * float64(r-1)
	den := float64(n-1) * float64(d)
	return num / den
}

// pruningBound returns the maximum total distance D a person with
// component size r could still reach while beating the current k-th best
// centrality c, per spec.md §4.J's pruning-bound note. r is the seed's
// full component size rather than its eventual reachable count, which is
// only known once the BFS finishes; using component size is conservative
// (it can only overestimate r, which loosens the bound) and never causes a
// seed that could still win to be pruned early.
func pruningBound(c float64, r, n int) int64 {
	if c <= 0 {
		return -1 // no bound yet; nothing to prune against
	}
	num := float64(r-1) * float64(r-1)
	den := c * float64(n-1)
	if den <= 0 {
		return -1
	}
	bound := num/den + 1
	return int64(bound) + 1
}

// exactBFS runs a full single-seed BFS from seed over the subgraph,
// accumulating reached-count and total distance, exiting early once the
// admissible lower bound on remaining distance guarantees the result
// cannot beat allowedMax (allowedMax < 0 disables pruning).
func exactBFS(g *subgraph, comp *components, seed subID, n int, allowedMax int64) CentralityResult {
	visited := make(map[subID]bool, 16)
	visited[seed] = true
	frontier := []subID{seed}

	var totalDistance int64
	reached := 0
	level := 0

	for len(frontier) > 0 {
		level++
		var next []subID
		for _, u := range frontier {
			for _, v := range g.neighbors(u) {
				if visited[v] {
					continue
				}
				visited[v] = true
				next = append(next, v)
				reached++
				totalDistance += int64(level)
			}
		}
		frontier = next

		if allowedMax >= 0 {
			remaining := comp.sizeOf(seed) - 1 - reached
			if remaining >= 0 {
				lowerBoundRemaining := int64(level+1) * int64(remaining)
				if totalDistance+lowerBoundRemaining > allowedMax {
					return CentralityResult{Person: seed, EarlyExit: true}
				}
			}
		}
	}

	if allowedMax >= 0 {
		internal.Check("q4.pruningbound", totalDistance <= allowedMax,
			"seed %d finished BFS with distance %d exceeding its own pruning bound %d",
			seed, totalDistance, allowedMax)
	}

	c := closeness(reached, totalDistance, n)
	return CentralityResult{Person: seed, Distances: totalDistance, NumReachable: reached, Centrality: c}
}
