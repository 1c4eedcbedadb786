package q4

import "sort"

// maxLevel is the bounded number of BFS levels used for the reachability
// estimate (spec.md §4.J step 4: "12 in the reference").
const maxLevel = 12

// estimate holds the ordering key computed for one person: a lower bound
// on total BFS distance derived from a cheap propagation-based
// reachability estimate, used to order the search space before the exact
// BFS pass (spec.md §4.J steps 4-5).
type estimate struct {
	person             subID
	distanceLowerBound int64
}

// computeEstimates implements the reach_d recurrence: distance-1 equals
// degree; distance-d is the sum of distance-(d-1) over neighbours minus a
// first-order over-count correction, capped at componentSize-1 and
// monotone non-decreasing.
func computeEstimates(g *subgraph, comp *components) []estimate {
	n := g.n
	reach := make([][]float64, maxLevel+1)
	reach[0] = make([]float64, n)

	deg := make([]int, n)
	for i := 0; i < n; i++ {
		deg[i] = len(g.neighbors(subID(i + 1)))
	}

	reach[1] = make([]float64, n)
	for i := 0; i < n; i++ {
		reach[1][i] = float64(deg[i])
	}

	for d := 2; d <= maxLevel; d++ {
		reach[d] = make([]float64, n)
		for i := 0; i < n; i++ {
			s := subID(i + 1)
			var sum float64
			for _, nbr := range g.neighbors(s) {
				sum += reach[d-1][nbr-1]
			}
			corrected := sum - float64(deg[i]-1)*reach[d-2][i]
			if corrected < reach[d-1][i] {
				corrected = reach[d-1][i]
			}
			ceiling := float64(comp.sizeOf(s) - 1)
			if corrected > ceiling {
				corrected = ceiling
			}
			reach[d][i] = corrected
		}
	}

	out := make([]estimate, n)
	for i := 0; i < n; i++ {
		s := subID(i + 1)
		total := reach[maxLevel][i]
		var sum int64
		prev := 0.0
		for d := 1; d <= maxLevel; d++ {
			sum += int64(float64(d) * (reach[d][i] - prev))
			prev = reach[d][i]
		}
		componentTotal := float64(comp.sizeOf(s) - 1)
		sum += int64(float64(maxLevel) * (componentTotal - total))
		out[i] = estimate{person: s, distanceLowerBound: sum}
	}
	return out
}

// orderByEstimate sorts ascending by distanceLowerBound>>4, subID
// ascending as a tie-break (spec.md §4.J step 5).
func orderByEstimate(estimates []estimate) []estimate {
	out := append([]estimate(nil), estimates...)
	sort.Slice(out, func(i, j int) bool {
		bi, bj := out[i].distanceLowerBound>>4, out[j].distanceLowerBound>>4
		if bi != bj {
			return bi < bj
		}
		return out[i].person < out[j].person
	})
	return out
}
