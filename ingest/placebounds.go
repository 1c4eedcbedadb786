package ingest

import "github.com/ZanzyTHEbar/snb-graphcore/model"

// assignPlaceBounds performs a DFS over the place forest and assigns each
// place the half-open interval [lower, upper) such that containment reduces
// to a pair of comparisons (spec.md §3 invariant 3): lower is the place's
// own DFS pre-order slot and upper is one past the last slot used by its
// subtree, so every descendant's interval lies inside its ancestor's.
func assignPlaceBounds(places []model.Place) {
	children := make([][]model.PlaceID, len(places))
	roots := make([]model.PlaceID, 0)
	for i := range places {
		p := places[i].Parent
		if p == model.NoPlace {
			roots = append(roots, model.PlaceID(i))
		} else {
			children[p] = append(children[p], model.PlaceID(i))
		}
	}

	next := uint32(0)
	var dfs func(id model.PlaceID)
	dfs = func(id model.PlaceID) {
		lower := next
		next++
		for _, c := range children[id] {
			dfs(c)
		}
		places[id].Lower = lower
		places[id].Upper = next
	}
	for _, r := range roots {
		dfs(r)
	}
}
