// Package q3 implements the shared-tag pair ranking query of spec.md
// §4.I: within a named place, find the top-k person pairs reachable
// within a bounded number of hops, ranked by the number of interest tags
// they share.
package q3

import (
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/snb-graphcore/ingest"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
	"github.com/ZanzyTHEbar/snb-graphcore/topk"
)

type pair struct {
	p1, p2 model.PersonID
	shared int
}

func less(a, b pair) bool {
	if a.shared != b.shared {
		return a.shared > b.shared
	}
	if a.p1 != b.p1 {
		return a.p1 < b.p1
	}
	return a.p2 < b.p2
}

// Run returns up to k "orig1|orig2" pair strings using original
// (non-densified) person ids, or an empty slice for an unknown place name.
func Run(idx *ingest.FileIndexes, k, hops int, placeName string) []string {
	intervals := resolvePlace(idx, placeName)
	if len(intervals) == 0 {
		return nil
	}
	seeds := selectedPersons(idx, intervals)
	sortByInterestCountDesc(idx, seeds)

	top := topk.New(k, less)
	for _, seed := range seeds {
		reachable := boundedBFS(idx, seed, hops)
		for _, other := range reachable {
			if other <= seed {
				continue // enumerate each unordered pair exactly once
			}
			shared := sharedTagCount(idx, seed, other)
			if shared > 0 {
				top.Offer(pair{p1: seed, p2: other, shared: shared})
			}
		}
	}

	out := make([]string, 0, top.Len())
	for _, pr := range top.Sorted() {
		out = append(out, fmt.Sprintf("%d|%d", idx.Persons.Original(pr.p1), idx.Persons.Original(pr.p2)))
	}
	return out
}

func resolvePlace(idx *ingest.FileIndexes, name string) []model.PlaceInterval {
	ids, ok := idx.PlaceNames.Lookup(name)
	if !ok || len(ids) == 0 {
		return nil
	}
	raw := make([]model.PlaceInterval, 0, len(ids))
	for _, id := range ids {
		if int(id) >= len(idx.Places) {
			continue
		}
		pl := idx.Places[id]
		raw = append(raw, model.PlaceInterval{Lower: pl.Lower, Upper: pl.Upper})
	}
	return mergeIntervals(raw)
}

// mergeIntervals collapses overlapping or touching intervals into a
// minimal disjoint set (spec.md §4.I step 1).
func mergeIntervals(in []model.PlaceInterval) []model.PlaceInterval {
	if len(in) == 0 {
		return nil
	}
	sort.Slice(in, func(i, j int) bool { return in[i].Lower < in[j].Lower })
	out := []model.PlaceInterval{in[0]}
	for _, cur := range in[1:] {
		last := &out[len(out)-1]
		if cur.Lower <= last.Upper {
			if cur.Upper > last.Upper {
				last.Upper = cur.Upper
			}
			continue
		}
		out = append(out, cur)
	}
	return out
}

func overlapsAny(intervals []model.PlaceInterval, p model.PlaceInterval) bool {
	for _, iv := range intervals {
		if p.Overlaps(iv.Lower, iv.Upper) {
			return true
		}
	}
	return false
}

func selectedPersons(idx *ingest.FileIndexes, intervals []model.PlaceInterval) []model.PersonID {
	var out []model.PersonID
	for p, places := range idx.PersonPlaces {
		for _, pl := range places {
			if overlapsAny(intervals, pl) {
				out = append(out, model.PersonID(p))
				break
			}
		}
	}
	return out
}

func sortByInterestCountDesc(idx *ingest.FileIndexes, persons []model.PersonID) {
	count := func(p model.PersonID) int {
		if list := idx.Interests.ByPerson[p]; list != nil {
			return list.Len()
		}
		return 0
	}
	sort.Slice(persons, func(i, j int) bool { return count(persons[i]) > count(persons[j]) })
}

func boundedBFS(idx *ingest.FileIndexes, seed model.PersonID, hops int) []model.PersonID {
	visited := map[model.PersonID]bool{seed: true}
	frontier := []model.PersonID{seed}
	var reached []model.PersonID
	for d := 0; d < hops && len(frontier) > 0; d++ {
		var next []model.PersonID
		for _, u := range frontier {
			adj := idx.Graph.Adjacency[u]
			if adj == nil {
				continue
			}
			for _, raw := range adj.Items {
				v := model.PersonID(raw)
				if visited[v] {
					continue
				}
				visited[v] = true
				next = append(next, v)
				reached = append(reached, v)
			}
		}
		frontier = next
	}
	return reached
}

// sharedTagCount merge-joins two sorted interest-tag lists (spec.md
// §4.I step 4's merge-join alternative to SSE galloping intersection).
func sharedTagCount(idx *ingest.FileIndexes, a, b model.PersonID) int {
	la, lb := idx.Interests.ByPerson[a], idx.Interests.ByPerson[b]
	if la == nil || lb == nil {
		return 0
	}
	i, j, count := 0, 0, 0
	for i < len(la.Items) && j < len(lb.Items) {
		switch {
		case la.Items[i] == lb.Items[j]:
			count++
			i++
			j++
		case la.Items[i] < lb.Items[j]:
			i++
		default:
			j++
		}
	}
	return count
}
