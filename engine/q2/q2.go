// Package q2 implements the per-tag largest connected component query of
// spec.md §4.H: scan tags in descending person-count order, apply a
// birthday cutoff, and find each tag's largest qualifying component,
// keeping only the top-k tags by component size.
package q2

import (
	roaring "github.com/RoaringBitmap/roaring"

	"github.com/ZanzyTHEbar/snb-graphcore/ingest"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
	"github.com/ZanzyTHEbar/snb-graphcore/topk"
)

type result struct {
	tagName string
	size    uint32
}

func less(a, b result) bool {
	if a.size != b.size {
		return a.size > b.size
	}
	return a.tagName < b.tagName
}

// Run returns up to k tag names ordered by their largest qualifying
// component size descending, tag name ascending on ties.
func Run(idx *ingest.FileIndexes, k int, cutoff model.Birthday) []string {
	top := topk.New(k, less)

	for _, stat := range idx.InterestStats {
		if worst, full := top.Worst(); full && stat.NumPersons < worst.size {
			break // monotone bound: no later tag can beat the current k-th best
		}
		if stat.MaxBirthday < cutoff {
			continue
		}

		bm, ok := idx.Interests.ByTag[stat.Tag]
		if !ok {
			continue
		}
		matching := matchingPersons(bm, idx.Birthday, cutoff)
		largest := largestComponent(idx, matching, top, k)
		if largest > 0 {
			top.Offer(result{tagName: tagName(idx, stat.Tag), size: largest})
		}
	}

	names := make([]string, 0, top.Len())
	for _, r := range top.Sorted() {
		names = append(names, r.tagName)
	}
	return names
}

func tagName(idx *ingest.FileIndexes, id model.TagID) string {
	if int(id) < len(idx.Tags) {
		return idx.Tags[id].Name
	}
	return ""
}

func matchingPersons(bm *roaring.Bitmap, birthdays []model.Birthday, cutoff model.Birthday) *roaring.Bitmap {
	matching := roaring.New()
	it := bm.Iterator()
	for it.HasNext() {
		p := it.Next()
		if int(p) < len(birthdays) && birthdays[p] >= cutoff {
			matching.Add(p)
		}
	}
	return matching
}

// largestComponent runs a bounded BFS from every unvisited matching
// person, restricted to edges whose endpoints are both in matching, and
// returns the largest component size found. Seed scanning halts once the
// remaining unvisited matching persons could no longer beat the current
// k-th best (spec.md §4.H step 4).
func largestComponent(idx *ingest.FileIndexes, matching *roaring.Bitmap, top *topk.List[result], k int) uint32 {
	visited := roaring.New()
	remaining := matching.GetCardinality()
	var best uint32

	it := matching.Iterator()
	for it.HasNext() {
		seed := it.Next()
		if visited.Contains(seed) {
			continue
		}
		if worst, full := top.Worst(); full && uint32(remaining) < worst.size {
			break
		}

		size := bfsComponent(idx, matching, visited, seed)
		remaining -= uint64(size)
		if size > best {
			best = size
		}
	}
	return best
}

func bfsComponent(idx *ingest.FileIndexes, matching, visited *roaring.Bitmap, seed uint32) uint32 {
	visited.Add(seed)
	queue := []uint32{seed}
	var size uint32
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		size++
		adj := idx.Graph.Adjacency[model.PersonID(u)]
		if adj == nil {
			continue
		}
		for _, v := range adj.Items {
			if !matching.Contains(v) || visited.Contains(v) {
				continue
			}
			visited.Add(v)
			queue = append(queue, v)
		}
	}
	return size
}
