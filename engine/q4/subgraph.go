// Package q4 implements the closeness-centrality query of spec.md §4.J:
// among the persons reachable through forums carrying a given tag, find
// the top-k by closeness centrality within that induced subgraph.
package q4

import (
	roaring "github.com/RoaringBitmap/roaring"

	"github.com/ZanzyTHEbar/snb-graphcore/ingest"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// subID is a dense index into the densified subgraph, [1, N]; 0 is the
// sentinel spec.md §4.J names for "not in the subgraph".
type subID uint32

const noSub subID = 0

// subgraph is the induced subgraph over persons reachable through forums
// carrying the query tag, densified to [1, N_sub] with a friend-adjacency
// list restricted to that person set.
type subgraph struct {
	n         int
	toSub     map[model.PersonID]subID
	toGlobal  []model.PersonID // indexed by subID-1
	adjacency [][]subID        // indexed by subID-1
}

// buildSubgraph implements spec.md §4.J's setup steps 1-2: gather every
// person in a forum carrying tagID, drop anyone with no qualifying
// forum-member friend, then densify.
func buildSubgraph(idx *ingest.FileIndexes, tagID model.TagID) *subgraph {
	forums, ok := idx.Forums.TagForums[tagID]
	if !ok || len(forums) == 0 {
		return &subgraph{}
	}

	filtered := roaring.New()
	for _, forum := range forums {
		members := idx.Forums.ForumMembers[forum]
		if members == nil {
			continue
		}
		filtered.AddMany(members.Items)
	}
	if filtered.IsEmpty() {
		return &subgraph{}
	}

	toSub := make(map[model.PersonID]subID, filtered.GetCardinality())
	toGlobal := make([]model.PersonID, 0, filtered.GetCardinality())

	it := filtered.Iterator()
	for it.HasNext() {
		p := model.PersonID(it.Next())
		hasQualifyingFriend := false
		if adj := idx.Graph.Adjacency[p]; adj != nil {
			for _, nbr := range adj.Items {
				if filtered.Contains(nbr) {
					hasQualifyingFriend = true
					break
				}
			}
		}
		if !hasQualifyingFriend {
			continue
		}
		toSub[p] = subID(len(toGlobal) + 1)
		toGlobal = append(toGlobal, p)
	}

	adjacency := make([][]subID, len(toGlobal))
	for i, p := range toGlobal {
		adj := idx.Graph.Adjacency[p]
		if adj == nil {
			continue
		}
		var nbrs []subID
		for _, raw := range adj.Items {
			if s, ok := toSub[model.PersonID(raw)]; ok {
				nbrs = append(nbrs, s)
			}
		}
		adjacency[i] = nbrs
	}

	return &subgraph{
		n:         len(toGlobal),
		toSub:     toSub,
		toGlobal:  toGlobal,
		adjacency: adjacency,
	}
}

func (g *subgraph) neighbors(s subID) []subID {
	if int(s) < 1 || int(s) > g.n {
		return nil
	}
	return g.adjacency[s-1]
}
