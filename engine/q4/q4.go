package q4

import (
	"github.com/ZanzyTHEbar/snb-graphcore/config"
	"github.com/ZanzyTHEbar/snb-graphcore/ingest"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// Run returns up to k original person ids ranked by closeness centrality
// inside the subgraph induced by forums carrying tagName, or nil for a
// tag matching zero forums (spec.md §4.J).
func Run(idx *ingest.FileIndexes, k int, tagName string, cfg *config.Config) []uint64 {
	ids, ok := idx.TagNames.Lookup(tagName)
	if !ok || len(ids) == 0 {
		return nil
	}
	tagID := model.TagID(ids[0])

	g := buildSubgraph(idx, tagID)
	if g.n == 0 {
		return nil
	}

	comp := computeComponents(g)
	estimates := computeEstimates(g, comp)
	ordered := orderByEstimate(estimates)

	morselSize := 128
	strategy := "direct"
	if cfg != nil {
		if cfg.Q4.MorselSize > 0 {
			morselSize = cfg.Q4.MorselSize
		}
		if cfg.Q4.SearchStrategy != "" {
			strategy = cfg.Q4.SearchStrategy
		}
	}

	state := newSearchState(k, g.n, func(s subID) uint64 {
		return idx.Persons.Original(g.toGlobal[s-1])
	})
	if strategy == "expbackoff" {
		runExpBackoff(g, comp, ordered, state, morselSize)
	} else {
		runDirect(g, comp, ordered, state, morselSize)
	}

	results := state.results()
	out := make([]uint64, len(results))
	for i, r := range results {
		out[i] = idx.Persons.Original(g.toGlobal[r.Person-1])
	}
	return out
}
