package q3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"

	"github.com/ZanzyTHEbar/snb-graphcore/index"
	"github.com/ZanzyTHEbar/snb-graphcore/ingest"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// fixture wires 4 persons {0,1,2,3} all in place "Asia", pairwise reachable
// within 2 hops via a star centered on 0, with interest overlaps chosen so
// (0,1) and (0,2) share more tags than (0,3).
func fixture() *ingest.FileIndexes {
	n := 4
	g := ingest.NewGraph(n)
	adj := map[int][]uint32{0: {1, 2, 3}, 1: {0}, 2: {0}, 3: {0}}
	for p := 0; p < n; p++ {
		g.Adjacency[p] = index.NewUint32List(adj[p])
		g.Weight[p] = make([]atomic.Uint32, len(adj[p]))
	}

	interests := ingest.NewInterests(n)
	byPerson := []struct {
		p    int
		tags []uint32
	}{
		{0, []uint32{1, 2, 3}},
		{1, []uint32{1, 2}},
		{2, []uint32{1, 2}},
		{3, []uint32{3}},
	}
	for _, bp := range byPerson {
		interests.ByPerson[bp.p] = index.NewUint32List(bp.tags)
	}

	places := []model.Place{{ID: 0, Name: "Asia", Lower: 0, Upper: 10}}
	placeNames := model.NewNameIndex()
	placeNames.Insert("Asia", 0)

	personPlaces := make([][]model.PlaceInterval, n)
	for p := 0; p < n; p++ {
		personPlaces[p] = []model.PlaceInterval{{Lower: 5, Upper: 5}}
	}

	mapper := model.NewPersonMapper(n)
	for i := 0; i < n; i++ {
		mapper.Densify(uint64(100 + i))
	}

	return &ingest.FileIndexes{
		Graph:        g,
		Interests:    interests,
		Places:       places,
		PlaceNames:   placeNames,
		PersonPlaces: personPlaces,
		Persons:      mapper,
	}
}

func TestRunRanksPairsByStrictlySharedTagCount(t *testing.T) {
	idx := fixture()
	out := Run(idx, 2, 2, "Asia")
	assert.Equal(t, []string{"100|101", "100|102"}, out)
}

func TestRunReturnsEmptyForUnknownPlace(t *testing.T) {
	idx := fixture()
	assert.Empty(t, Run(idx, 2, 2, "Nowhere"))
}
