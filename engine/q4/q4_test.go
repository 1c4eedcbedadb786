package q4

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"

	"github.com/ZanzyTHEbar/snb-graphcore/config"
	"github.com/ZanzyTHEbar/snb-graphcore/index"
	"github.com/ZanzyTHEbar/snb-graphcore/ingest"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// starFixture builds a small two-component forum subgraph: a 5-person
// star centered on person 2 (dense), and a disconnected pair {10,11}, all
// members of one forum carrying tag "football".
func starFixture() *ingest.FileIndexes {
	n := 12
	g := ingest.NewGraph(n)
	adj := map[int][]uint32{
		2: {0, 1, 3, 4},
		0: {2}, 1: {2}, 3: {2}, 4: {2},
		10: {11}, 11: {10},
	}
	for p := 0; p < n; p++ {
		g.Adjacency[p] = index.NewUint32List(adj[p])
		g.Weight[p] = make([]atomic.Uint32, len(adj[p]))
	}

	mapper := model.NewPersonMapper(n)
	for i := 0; i < n; i++ {
		mapper.Densify(uint64(1000 + i))
	}

	tagNames := model.NewNameIndex()
	tagNames.Insert("football", 0)

	forums := ingest.NewForums()
	forums.TagForums[0] = []uint32{7}
	forums.ForumMembers[7] = index.NewUint32List([]uint32{0, 1, 2, 3, 4, 10, 11})

	return &ingest.FileIndexes{
		Graph:    g,
		Persons:  mapper,
		TagNames: tagNames,
		Forums:   forums,
	}
}

func TestRunPicksTheCentralPersonOfTheLargerComponent(t *testing.T) {
	idx := starFixture()
	out := Run(idx, 1, "football", &config.Config{})
	assert.Equal(t, []uint64{1002}, out) // person 2 -> original id 1000+2
}

func TestRunReturnsNilForUnknownTag(t *testing.T) {
	idx := starFixture()
	assert.Nil(t, Run(idx, 1, "curling", &config.Config{}))
}

func TestRunHonoursExpbackoffStrategy(t *testing.T) {
	idx := starFixture()
	cfg := &config.Config{Q4: config.Q4Config{SearchStrategy: "expbackoff", MorselSize: 2}}
	out := Run(idx, 1, "football", cfg)
	assert.Equal(t, []uint64{1002}, out)
}
