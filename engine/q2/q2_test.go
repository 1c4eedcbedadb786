package q2

import (
	"testing"

	roaring "github.com/RoaringBitmap/roaring"
	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"

	"github.com/ZanzyTHEbar/snb-graphcore/index"
	"github.com/ZanzyTHEbar/snb-graphcore/ingest"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

func fixture() *ingest.FileIndexes {
	// 5 persons; tag "cinema" held by {0,1,2,3,4} forming one big component
	// (0-1-2-3-4 chain) all born after cutoff; tag "opera" held by {0,1,2}
	// forming a 3-chain, all born after cutoff.
	n := 5
	g := ingest.NewGraph(n)
	adj := map[int][]uint32{
		0: {1}, 1: {0, 2}, 2: {1, 3}, 3: {2, 4}, 4: {3},
	}
	for p := 0; p < n; p++ {
		g.Adjacency[p] = index.NewUint32List(adj[p])
		g.Weight[p] = make([]atomic.Uint32, len(adj[p]))
	}

	cinema := roaring.New()
	cinema.AddMany([]uint32{0, 1, 2, 3, 4})
	opera := roaring.New()
	opera.AddMany([]uint32{0, 1, 2})

	interests := &ingest.Interests{
		ByTag: map[model.TagID]*roaring.Bitmap{0: cinema, 1: opera},
	}

	birthdays := make([]model.Birthday, n)
	for i := range birthdays {
		birthdays[i] = model.PackBirthday(1990, 1, 1)
	}

	return &ingest.FileIndexes{
		Graph:     g,
		Interests: interests,
		Birthday:  birthdays,
		Tags:      []model.Tag{{ID: 0, Name: "cinema"}, {ID: 1, Name: "opera"}},
		InterestStats: []model.InterestStat{
			{Tag: 0, NumPersons: 5, MaxBirthday: model.PackBirthday(1990, 1, 1)},
			{Tag: 1, NumPersons: 3, MaxBirthday: model.PackBirthday(1990, 1, 1)},
		},
	}
}

func TestRunOrdersByComponentSizeDescending(t *testing.T) {
	idx := fixture()
	names := Run(idx, 2, model.PackBirthday(1980, 1, 1))
	assert.Equal(t, []string{"cinema", "opera"}, names)
}

func TestRunSkipsTagsBelowBirthdayCutoff(t *testing.T) {
	idx := fixture()
	idx.InterestStats[1].MaxBirthday = model.PackBirthday(1970, 1, 1)
	names := Run(idx, 2, model.PackBirthday(1980, 1, 1))
	assert.Equal(t, []string{"cinema"}, names)
}

func TestRunReturnsFewerThanKWhenNotEnoughTagsQualify(t *testing.T) {
	idx := fixture()
	names := Run(idx, 5, model.PackBirthday(1980, 1, 1))
	assert.Len(t, names, 2)
}
