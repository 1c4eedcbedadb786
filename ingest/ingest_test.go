package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/snb-graphcore/index"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/atomic"
)

type IngestSuite struct {
	suite.Suite
	dir string
}

func TestIngestSuite(t *testing.T) {
	suite.Run(t, new(IngestSuite))
}

func (s *IngestSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *IngestSuite) write(name, content string) string {
	path := filepath.Join(s.dir, name)
	require.NoError(s.T(), os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *IngestSuite) TestBuildPersonsOrderPreserving() {
	path := s.write("person.csv", "id|firstName|lastName|gender|birthday|creationDate|locationIP|browserUsed\n"+
		"300|A|B|male|1990-01-02|x|y|z\n"+
		"100|C|D|female|1985-05-06|x|y|z\n")
	mapper, birthdays, err := BuildPersons(path)
	require.NoError(s.T(), err)
	s.Equal(2, mapper.N())
	id0, ok := mapper.Lookup(300)
	s.True(ok)
	s.Equal(model.PersonID(0), id0)
	id1, ok := mapper.Lookup(100)
	s.True(ok)
	s.Equal(model.PersonID(1), id1)
	s.Equal(1990, birthdays[0].Year())
	s.Equal(1985, birthdays[1].Year())
}

func (s *IngestSuite) TestBuildKnowsSymmetric() {
	mapper := model.NewPersonMapper(2)
	mapper.Densify(1)
	mapper.Densify(2)
	path := s.write("person_knows_person.csv", "Person1Id|Person2Id|creationDate\n1|2|x\n")
	g, err := BuildKnows(path, mapper)
	require.NoError(s.T(), err)
	s.True(g.Adjacency[0].Contains(1))
	s.True(g.Adjacency[1].Contains(0))
}

func (s *IngestSuite) TestBuildInterestsSortedDedup() {
	mapper := model.NewPersonMapper(1)
	mapper.Densify(1)
	path := s.write("person_hasInterest_tag.csv", "PersonId|TagId\n1|5\n1|2\n1|2\n")
	in, err := BuildInterests(path, mapper)
	require.NoError(s.T(), err)
	s.Equal([]uint32{2, 5}, in.ByPerson[0].Items)
}

func (s *IngestSuite) TestPlaceBoundsContainment() {
	placePath := s.write("place.csv", "id|name|url|type\n0|World|u|continent\n1|Asia|u|continent\n2|China|u|country\n")
	partOfPath := s.write("place_isPartOf_place.csv", "PlaceId|PartOfPlaceId\n1|0\n2|1\n")
	places, names, err := BuildPlaces(placePath, partOfPath)
	require.NoError(s.T(), err)
	ids, ok := names.Lookup("China")
	require.True(s.T(), ok)
	china := places[ids[0]]
	world := places[0]
	asia := places[1]
	s.True(world.Contains(china))
	s.True(asia.Contains(china))
	s.False(china.Contains(asia))
}

func (s *IngestSuite) TestGraphAddReplyWeightSaturates() {
	mapper := model.NewPersonMapper(2)
	pu := mapper.Densify(1)
	pv := mapper.Densify(2)
	g := NewGraph(2)
	g.Adjacency[pu] = index.NewUint32List([]uint32{uint32(pv)})
	g.Weight[pu] = make([]atomic.Uint32, 1)
	g.Adjacency[pv] = index.NewUint32List([]uint32{uint32(pu)})
	g.Weight[pv] = make([]atomic.Uint32, 1)

	for i := 0; i < 300; i++ {
		g.AddReplyWeight(pu, pv)
	}
	w, ok := g.WeightBetween(pu, pv)
	s.True(ok)
	s.Equal(uint32(255), w)

	_, ok = g.WeightBetween(pv, pu)
	s.True(ok)
	wOther, _ := g.WeightBetween(pv, pu)
	s.Equal(uint32(0), wOther, "weight is directional: replies from u to v must not affect v->u")
}
