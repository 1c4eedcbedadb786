package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/snb-graphcore/model"
	"github.com/ZanzyTHEbar/snb-graphcore/sched"
	"github.com/ZanzyTHEbar/snb-graphcore/sched/depgraph"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// PipelineSuite exercises the ingest half of the shared dependency graph:
// IngestPersons gates the four mapper-dependent stages, IngestKnows gates
// IngestReplyWeights, and the whole thing runs to completion as scheduled
// tasks instead of one synchronous call.
type PipelineSuite struct {
	suite.Suite
	dir string
}

func TestPipelineSuite(t *testing.T) {
	suite.Run(t, new(PipelineSuite))
}

func (s *PipelineSuite) SetupTest() {
	s.dir = s.T().TempDir()
}

func (s *PipelineSuite) write(name, content string) {
	require.NoError(s.T(), os.WriteFile(filepath.Join(s.dir, name), []byte(content), 0o644))
}

func (s *PipelineSuite) seedFullDataset() {
	s.write("person.csv", "id|firstName|lastName|gender|birthday|creationDate|locationIP|browserUsed\n"+
		"1|A|B|male|1990-01-02|x|y|z\n"+
		"2|C|D|female|1985-05-06|x|y|z\n")
	s.write("person_knows_person.csv", "Person1Id|Person2Id|creationDate\n1|2|x\n")
	s.write("comment_hasCreator_person.csv", "CommentId|PersonId\n10|1\n20|2\n")
	s.write("comment_replyOf_comment.csv", "CommentId|ReplyOfCommentId\n20|10\n")
	s.write("person_hasInterest_tag.csv", "PersonId|TagId\n1|0\n2|0\n")
	s.write("tag.csv", "id|name|url\n0|Go|u\n")
	s.write("place.csv", "id|name|url|type\n0|World|u|continent\n")
	s.write("place_isPartOf_place.csv", "PlaceId|PartOfPlaceId\n")
	s.write("organisation_isLocatedIn_place.csv", "OrganisationId|PlaceId\n")
	s.write("person_isLocatedIn_place.csv", "PersonId|PlaceId\n1|0\n2|0\n")
	s.write("person_studyAt_organisation.csv", "PersonId|OrganisationId|ClassYear\n")
	s.write("person_workAt_organisation.csv", "PersonId|OrganisationId|WorkFrom\n")
	s.write("forum_hasTag_tag.csv", "ForumId|TagId\n0|0\n")
	s.write("forum_hasMember_person.csv", "ForumId|PersonId|JoinDate\n0|1|x\n0|2|x\n")
}

func (s *PipelineSuite) TestPipelineBuildsFullFileIndexes() {
	s.seedFullDataset()

	g := depgraph.New()
	sc := sched.New(2)
	defer sc.Close()

	usedTags := map[model.TagID]bool{0: true}
	p := NewPipeline(g, sc, s.dir, usedTags, nil)

	done := make(chan struct{})
	g.SetRun(depgraph.Validate, func() { g.Complete(depgraph.Validate) })
	g.AddEdge(depgraph.Validate, depgraph.Finish)
	for _, leaf := range []depgraph.NodeID{
		depgraph.IngestReplyWeights,
		depgraph.IngestInterests,
		depgraph.IngestPlaces,
		depgraph.IngestForums,
	} {
		g.AddEdge(leaf, depgraph.Validate)
	}
	g.SetRun(depgraph.Finish, func() {
		g.Complete(depgraph.Finish)
		close(done)
	})

	g.Start()
	<-done

	require.NoError(s.T(), p.Err())
	idx := p.Indexes()
	s.Equal(2, idx.Persons.N())
	s.NotNil(idx.Graph)
	s.NotNil(idx.Interests)
	s.Len(idx.Tags, 1)
	s.Len(idx.Places, 1)
	s.NotNil(idx.Forums)
	s.NotEmpty(idx.Forums.ForumMembers)

	w, ok := idx.Graph.WeightBetween(1, 0)
	s.True(ok)
	s.Equal(uint32(1), w, "the single reply in the fixture should have incremented the creator-pair weight once")
}

func (s *PipelineSuite) TestPipelinePropagatesIngestFailure() {
	s.seedFullDataset()
	os.Remove(filepath.Join(s.dir, "person_knows_person.csv"))

	g := depgraph.New()
	sc := sched.New(2)
	defer sc.Close()

	p := NewPipeline(g, sc, s.dir, nil, nil)

	done := make(chan struct{})
	g.SetRun(depgraph.Validate, func() { g.Complete(depgraph.Validate) })
	g.AddEdge(depgraph.Validate, depgraph.Finish)
	for _, leaf := range []depgraph.NodeID{
		depgraph.IngestReplyWeights,
		depgraph.IngestInterests,
		depgraph.IngestPlaces,
		depgraph.IngestForums,
	} {
		g.AddEdge(leaf, depgraph.Validate)
	}
	g.SetRun(depgraph.Finish, func() {
		g.Complete(depgraph.Finish)
		close(done)
	})

	g.Start()
	<-done

	require.Error(s.T(), p.Err())
}
