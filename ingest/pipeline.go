package ingest

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/ZanzyTHEbar/snb-graphcore/config"
	"github.com/ZanzyTHEbar/snb-graphcore/internal"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
	"github.com/ZanzyTHEbar/snb-graphcore/sched"
	"github.com/ZanzyTHEbar/snb-graphcore/sched/depgraph"
)

// Pipeline builds a FileIndexes as a set of scheduled tasks wired into the
// shared dependency graph's six Ingest* nodes, instead of a single
// synchronous call: IngestPersons runs first, since every other relation
// keys off PersonMapper; IngestKnows, IngestInterests, IngestPlaces and
// IngestForums then fan out concurrently once the mapper exists;
// IngestReplyWeights waits on IngestKnows for the adjacency it annotates.
// The four ingest nodes with no ingest successors of their own
// (IngestReplyWeights, IngestInterests, IngestPlaces, IngestForums) are
// wired by the caller as predecessors of every DispatchQ* node, so query
// execution never starts against a partially built FileIndexes.
type Pipeline struct {
	dataDir  string
	usedTags map[model.TagID]bool
	cfg      *config.Config
	s        *sched.Scheduler
	g        *depgraph.Graph

	mu  sync.Mutex
	err error

	mapper    *model.PersonMapper
	birthdays []model.Birthday
	graph     *Graph

	idx FileIndexes
}

// NewPipeline wires its six ingest nodes into g and returns a Pipeline;
// callers add edges from
// depgraph.IngestReplyWeights/IngestInterests/IngestPlaces/IngestForums to
// their own downstream nodes before calling g.Start, which fires the root
// node IngestPersons.
func NewPipeline(g *depgraph.Graph, s *sched.Scheduler, dataDir string, usedTags map[model.TagID]bool, cfg *config.Config) *Pipeline {
	p := &Pipeline{dataDir: dataDir, usedTags: usedTags, cfg: cfg, s: s, g: g}

	g.AddEdge(depgraph.IngestPersons, depgraph.IngestKnows)
	g.AddEdge(depgraph.IngestPersons, depgraph.IngestInterests)
	g.AddEdge(depgraph.IngestPersons, depgraph.IngestPlaces)
	g.AddEdge(depgraph.IngestPersons, depgraph.IngestForums)
	g.AddEdge(depgraph.IngestKnows, depgraph.IngestReplyWeights)

	g.SetRun(depgraph.IngestPersons, func() { p.runStage(depgraph.IngestPersons, p.buildPersons) })
	g.SetRun(depgraph.IngestKnows, func() { p.runStage(depgraph.IngestKnows, p.buildKnows) })
	g.SetRun(depgraph.IngestInterests, func() { p.runStage(depgraph.IngestInterests, p.buildInterests) })
	g.SetRun(depgraph.IngestPlaces, func() { p.runStage(depgraph.IngestPlaces, p.buildPlaces) })
	g.SetRun(depgraph.IngestForums, func() { p.runStage(depgraph.IngestForums, p.buildForums) })
	g.SetRun(depgraph.IngestReplyWeights, func() { p.runStage(depgraph.IngestReplyWeights, p.buildReplyWeights) })

	return p
}

func (p *Pipeline) path(name string) string { return filepath.Join(p.dataDir, name) }

// runStage submits fn as an IO-priority task and completes id on the
// scheduler once it returns; a stage that observes an earlier failure
// (p.err already set) skips its own work but still completes id, so the
// graph still drains to Finish instead of deadlocking on the failure.
func (p *Pipeline) runStage(id depgraph.NodeID, fn func() error) {
	p.s.Submit(sched.IO, sched.Normal, func() {
		if p.failed() {
			p.g.Complete(id)
			return
		}
		if err := fn(); err != nil {
			p.fail(err)
		}
		p.g.Complete(id)
	})
}

func (p *Pipeline) fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err == nil {
		p.err = err
	}
}

func (p *Pipeline) failed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err != nil
}

// Err returns the first ingest failure observed, if any. It is only safe
// to call once Finish has run.
func (p *Pipeline) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Indexes returns the FileIndexes built by the pipeline. It is only safe
// to call once Finish has run and Err returns nil.
func (p *Pipeline) Indexes() *FileIndexes {
	p.idx.Persons = p.mapper
	p.idx.Birthday = p.birthdays
	p.idx.Graph = p.graph
	p.idx.UsedTags = p.usedTags
	return &p.idx
}

func (p *Pipeline) buildPersons() error {
	mapper, birthdays, err := BuildPersons(p.path("person.csv"))
	if err != nil {
		return fmt.Errorf("person.csv: %w", err)
	}
	internal.Logger().Info().Int("persons", mapper.N()).Msg("person mapping built")
	p.mapper = mapper
	p.birthdays = birthdays
	return nil
}

func (p *Pipeline) buildKnows() error {
	graph, err := BuildKnows(p.path("person_knows_person.csv"), p.mapper)
	if err != nil {
		return fmt.Errorf("person_knows_person.csv: %w", err)
	}
	p.graph = graph
	return nil
}

func (p *Pipeline) buildReplyWeights() error {
	window := internal.DefaultReplyWindow
	if p.cfg != nil && p.cfg.Ingest.ReplyWindow > 0 {
		window = p.cfg.Ingest.ReplyWindow
	}
	if err := BuildCommentWeights(p.path("comment_hasCreator_person.csv"), p.path("comment_replyOf_comment.csv"), p.mapper, p.graph, window); err != nil {
		return fmt.Errorf("comment weight build: %w", err)
	}
	return nil
}

func (p *Pipeline) buildInterests() error {
	interests, err := BuildInterests(p.path("person_hasInterest_tag.csv"), p.mapper)
	if err != nil {
		return fmt.Errorf("person_hasInterest_tag.csv: %w", err)
	}
	tags, tagNames, err := BuildTags(p.path("tag.csv"))
	if err != nil {
		return fmt.Errorf("tag.csv: %w", err)
	}

	p.mu.Lock()
	p.idx.Interests = interests
	p.idx.Tags = tags
	p.idx.TagNames = tagNames
	p.idx.InterestStats = BuildInterestStats(interests, p.birthdays)
	p.mu.Unlock()
	return nil
}

func (p *Pipeline) buildPlaces() error {
	places, placeNames, err := BuildPlaces(p.path("place.csv"), p.path("place_isPartOf_place.csv"))
	if err != nil {
		return fmt.Errorf("place ingestion: %w", err)
	}
	orgPlaces, err := BuildOrganisationPlaces(p.path("organisation_isLocatedIn_place.csv"))
	if err != nil {
		return fmt.Errorf("organisation_isLocatedIn_place.csv: %w", err)
	}
	personPlaces, err := BuildPersonPlaces(p.path("person_isLocatedIn_place.csv"), p.path("person_studyAt_organisation.csv"), p.path("person_workAt_organisation.csv"), places, orgPlaces, p.mapper)
	if err != nil {
		return fmt.Errorf("person places: %w", err)
	}

	p.mu.Lock()
	p.idx.Places = places
	p.idx.PlaceNames = placeNames
	p.idx.PersonPlaces = personPlaces
	p.mu.Unlock()
	return nil
}

func (p *Pipeline) buildForums() error {
	forums, err := BuildForums(p.path("forum_hasTag_tag.csv"), p.path("forum_hasMember_person.csv"), p.usedTags, p.mapper)
	if err != nil {
		return fmt.Errorf("forum ingestion: %w", err)
	}
	p.mu.Lock()
	p.idx.Forums = forums
	p.mu.Unlock()
	return nil
}
