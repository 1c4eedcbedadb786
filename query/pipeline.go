package query

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/ZanzyTHEbar/snb-graphcore/config"
	"github.com/ZanzyTHEbar/snb-graphcore/ingest"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
	"github.com/ZanzyTHEbar/snb-graphcore/sched"
	"github.com/ZanzyTHEbar/snb-graphcore/sched/depgraph"
)

// kindNode maps a query Kind to its dispatch node in the fixed pipeline
// DAG (spec.md §4.E's "four per-query dispatch tasks").
var kindNode = map[Kind]depgraph.NodeID{
	Q1: depgraph.DispatchQ1,
	Q2: depgraph.DispatchQ2,
	Q3: depgraph.DispatchQ3,
	Q4: depgraph.DispatchQ4,
}

// ingestLeaves are the four Ingest* nodes with no ingest successors of
// their own; each gates every DispatchQ* node, so a query never dispatches
// against a partially built FileIndexes (depgraph's package doc: "ingest
// tasks feed the four query-dispatch nodes").
var ingestLeaves = []depgraph.NodeID{
	depgraph.IngestReplyWeights,
	depgraph.IngestInterests,
	depgraph.IngestPlaces,
	depgraph.IngestForums,
}

// Pipeline drives ingest and a Set of batched queries to completion on a
// single dependency graph: the six ingest nodes build a FileIndexes, each
// of the four leaf ingest nodes gates every dispatch node, one dispatch
// node per active query type submits a task group of runner tasks, and
// once every dispatch node's group has joined, the Validate node runs,
// then Finish prints results in original input order. The scheduler is
// left running; the caller closes it.
type Pipeline struct {
	set      *Set
	dataDir  string
	usedTags map[model.TagID]bool
	cfg      *config.Config
	s        *sched.Scheduler
	w        io.Writer

	mu  sync.Mutex
	all []*Entry
}

func NewPipeline(set *Set, dataDir string, usedTags map[model.TagID]bool, cfg *config.Config, s *sched.Scheduler, w io.Writer) *Pipeline {
	return &Pipeline{set: set, dataDir: dataDir, usedTags: usedTags, cfg: cfg, s: s, w: w}
}

// Run executes the pipeline to completion and returns any ingest failure
// or dispatch error encountered while printing (write errors are the only
// dispatch-side ones surfaced; individual query failures resolve to an
// empty result line per spec.md §7's fatal/non-fatal split — an
// unrecognised query id is caught earlier, at parse time).
func (p *Pipeline) Run() error {
	g := depgraph.New()
	ing := ingest.NewPipeline(g, p.s, p.dataDir, p.usedTags, p.cfg)

	var writeErr error
	g.SetRun(depgraph.Validate, func() { g.Complete(depgraph.Validate) })
	g.AddEdge(depgraph.Validate, depgraph.Finish)

	unused := make([]depgraph.NodeID, 0, 4)
	for kind, node := range kindNode {
		batches := p.set.Batches[kind]
		for _, leaf := range ingestLeaves {
			g.AddEdge(leaf, node)
		}
		g.AddEdge(node, depgraph.Validate)
		if len(batches) == 0 {
			unused = append(unused, node)
			continue
		}
		g.SetRun(node, func() {
			if ing.Err() != nil {
				g.Complete(node)
				return
			}
			p.dispatchKind(g, ing.Indexes(), node, batches)
		})
	}
	g.EraseUnusedEdges(unused)

	done := make(chan struct{})
	g.SetRun(depgraph.Finish, func() {
		if err := ing.Err(); err != nil {
			writeErr = err
		} else {
			writeErr = p.writeResults()
		}
		g.Complete(depgraph.Finish)
		close(done)
	})

	g.Start()
	<-done
	return writeErr
}

// dispatchKind submits one runner task per entry across every batch of
// kind, then signals the dependency graph once the whole group has
// joined.
func (p *Pipeline) dispatchKind(g *depgraph.Graph, idx *ingest.FileIndexes, node depgraph.NodeID, batches []*Batch) {
	priority := sched.Normal
	kindGroup := sched.NewGroup(p.s, sched.CPU, priority)
	for _, b := range batches {
		for _, e := range b.Entries {
			e := e
			kindGroup.Add(func() {
				r := AcquireRunner(idx, p.cfg)
				r.Dispatch(e)
				r.Release()
				p.collect(e)
			})
		}
	}
	kindGroup.Finish(func() { g.Complete(node) })
}

func (p *Pipeline) collect(e *Entry) {
	p.mu.Lock()
	p.all = append(p.all, e)
	p.mu.Unlock()
}

// writeResults prints every entry's result on its own line, ordered by
// original input position (spec.md §6: "printed on its own line in the
// same order as queries appeared in input").
func (p *Pipeline) writeResults() error {
	sort.Slice(p.all, func(i, j int) bool { return p.all[i].Order < p.all[j].Order })
	for _, e := range p.all {
		if _, err := fmt.Fprintln(p.w, e.Result); err != nil {
			return err
		}
	}
	return nil
}
