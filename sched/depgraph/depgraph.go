// Package depgraph implements the fixed dependency DAG of spec.md §4.D
// that sequences ingest, per-query dispatch, validation, and pipeline
// completion: ingest tasks feed the four query-dispatch nodes, which feed
// a validate node, which feeds Finish. Each node tracks outstanding
// predecessors with an atomic counter and fires exactly once, guarded by
// a compare-and-swap flag so a node with multiple completing predecessors
// is never submitted twice.
package depgraph

import (
	"go.uber.org/atomic"
)

// NodeID names one of the fixed nodes in the pipeline DAG.
type NodeID int

const (
	IngestPersons NodeID = iota
	IngestKnows
	IngestInterests
	IngestPlaces
	IngestForums
	IngestReplyWeights
	DispatchQ1
	DispatchQ2
	DispatchQ3
	DispatchQ4
	Validate
	Finish
	nodeCount
)

// node is one DAG vertex: a run function, a count of unresolved
// predecessors, an already-triggered guard, and the list of successors to
// notify on completion.
type node struct {
	run       func()
	pending   atomic.Int32
	triggered atomic.Bool
	out       []NodeID
}

// Graph is the fixed pipeline DAG. Edges are declared with AddEdge before
// Start; Start and Complete drive the graph to completion by having each node's
// completion decrement its successors' pending counts and submit any
// successor that reaches zero.
type Graph struct {
	nodes [nodeCount]*node
}

// New creates an empty graph. A node with no run function does nothing
// when fired and never calls Complete, so its successors stay blocked
// unless EraseUnusedEdges releases them.
func New() *Graph {
	g := &Graph{}
	for i := range g.nodes {
		g.nodes[i] = &node{}
	}
	return g
}

// SetRun assigns the work function executed when id's predecessors have
// all completed.
func (g *Graph) SetRun(id NodeID, run func()) {
	g.nodes[id].run = run
}

// AddEdge declares that to depends on from: from must complete before to
// becomes eligible to run.
func (g *Graph) AddEdge(from, to NodeID) {
	g.nodes[from].out = append(g.nodes[from].out, to)
	g.nodes[to].pending.Inc()
}

// Start submits every node with zero predecessors.
func (g *Graph) Start() {
	for id := range g.nodes {
		if g.nodes[id].pending.Load() == 0 {
			g.fire(NodeID(id))
		}
	}
}

// Complete is called by a node's run function (or by its caller) once the
// node's own work has finished; it propagates readiness to successors.
func (g *Graph) Complete(id NodeID) {
	for _, succ := range g.nodes[id].out {
		if g.nodes[succ].pending.Dec() == 0 {
			g.fire(succ)
		}
	}
}

func (g *Graph) fire(id NodeID) {
	n := g.nodes[id]
	if !n.triggered.CompareAndSwap(false, true) {
		return
	}
	if n.run != nil {
		n.run()
	}
}

// EraseUnusedEdges prunes the outgoing edges of nodes that will never run
// (used when a query type has no batches to dispatch, e.g. no Q3 queries
// in the input file): each named node's successors have their pending
// count decremented as if that node had already completed, and the node's
// own out list is cleared so a later Complete on it (which never comes,
// since it is never fired) is not needed to unblock them.
func (g *Graph) EraseUnusedEdges(unused []NodeID) {
	for _, id := range unused {
		n := g.nodes[id]
		for _, succ := range n.out {
			if g.nodes[succ].pending.Dec() == 0 {
				g.fire(succ)
			}
		}
		n.out = nil
	}
}
