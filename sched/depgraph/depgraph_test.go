package depgraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphRunsInDependencyOrder(t *testing.T) {
	g := New()
	var order []NodeID
	record := func(id NodeID) func() {
		return func() {
			order = append(order, id)
			g.Complete(id)
		}
	}
	g.SetRun(IngestPersons, record(IngestPersons))
	g.SetRun(DispatchQ1, record(DispatchQ1))
	g.SetRun(Validate, record(Validate))
	g.SetRun(Finish, record(Finish))

	g.AddEdge(IngestPersons, DispatchQ1)
	g.AddEdge(DispatchQ1, Validate)
	g.AddEdge(Validate, Finish)

	g.Start()

	assert.Equal(t, []NodeID{IngestPersons, DispatchQ1, Validate, Finish}, order)
}

func TestGraphNodeFiresOnceWithMultiplePredecessors(t *testing.T) {
	g := New()
	fireCount := 0
	g.SetRun(Validate, func() {
		fireCount++
		g.Complete(Validate)
	})
	g.AddEdge(DispatchQ1, Validate)
	g.AddEdge(DispatchQ2, Validate)
	g.AddEdge(DispatchQ3, Validate)

	g.SetRun(DispatchQ1, func() { g.Complete(DispatchQ1) })
	g.SetRun(DispatchQ2, func() { g.Complete(DispatchQ2) })
	g.SetRun(DispatchQ3, func() { g.Complete(DispatchQ3) })

	g.Start()

	assert.Equal(t, 1, fireCount)
}

func TestEraseUnusedEdgesUnblocksSuccessor(t *testing.T) {
	g := New()
	var ran bool
	g.SetRun(Finish, func() { ran = true })
	g.AddEdge(DispatchQ1, Finish)
	g.AddEdge(DispatchQ3, Finish) // Q3 has no batches this run

	g.EraseUnusedEdges([]NodeID{DispatchQ3})

	g.SetRun(DispatchQ1, func() { g.Complete(DispatchQ1) })
	g.Start()

	assert.True(t, ran)
}
