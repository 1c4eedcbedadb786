package sched

import "go.uber.org/atomic"

// Group submits a batch of tasks at a single priority and runs a join
// callback once every member has completed, matching the task-group join
// semantics of spec.md §4.D. The last member to finish executes join
// inline on the scheduler worker that completed it, avoiding an extra
// dispatch round.
type Group struct {
	s        *Scheduler
	kind     Kind
	priority Priority
	pending  atomic.Int64
	join     func()
}

// NewGroup creates an empty group; Add queues member work, Finish arms the
// join callback.
func NewGroup(s *Scheduler, kind Kind, priority Priority) *Group {
	return &Group{s: s, kind: kind, priority: priority}
}

// Add submits fn as a group member.
func (g *Group) Add(fn func()) {
	g.pending.Inc()
	g.s.Submit(g.kind, g.priority, func() {
		fn()
		if g.pending.Dec() == 0 {
			if j := g.join; j != nil {
				j()
			}
		}
	})
}

// Finish arms join. If every member has already completed by the time
// Finish is called (n==0 group), join runs immediately.
func (g *Group) Finish(join func()) {
	g.join = join
	if g.pending.Load() == 0 {
		join()
	}
}
