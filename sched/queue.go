package sched

import "container/heap"

// Task is a unit of work submitted to the scheduler.
type Task struct {
	Fn       func()
	Priority Priority
	seq      int64 // insertion order, for tie-break (earlier wins)
}

// taskHeap is a max-heap by (Priority desc, seq asc).
type taskHeap []*Task

func (h taskHeap) Len() int { return len(h) }
func (h taskHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority > h[j].Priority
	}
	return h[i].seq < h[j].seq
}
func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *taskHeap) Push(x interface{}) {
	*h = append(*h, x.(*Task))
}
func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// priorityQueue is a thin wrapper exposing Push/Pop without exporting the
// container/heap plumbing.
type priorityQueue struct {
	h taskHeap
}

func (q *priorityQueue) push(t *Task) { heap.Push(&q.h, t) }
func (q *priorityQueue) pop() *Task {
	if len(q.h) == 0 {
		return nil
	}
	return heap.Pop(&q.h).(*Task)
}
func (q *priorityQueue) empty() bool { return len(q.h) == 0 }
