// Package sched implements the two-queue priority scheduler of spec.md
// §4.D: I/O and CPU max-heaps, a fixed worker pool with I/O/CPU-preferring
// halves, and task groups with join semantics.
package sched

// Priority levels, larger wins (spec.md §4.D).
type Priority int

const (
	Low           Priority = 10
	Default       Priority = 11
	Normal        Priority = 30
	Urgent        Priority = 50
	Critical      Priority = 70
	HyperCritical Priority = 80
)

// Kind selects which of the two queues a task is submitted to.
type Kind int

const (
	IO Kind = iota
	CPU
)
