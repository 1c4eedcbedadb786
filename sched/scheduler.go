package sched

import (
	"sync"

	"github.com/ZanzyTHEbar/snb-graphcore/internal"
	"go.uber.org/atomic"
)

// Scheduler is the two-queue priority scheduler of spec.md §4.D: a single
// mutex+condition variable guards both queues; workers block when both are
// empty unless closeOnEmpty is set, in which case get_task returns nil and
// the worker exits.
type Scheduler struct {
	mu           sync.Mutex
	cond         *sync.Cond
	io           priorityQueue
	cpu          priorityQueue
	seq          int64
	closeOnEmpty bool

	wg      sync.WaitGroup
	started atomic.Bool
}

// New creates a scheduler with n workers, the first half preferring I/O
// tasks and the rest preferring CPU tasks (spec.md §4.D).
func New(n int) *Scheduler {
	if n <= 0 {
		n = 1
	}
	s := &Scheduler{}
	s.cond = sync.NewCond(&s.mu)
	s.spawnWorkers(n)
	return s
}

func (s *Scheduler) spawnWorkers(n int) {
	half := n / 2
	for i := 0; i < n; i++ {
		preferIO := i < half
		s.wg.Add(1)
		go s.workerLoop(preferIO)
	}
}

func (s *Scheduler) workerLoop(preferIO bool) {
	defer s.wg.Done()
	for {
		t := s.getTask(preferIO)
		if t == nil {
			return
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					internal.Fatalf("scheduler", "task panicked: %v", r)
				}
			}()
			t.Fn()
		}()
	}
}

// getTask returns the best task from the preferred queue, else from the
// other, blocking when both are empty unless closeOnEmpty is set.
func (s *Scheduler) getTask(preferIO bool) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		primary, secondary := &s.io, &s.cpu
		if !preferIO {
			primary, secondary = &s.cpu, &s.io
		}
		if t := primary.pop(); t != nil {
			return t
		}
		if t := secondary.pop(); t != nil {
			return t
		}
		if s.closeOnEmpty {
			return nil
		}
		s.cond.Wait()
	}
}

// Submit enqueues fn at priority on the given queue kind.
func (s *Scheduler) Submit(kind Kind, priority Priority, fn func()) {
	s.mu.Lock()
	s.seq++
	t := &Task{Fn: fn, Priority: priority, seq: s.seq}
	if kind == IO {
		s.io.push(t)
	} else {
		s.cpu.push(t)
	}
	s.mu.Unlock()
	s.cond.Broadcast()
}

// Close sets close_on_empty and wakes every worker; once both queues drain
// naturally, every worker exits. Close blocks until all workers have
// exited.
func (s *Scheduler) Close() {
	s.mu.Lock()
	s.closeOnEmpty = true
	s.mu.Unlock()
	s.cond.Broadcast()
	s.wg.Wait()
}
