package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/atomic"
)

func TestGroupJoinRunsAfterAllMembers(t *testing.T) {
	s := New(4)
	defer s.Close()

	var sum atomic.Int64
	joined := make(chan struct{})
	g := NewGroup(s, CPU, Normal)
	for i := 1; i <= 10; i++ {
		i := i
		g.Add(func() { sum.Add(int64(i)) })
	}
	g.Finish(func() { close(joined) })
	<-joined
	assert.EqualValues(t, 55, sum.Load())
}

func TestGroupFinishWithNoMembersRunsImmediately(t *testing.T) {
	s := New(1)
	defer s.Close()

	g := NewGroup(s, IO, Normal)
	ran := false
	g.Finish(func() { ran = true })
	assert.True(t, ran)
}
