// Package ingest implements component C: the parallel CSV-to-index build
// pipeline for every relation named in spec.md §6, plus the streaming
// comment-reply-graph builder and the place-bounds DFS.
package ingest

import (
	"context"
	"sync"

	"github.com/ZanzyTHEbar/snb-graphcore/ingest/tokenizer"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/multierr"
)

// Parallel runs worker once per chunk, fanning out over
// github.com/sourcegraph/conc/pool, which catches a worker panic and
// re-raises it from Wait in the calling goroutine rather than letting it
// crash a bare worker goroutine (spec.md §5's "failures are fatal" still
// holds). Unlike a first-error-wins pool, every chunk keeps
// running and every failure is folded together with multierr, so a
// malformed data directory reports every bad chunk in one fatal diagnostic
// instead of whichever happened to lose the race.
func Parallel(ctx context.Context, chunks []tokenizer.Chunk, worker func(ctx context.Context, shard int, c tokenizer.Chunk) error) error {
	p := pool.New().WithContext(ctx)
	var mu sync.Mutex
	var combined error
	for i, c := range chunks {
		i, c := i, c
		p.Go(func(ctx context.Context) error {
			if err := worker(ctx, i, c); err != nil {
				mu.Lock()
				combined = multierr.Append(combined, err)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}
	return combined
}
