package ingest

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/ZanzyTHEbar/snb-graphcore/ingest/tokenizer"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// person_hasInterest_tag.csv layout: PersonId|TagId. Sorted-grouping build
// mode: each shard buffers (person, tag) pairs, and the join sorts each
// person's tag list ascending and deduplicates it (spec.md §3 invariant 2).
func BuildInterests(path string, mapper *model.PersonMapper) (*Interests, error) {
	mf, err := tokenizer.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer mf.Close()

	body := skipHeader(mf.Data)
	chunks := tokenizer.Chunks(body, runtime.NumCPU())

	type pair struct {
		p model.PersonID
		t model.TagID
	}
	var mu sync.Mutex
	var all []pair

	err = Parallel(context.Background(), chunks, func(_ context.Context, _ int, c tokenizer.Chunk) error {
		var local []pair
		t := tokenizer.New(body[c.Start:c.End])
		for !t.Finished() {
			pid, tid, err := t.ConsumeTwoLongs(Delim, Delim)
			if err != nil {
				return fmt.Errorf("person_hasInterest_tag.csv: %w", err)
			}
			if err := t.SkipAfter('\n'); err != nil {
				t.Pos = len(t.Data)
			}
			p, ok := mapper.Lookup(uint64(pid))
			if !ok {
				return fmt.Errorf("person_hasInterest_tag.csv: unknown person id %d", pid)
			}
			local = append(local, pair{p: p, t: model.TagID(tid)})
		}
		mu.Lock()
		all = append(all, local...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	in := NewInterests(mapper.N())
	for _, pr := range all {
		in.add(pr.p, pr.t)
	}
	return in, nil
}
