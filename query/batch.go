package query

const payloadLimit = 4096 // bytes, spec.md §4.F

// perTypeLimit is the maximum entry count per batch, keyed by Kind.
var perTypeLimit = map[Kind]int{Q1: 200, Q2: 1, Q3: 1, Q4: 1}

// Batch groups up to perTypeLimit[Kind] entries of the same kind whose
// combined argument payload stays under payloadLimit bytes.
type Batch struct {
	Kind    Kind
	Entries []*Entry
	payload int
}

func newBatch(kind Kind) *Batch {
	return &Batch{Kind: kind}
}

// full reports whether adding an entry of the given payload size would
// exceed either the per-type count limit or the 4 KiB payload budget.
func (b *Batch) full(nextPayload int) bool {
	if len(b.Entries) >= perTypeLimit[b.Kind] {
		return true
	}
	return b.payload+nextPayload > payloadLimit
}

func (b *Batch) add(e *Entry, payload int) {
	b.Entries = append(b.Entries, e)
	b.payload += payload
}

// Set is the fully batched query file: one slice of batches per query
// type, plus the set of tag names referenced by any Q4 query (used for
// used-tag pre-selection, spec.md §4.F).
type Set struct {
	Batches  map[Kind][]*Batch
	UsedTags map[string]bool
	Total    int
}

func newSet() *Set {
	return &Set{
		Batches:  make(map[Kind][]*Batch),
		UsedTags: make(map[string]bool),
	}
}

// Batcher consumes a Parser and produces a Set, preserving input order via
// each Entry's Order field so the pipeline can print results back in the
// order queries were read.
type Batcher struct {
	set     *Set
	current map[Kind]*Batch
	order   int
}

func NewBatcher() *Batcher {
	return &Batcher{
		set:     newSet(),
		current: make(map[Kind]*Batch),
	}
}

// Consume reads every query the parser yields and returns the finished
// Set. p.Next returning ok=false with a nil error signals a clean EOF.
func (b *Batcher) Consume(p Parser) (*Set, error) {
	for {
		kind, args, raw, ok, err := p.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		b.push(kind, args, len(raw))
		if kind == Q4 && len(args) >= 1 {
			b.set.UsedTags[args[len(args)-1]] = true
		}
	}
	b.flushAll()
	return b.set, nil
}

func (b *Batcher) push(kind Kind, args []string, payload int) {
	e := &Entry{Kind: kind, Args: args, Order: b.order}
	b.order++
	b.set.Total++

	cur := b.current[kind]
	if cur == nil {
		cur = newBatch(kind)
		b.current[kind] = cur
	}
	if cur.full(payload) {
		b.set.Batches[kind] = append(b.set.Batches[kind], cur)
		cur = newBatch(kind)
		b.current[kind] = cur
	}
	cur.add(e, payload)
}

func (b *Batcher) flushAll() {
	for kind, cur := range b.current {
		if cur != nil && len(cur.Entries) > 0 {
			b.set.Batches[kind] = append(b.set.Batches[kind], cur)
		}
	}
}
