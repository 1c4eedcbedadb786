// Package query implements the fixed-format query batcher and result
// pipeline of spec.md §4.F/§4.K: queries are parsed in input order into
// per-type batches, dispatched onto the scheduler, and their results
// printed back in the original order.
package query

// Kind identifies one of the four fixed query types by its digit id.
type Kind byte

const (
	Q1 Kind = '1'
	Q2 Kind = '2'
	Q3 Kind = '3'
	Q4 Kind = '4'
)

// Entry is one parsed query: its raw argument payload, an ignore flag
// (an entry with it set is skipped at dispatch; the batcher itself never
// sets it), the resolved result string, and the entry's
// position in the original input for final ordered output.
type Entry struct {
	Kind   Kind
	Args   []string
	Ignore bool
	Result string
	Order  int
}
