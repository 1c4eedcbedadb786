package query

import "fmt"

// ParamParser yields exactly one query, synthesised from the
// single-parameter CLI invocation `<exe> <dataDir> PARAM <queryNumber>
// <p1> [<p2> ...]` (spec.md §6). After the first call it reports
// exhaustion.
type ParamParser struct {
	kind   Kind
	args   []string
	raw    string
	served bool
}

func NewParamParser(queryNumber string, params []string) (*ParamParser, error) {
	if len(queryNumber) != 1 {
		return nil, fmt.Errorf("query: PARAM query number must be a single digit, got %q", queryNumber)
	}
	kind := Kind(queryNumber[0])
	switch kind {
	case Q1, Q2, Q3, Q4:
	default:
		return nil, fmt.Errorf("query: unrecognised query id %q", queryNumber)
	}
	return &ParamParser{kind: kind, args: params, raw: fmt.Sprintf("PARAM query%s(%v)", queryNumber, params)}, nil
}

func (p *ParamParser) Next() (Kind, []string, string, bool, error) {
	if p.served {
		return 0, nil, "", false, nil
	}
	p.served = true
	return p.kind, p.args, p.raw, true, nil
}
