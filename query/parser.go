package query

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/snb-graphcore/internal"
)

// Parser yields queries one at a time; FileParser and ParamParser are its
// two implementations (spec.md §6.2's "tagged union or trait" note,
// realized here as an interface rather than an inheritance hierarchy).
type Parser interface {
	// Next returns the next query's kind, parsed argument strings, and the
	// raw line/payload it was parsed from (used for payload-size
	// accounting). ok is false once the parser is exhausted.
	Next() (kind Kind, args []string, raw string, ok bool, err error)
}

// parseLine splits a "query<digit>(arg1, arg2, ...)" line into its kind
// and comma-separated arguments. The digit is read at the fixed byte
// offset spec.md §6 names, not by scanning for it.
func parseLine(line string) (Kind, []string, error) {
	if len(line) <= internal.QueryDigitOffset {
		return 0, nil, fmt.Errorf("query: line too short to contain a type digit: %q", line)
	}
	d := line[internal.QueryDigitOffset]
	kind := Kind(d)
	switch kind {
	case Q1, Q2, Q3, Q4:
	default:
		return 0, nil, fmt.Errorf("query: unrecognised query id %q", string(d))
	}

	open := strings.IndexByte(line, '(')
	closeI := strings.LastIndexByte(line, ')')
	if open < 0 || closeI < open {
		return 0, nil, fmt.Errorf("query: malformed argument list: %q", line)
	}
	inner := line[open+1 : closeI]
	if strings.TrimSpace(inner) == "" {
		return kind, nil, nil
	}
	parts := strings.Split(inner, ",")
	args := make([]string, len(parts))
	for i, p := range parts {
		args[i] = strings.TrimSpace(p)
	}
	return kind, args, nil
}
