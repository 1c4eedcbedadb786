package query

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/snb-graphcore/config"
	"github.com/ZanzyTHEbar/snb-graphcore/engine/q1"
	"github.com/ZanzyTHEbar/snb-graphcore/engine/q2"
	"github.com/ZanzyTHEbar/snb-graphcore/engine/q3"
	"github.com/ZanzyTHEbar/snb-graphcore/engine/q4"
	"github.com/ZanzyTHEbar/snb-graphcore/ingest"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
)

// Runner is a query executor recycled through runnerPool (a sync.Pool, so
// reuse is per pool, not guaranteed per goroutine). It holds only the
// FileIndexes and Config it is bound to; the engines in engine/q1..q4
// allocate their BFS state per call, not on the runner.
type Runner struct {
	idx *ingest.FileIndexes
	cfg *config.Config
}

var runnerPool = sync.Pool{}

// AcquireRunner returns a Runner bound to idx/cfg, reusing a pooled
// instance when available.
func AcquireRunner(idx *ingest.FileIndexes, cfg *config.Config) *Runner {
	if v := runnerPool.Get(); v != nil {
		r := v.(*Runner)
		r.idx, r.cfg = idx, cfg
		return r
	}
	return &Runner{idx: idx, cfg: cfg}
}

// Release returns r to the pool for reuse by the next batch on this
// worker.
func (r *Runner) Release() {
	runnerPool.Put(r)
}

// Dispatch runs e against the bound indices and stores its formatted
// result on e.Result, per spec.md §6's answer/output format.
func (r *Runner) Dispatch(e *Entry) {
	if e.Ignore {
		return
	}
	var (
		result string
		err    error
	)
	switch e.Kind {
	case Q1:
		result, err = r.runQ1(e.Args)
	case Q2:
		result, err = r.runQ2(e.Args)
	case Q3:
		result, err = r.runQ3(e.Args)
	case Q4:
		result, err = r.runQ4(e.Args)
	default:
		err = fmt.Errorf("query: unrecognised query id %q", byte(e.Kind))
	}
	if err != nil {
		e.Result = ""
		return
	}
	e.Result = result
}

func (r *Runner) runQ1(args []string) (string, error) {
	if len(args) != 3 {
		return "", fmt.Errorf("query1 expects 3 args, got %d", len(args))
	}
	p1raw, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		return "", err
	}
	p2raw, err := strconv.ParseUint(args[1], 10, 64)
	if err != nil {
		return "", err
	}
	n, err := strconv.ParseInt(args[2], 10, 64)
	if err != nil {
		return "", err
	}
	source, ok := r.idx.Persons.Lookup(p1raw)
	if !ok {
		return "-1", nil
	}
	target, ok := r.idx.Persons.Lookup(p2raw)
	if !ok {
		return "-1", nil
	}
	hops := q1.Run(r.idx, source, target, n)
	return strconv.Itoa(hops), nil
}

func (r *Runner) runQ2(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("query2 expects 2 args, got %d", len(args))
	}
	k, err := strconv.Atoi(args[0])
	if err != nil {
		return "", err
	}
	cutoff, err := parseDate(args[1])
	if err != nil {
		return "", err
	}
	names := q2.Run(r.idx, k, cutoff)
	return strings.Join(names, " "), nil
}

func (r *Runner) runQ3(args []string) (string, error) {
	if len(args) != 3 {
		return "", fmt.Errorf("query3 expects 3 args, got %d", len(args))
	}
	k, err := strconv.Atoi(args[0])
	if err != nil {
		return "", err
	}
	hops, err := strconv.Atoi(args[1])
	if err != nil {
		return "", err
	}
	pairs := q3.Run(r.idx, k, hops, args[2])
	return strings.Join(pairs, " "), nil
}

func (r *Runner) runQ4(args []string) (string, error) {
	if len(args) != 2 {
		return "", fmt.Errorf("query4 expects 2 args, got %d", len(args))
	}
	k, err := strconv.Atoi(args[0])
	if err != nil {
		return "", err
	}
	ids := q4.Run(r.idx, k, args[1], r.cfg)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(id, 10)
	}
	return strings.Join(parts, " "), nil
}

// parseDate parses a YYYY-MM-DD literal into a packed Birthday without
// pulling in time.Parse's calendar validation, matching the tokenizer's
// fixed-width date reader used on the ingest path.
func parseDate(s string) (model.Birthday, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, fmt.Errorf("query: malformed date %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, err
	}
	return model.PackBirthday(year, month, day), nil
}
