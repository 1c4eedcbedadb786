// Command graphcore is the CLI entry point of the query engine: it loads a
// data directory into in-memory indices, runs a query file or a single
// PARAM query against them, and prints results in input order.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/ZanzyTHEbar/snb-graphcore/config"
	"github.com/ZanzyTHEbar/snb-graphcore/diag"
	"github.com/ZanzyTHEbar/snb-graphcore/ingest"
	"github.com/ZanzyTHEbar/snb-graphcore/internal"
	"github.com/ZanzyTHEbar/snb-graphcore/model"
	"github.com/ZanzyTHEbar/snb-graphcore/query"
	"github.com/ZanzyTHEbar/snb-graphcore/sched"
)

func main() {
	var (
		workers    int
		configPath string
		diagPath   string
		like       string
	)
	pflag.IntVar(&workers, "workers", 0, "override scheduler worker count")
	pflag.StringVar(&configPath, "config", "", "path to a YAML tunables file")
	pflag.StringVar(&diagPath, "diag", "", "optional path to the run-diagnostics store")
	pflag.StringVar(&like, "like", "", "prefix for the places/tags diagnostic subcommands")
	pflag.Parse()

	args := pflag.Args()
	if len(args) < 2 {
		internal.Fatalf("cli", "usage: graphcore <dataDir> FILE <queryFile> | graphcore <dataDir> PARAM <n> <args...> | graphcore <dataDir> places|tags --like=PREFIX")
	}
	dataDir, mode := args[0], args[1]

	cfg, err := config.Load(configPath)
	if err != nil {
		internal.Fatalf("config", "load: %v", err)
	}
	if workers > 0 {
		cfg.Scheduler.Workers = workers
	}

	switch mode {
	case "places", "tags":
		runDiagnosticLookup(dataDir, mode, like)
		return
	case "FILE", "PARAM":
		runQueries(dataDir, mode, args[2:], cfg, diagPath)
	default:
		internal.Fatalf("cli", "unrecognised mode %q", mode)
	}
}

func runDiagnosticLookup(dataDir, kind, like string) {
	var (
		names *model.NameIndex
		err   error
	)
	switch kind {
	case "places":
		_, names, err = ingest.BuildPlaces(dataDir+"/place.csv", dataDir+"/place_isPartOf_place.csv")
	case "tags":
		_, names, err = ingest.BuildTags(dataDir + "/tag.csv")
	}
	if err != nil {
		internal.Fatalf(kind+".csv", "load: %v", err)
	}
	names.WalkPrefix(like, func(name string, ids []uint32) bool {
		fmt.Printf("%s\t%v\n", name, ids)
		return false
	})
}

func runQueries(dataDir, mode string, rest []string, cfg *config.Config, diagPath string) {
	var (
		set *query.Set
		err error
	)
	b := query.NewBatcher()
	switch mode {
	case "FILE":
		if len(rest) != 1 {
			internal.Fatalf("cli", "FILE mode expects exactly one query-file argument")
		}
		f, openErr := os.Open(rest[0])
		if openErr != nil {
			internal.Fatalf(rest[0], "open: %v", openErr)
		}
		defer f.Close()
		set, err = b.Consume(query.NewFileParser(f))
	case "PARAM":
		if len(rest) < 2 {
			internal.Fatalf("cli", "PARAM mode expects a query number and at least one argument")
		}
		p, perr := query.NewParamParser(rest[0], rest[1:])
		if perr != nil {
			internal.Fatalf("cli", "%v", perr)
		}
		set, err = b.Consume(p)
	}
	if err != nil {
		internal.Fatalf("query parse", "%v", err)
	}

	usedTagIDs := resolveUsedTags(dataDir, set.UsedTags)

	var store *diag.Store
	if diagPath != "" {
		var openErr error
		store, openErr = diag.Open(diagPath)
		if openErr != nil {
			internal.Fatalf(diagPath, "diag open: %v", openErr)
		}
		defer store.Close()
	}

	s := sched.New(cfg.Scheduler.Workers)
	start := time.Now()
	if err := query.NewPipeline(set, dataDir, usedTagIDs, cfg, s, os.Stdout).Run(); err != nil {
		internal.Fatalf("pipeline", "%v", err)
	}
	s.Close()
	elapsed := time.Since(start)

	if store != nil {
		invocation := mode
		if mode == "FILE" {
			invocation = rest[0]
		}
		count := func(k query.Kind) int {
			n := 0
			for _, b := range set.Batches[k] {
				n += len(b.Entries)
			}
			return n
		}
		_, _ = store.Record(diag.Run{
			Invocation: invocation,
			Q1Count:    count(query.Q1),
			Q2Count:    count(query.Q2),
			Q3Count:    count(query.Q3),
			Q4Count:    count(query.Q4),
			Duration:   elapsed,
		})
	}
}

// resolveUsedTags reads tag.csv once, ahead of the full ingest pass, to
// translate the Q4 tag names the batcher collected into TagIDs so the
// ingest pipeline's IngestForums stage can restrict TagInForums/HasMember
// construction to them (spec.md §3's used_tags restriction runs before the
// indices it restricts exist, so their name->id mapping is built twice:
// once here, cheaply, and once inside IngestInterests' own BuildTags call).
func resolveUsedTags(dataDir string, names map[string]bool) map[model.TagID]bool {
	out := make(map[model.TagID]bool, len(names))
	if len(names) == 0 {
		return out
	}
	_, tagNames, err := ingest.BuildTags(dataDir + "/tag.csv")
	if err != nil {
		internal.Fatalf("tag.csv", "resolve used tags: %v", err)
	}
	for name := range names {
		if ids, ok := tagNames.Lookup(name); ok {
			for _, id := range ids {
				out[model.TagID(id)] = true
			}
		}
	}
	return out
}
