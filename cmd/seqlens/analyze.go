package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/dkrasn/seqlens/internal/analysis"
	"github.com/dkrasn/seqlens/internal/fasta"
	"github.com/dkrasn/seqlens/internal/fetch"
	"github.com/dkrasn/seqlens/internal/output"
	"github.com/dkrasn/seqlens/internal/resultcache"
	"github.com/dkrasn/seqlens/internal/seq"
	"github.com/dkrasn/seqlens/internal/store"
)

func runAnalyze(args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)

	var (
		seqLiteral       string
		accession        string
		ops              string
		k                int
		frame            int
		stopAtFirstStop  bool
		excludeAmbiguous bool
		unit             string
		motif            string
		caseSensitive    bool
		window           int
		step             int
		outputFormat     string
		outputFile       string
		storePath        string
		workers          int
		strict           bool
		verbose          bool
	)

	fs.StringVar(&seqLiteral, "seq", "", "Literal sequence to analyze")
	fs.StringVar(&accession, "accession", "", "Fetch sequence from NCBI by accession id")
	fs.StringVar(&ops, "ops", "composition", "Comma-separated operations: composition, gc_skew, kmer, codon_usage, translation, entropy, rolling_entropy, motif")
	fs.IntVar(&k, "k", 3, "K-mer length (kmer, entropy with unit=kmer)")
	fs.IntVar(&frame, "frame", 0, "Translation frame offset: 0, 1 or 2")
	fs.BoolVar(&stopAtFirstStop, "stop-at-first-stop", false, "Truncate translation before the first stop codon")
	fs.BoolVar(&excludeAmbiguous, "exclude-ambiguous", false, "Skip k-mer windows containing N")
	fs.StringVar(&unit, "unit", "base", "Entropy unit: base or kmer")
	fs.StringVar(&motif, "motif", "", "Motif to search for (motif operation)")
	fs.BoolVar(&caseSensitive, "case-sensitive", false, "Case-sensitive motif matching")
	fs.IntVar(&window, "window", 100, "Sliding window size (gc_skew, rolling_entropy)")
	fs.IntVar(&step, "step", 20, "Sliding window step (gc_skew, rolling_entropy)")
	fs.StringVar(&outputFormat, "f", "tab", "Output format: tab, json")
	fs.StringVar(&outputFormat, "output-format", "tab", "Output format: tab, json")
	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	fs.StringVar(&storePath, "store", "", "DuckDB file for persistent results (read-through)")
	fs.IntVar(&workers, "workers", 0, "Worker count for batch analysis (0 = NumCPU)")
	fs.BoolVar(&strict, "strict", viper.GetBool("analysis.strict"), "Reject symbols outside ACGTN instead of coercing to N")
	fs.BoolVar(&verbose, "verbose", false, "Log analysis warnings to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Analyze nucleotide sequences.

Usage:
  seqlens analyze [options] [<fasta-file>]

Input is one of: --seq, --accession, or a FASTA file argument ('-' for stdin).

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  seqlens analyze --seq ATGAAATAG --ops translation --frame 0
  seqlens analyze --ops kmer,entropy -k 3 --unit kmer input.fa
  seqlens analyze --seq AAAA --ops motif --motif AA
  seqlens analyze --accession NM_000014.6 --ops composition --store results.duckdb
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	// Gather input records
	records, ok := gatherRecords(fs, seqLiteral, accession)
	if !ok {
		return ExitError
	}

	// Build requests
	requests, err := buildRequests(ops, analysis.Params{
		K:                k,
		Frame:            frame,
		StopAtFirstStop:  stopAtFirstStop,
		ExcludeAmbiguous: excludeAmbiguous,
		Unit:             unit,
		Motif:            motif,
		CaseSensitive:    caseSensitive,
		Window:           window,
		Step:             step,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitUsage
	}

	// Normalize sequences through the single validation gate
	type task struct {
		id  string
		seq *seq.Sequence
	}
	var tasks []task
	for _, rec := range records {
		s, err := seq.Normalize(rec.Sequence, strict)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: record %s: %v\n", rec.ID, err)
			return ExitError
		}
		tasks = append(tasks, task{id: rec.ID, seq: s})
	}

	engine := analysis.NewEngine(resultcache.New(viper.GetInt("cache.capacity")))
	if verbose {
		logger := zap.Must(zap.NewDevelopment())
		defer logger.Sync()
		engine.SetLogger(logger)
	}

	// Create output writer
	var out *os.File
	if outputFile == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return ExitError
		}
		defer out.Close()
	}

	var writer output.ResultWriter
	switch outputFormat {
	case "tab":
		writer = output.NewTabWriter(out)
	case "json":
		writer = output.NewJSONWriter(out)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q\n", outputFormat)
		return ExitError
	}

	if err := writer.WriteHeader(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		return ExitError
	}

	// Persistent store path: sequential read-through, results written back.
	if storePath != "" {
		st, err := store.Open(storePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening store: %v\n", err)
			return ExitError
		}
		defer st.Close()

		for _, tk := range tasks {
			for _, req := range requests {
				key := resultcache.Key{
					Fingerprint: tk.seq.Fingerprint(),
					Op:          string(req.Op),
					Params:      req.Canonical(),
				}

				var res analysis.Result
				if payload, hit, err := st.Get(key); err == nil && hit {
					res, err = analysis.DecodeResult(req.Op, payload)
					if err != nil {
						fmt.Fprintf(os.Stderr, "Warning: stale stored result for %s/%s: %v\n", tk.id, req.Op, err)
						res = nil
					}
				}
				if res == nil {
					res, err = engine.Analyze(tk.seq, req)
					if err != nil {
						fmt.Fprintf(os.Stderr, "Error: %s: %v\n", tk.id, err)
						return ExitError
					}
					payload, err := json.Marshal(res)
					if err == nil {
						if err := st.Put(key, payload); err != nil {
							fmt.Fprintf(os.Stderr, "Warning: store result: %v\n", err)
						}
					}
				}

				if err := writer.Write(tk.id, tk.seq.Len(), res); err != nil {
					fmt.Fprintf(os.Stderr, "Error writing result: %v\n", err)
					return ExitError
				}
			}
		}

		if err := writer.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Error flushing output: %v\n", err)
			return ExitError
		}
		return ExitSuccess
	}

	// Parallel batch path
	items := make(chan analysis.WorkItem, 2*len(requests))
	go func() {
		defer close(items)
		n := 0
		for _, tk := range tasks {
			for _, req := range requests {
				items <- analysis.WorkItem{Seq: n, ID: tk.id, Sequence: tk.seq, Request: req}
				n++
			}
		}
	}()

	results := engine.ParallelAnalyze(items, workers)

	if err := analysis.OrderedCollect(results, func(r analysis.WorkResult) error {
		if r.Err != nil {
			return fmt.Errorf("%s: %w", r.ID, r.Err)
		}
		return writer.Write(r.ID, r.Length, r.Result)
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	if err := writer.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "Error flushing output: %v\n", err)
		return ExitError
	}

	return ExitSuccess
}

// gatherRecords resolves the analyze input: a literal sequence, an NCBI
// accession, or a FASTA file argument.
func gatherRecords(fs *flag.FlagSet, seqLiteral, accession string) ([]fasta.Record, bool) {
	sources := 0
	if seqLiteral != "" {
		sources++
	}
	if accession != "" {
		sources++
	}
	if fs.NArg() > 0 {
		sources++
	}
	if sources != 1 {
		fmt.Fprintf(os.Stderr, "Error: provide exactly one of --seq, --accession, or a FASTA file argument\n")
		return nil, false
	}

	switch {
	case seqLiteral != "":
		return []fasta.Record{{ID: "input", Sequence: seqLiteral}}, true
	case accession != "":
		client := fetch.NewClient(viper.GetString("fetch.email"))
		defer client.Close()
		if tool := viper.GetString("fetch.tool"); tool != "" {
			client.SetTool(tool)
		}
		raw, err := client.FetchSequence(context.Background(), accession)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return nil, false
		}
		return []fasta.Record{{ID: accession, Sequence: raw}}, true
	default:
		records, err := fasta.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return nil, false
		}
		return records, true
	}
}

// buildRequests expands the --ops list into analysis requests sharing one
// parameter set.
func buildRequests(ops string, params analysis.Params) ([]analysis.Request, error) {
	var requests []analysis.Request
	for _, name := range strings.Split(ops, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		requests = append(requests, analysis.Request{Op: analysis.Op(name), Params: params})
	}
	if len(requests) == 0 {
		return nil, fmt.Errorf("no operations requested")
	}
	return requests, nil
}
