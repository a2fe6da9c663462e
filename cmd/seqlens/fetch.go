package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/dkrasn/seqlens/internal/fetch"
	"github.com/dkrasn/seqlens/internal/metadata"
	"github.com/dkrasn/seqlens/internal/seq"
)

func newNCBIClient() *fetch.Client {
	client := fetch.NewClient(viper.GetString("fetch.email"))
	if tool := viper.GetString("fetch.tool"); tool != "" {
		client.SetTool(tool)
	}
	return client
}

func runFetch(args []string) int {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)

	var (
		outputFile string
		revcomp    bool
	)
	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	fs.BoolVar(&revcomp, "revcomp", false, "Output the reverse complement")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Fetch a nucleotide sequence from NCBI by accession id.

Usage:
  seqlens fetch [options] <accession>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  seqlens fetch NM_000014.6
  seqlens fetch -o sequence.txt NM_000014.6
  seqlens fetch --revcomp NM_000014.6
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: accession argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	accession := fs.Arg(0)

	client := newNCBIClient()
	defer client.Close()

	raw, err := client.FetchSequence(context.Background(), accession)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	header := accession
	if revcomp {
		s, err := seq.Normalize(raw, false)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		raw = seq.ReverseComplement(s.Norm)
		header += " reverse complement"
	}

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return ExitError
		}
		defer out.Close()
	}

	fmt.Fprintf(out, ">%s\n%s\n", header, raw)
	return ExitSuccess
}

func runSearch(args []string) int {
	fs := flag.NewFlagSet("search", flag.ExitOnError)

	var (
		organism     string
		limit        int
		metadataPath string
	)

	fs.StringVar(&organism, "organism", "Homo sapiens", "Organism filter for NCBI search")
	fs.IntVar(&limit, "limit", 10, "Maximum results")
	fs.StringVar(&metadataPath, "metadata", "", "Search a local gene metadata CSV instead of NCBI")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Search accession ids for a gene name.

Usage:
  seqlens search [options] <gene-name>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  seqlens search TP53
  seqlens search --metadata rna_summary.csv BRCA1
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: gene name argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	gene := fs.Arg(0)

	// Local table search
	if metadataPath != "" {
		table, err := metadata.Load(metadataPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		hits := table.Search(gene, limit)
		if len(hits) == 0 {
			fmt.Fprintf(os.Stderr, "No matches for %q\n", gene)
			return ExitSuccess
		}
		for _, g := range hits {
			fmt.Printf("%s\t%s\n", g.ID, g.Description)
		}
		return ExitSuccess
	}

	client := newNCBIClient()
	defer client.Close()

	hits, err := client.SearchGene(context.Background(), gene, organism, limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	if len(hits) == 0 {
		fmt.Fprintf(os.Stderr, "No matches for %q\n", gene)
		return ExitSuccess
	}
	for _, h := range hits {
		fmt.Printf("%s\t%s\n", h.ID, h.Description)
	}
	return ExitSuccess
}
