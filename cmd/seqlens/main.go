// Package main provides the seqlens command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	// Parse global flags first
	flag.Parse()

	if showVersion {
		fmt.Printf("seqlens version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	initConfig()

	// Check for subcommand
	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "analyze":
		return runAnalyze(args[1:])
	case "mutate":
		return runMutate(args[1:])
	case "fetch":
		return runFetch(args[1:])
	case "search":
		return runSearch(args[1:])
	case "config":
		return runConfig(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `seqlens - Nucleotide Sequence Analysis

Usage:
  seqlens [options] <command> [arguments]

Commands:
  analyze     Analyze a sequence (composition, k-mers, translation, entropy, motifs)
  mutate      Apply point mutations and compare the translated proteins
  fetch       Fetch a nucleotide sequence from NCBI by accession id
  search      Search accession ids for a gene name
  config      Manage seqlens configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Analyze a literal sequence
  seqlens analyze --seq ATGCGTAA --ops composition,kmer -k 3

  # Analyze every record in a FASTA file
  seqlens analyze --ops entropy,translation input.fa

  # Fetch by accession and analyze
  seqlens analyze --accession NM_000014.6 --ops composition

  # Find overlapping motif occurrences
  seqlens analyze --seq AAAA --ops motif --motif AA

For more information on a command, use:
  seqlens <command> --help
`)
}
