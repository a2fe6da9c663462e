package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"

	"github.com/dkrasn/seqlens/internal/seq"
	"github.com/dkrasn/seqlens/internal/simulate"
)

func runMutate(args []string) int {
	fs := flag.NewFlagSet("mutate", flag.ExitOnError)

	var (
		seqLiteral string
		strict     bool
	)
	fs.StringVar(&seqLiteral, "seq", "", "Sequence to mutate")
	fs.BoolVar(&strict, "strict", viper.GetBool("analysis.strict"), "Reject symbols outside ACGTN instead of coercing to N")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Apply point mutations and compare the translated proteins.

Usage:
  seqlens mutate --seq <sequence> <pos><base> [<pos><base> ...]

Each mutation is a 1-based position followed by the replacement base,
e.g. 4T replaces the base at position 4 with T.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  seqlens mutate --seq ATGGGTAAA 4T
  seqlens mutate --seq ATGGGTAAA 4T 7A
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if seqLiteral == "" {
		fmt.Fprintf(os.Stderr, "Error: --seq is required\n\n")
		fs.Usage()
		return ExitUsage
	}
	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: at least one mutation argument required\n\n")
		fs.Usage()
		return ExitUsage
	}

	s, err := seq.Normalize(seqLiteral, strict)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	sim := simulate.New(s)
	for _, arg := range fs.Args() {
		pos, base, err := parseMutation(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitUsage
		}
		if err := sim.Apply(pos, base); err != nil {
			fmt.Fprintf(os.Stderr, "Error: mutation %s: %v\n", arg, err)
			return ExitError
		}
	}

	cmp, err := sim.Compare()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	fmt.Printf("original:  %s\n", s.Norm)
	fmt.Printf("mutated:   %s\n", sim.Mutated().Norm)
	fmt.Printf("protein:   %s -> %s\n", cmp.ProteinOriginal, cmp.ProteinMutated)
	if cmp.IsSilent {
		fmt.Println("effect:    silent")
	} else if cmp.StopCodonIntroduced {
		fmt.Println("effect:    stop codon introduced")
	} else {
		fmt.Println("effect:    protein changed")
	}
	return ExitSuccess
}

// parseMutation splits an argument like "4T" into position and base.
func parseMutation(arg string) (int, byte, error) {
	if len(arg) < 2 {
		return 0, 0, fmt.Errorf("invalid mutation %q, want <pos><base> like 4T", arg)
	}
	pos, err := strconv.Atoi(arg[:len(arg)-1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid mutation %q, want <pos><base> like 4T", arg)
	}
	return pos, arg[len(arg)-1], nil
}
