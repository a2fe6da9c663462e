package analysis

import (
	"strings"

	"github.com/dkrasn/seqlens/internal/seq"
)

// MotifResult holds all occurrences of a motif.
type MotifResult struct {
	Motif     string `json:"motif"`     // motif as matched (uppercased unless case sensitive)
	Positions []int  `json:"positions"` // 0-based start positions, ascending
}

func (*MotifResult) Op() Op { return OpMotif }

// FindMotif locates every exact occurrence of motif, including overlapping
// ones (the scan advances by 1 past each match). An empty motif is a
// parameter error; a motif longer than the sequence yields an empty result.
// With caseSensitive=false (the default in callers) the motif is uppercased
// to match the normalized sequence; the flag only matters for motifs
// containing characters outside the DNA alphabet.
func FindMotif(s *seq.Sequence, motif string, caseSensitive bool) (*MotifResult, error) {
	if motif == "" {
		return nil, &InvalidParameterError{Param: "motif", Value: motif, Reason: "must not be empty"}
	}

	needle := motif
	if !caseSensitive {
		needle = strings.ToUpper(motif)
	}

	r := &MotifResult{Motif: needle, Positions: []int{}}
	for from := 0; ; {
		i := strings.Index(s.Norm[from:], needle)
		if i < 0 {
			break
		}
		r.Positions = append(r.Positions, from+i)
		from += i + 1
	}
	return r, nil
}
