package analysis

import (
	"sort"
	"strings"

	"github.com/dkrasn/seqlens/internal/seq"
)

// TranslationResult holds the amino-acid sequence for one reading frame.
type TranslationResult struct {
	Frame   int    `json:"frame"`
	Protein string `json:"protein"` // single-letter symbols, '*' stop, 'X' unknown
	Stopped bool   `json:"stopped"` // output was truncated at the first stop codon
}

func (*TranslationResult) Op() Op { return OpTranslation }

// Translate reads non-overlapping codons starting at offset frame and maps
// each through the standard genetic code. Trailing leftover bases after the
// last full codon are dropped. A codon containing N translates to 'X'
// rather than failing the run. Stop codons are emitted inline as '*' unless
// stopAtFirstStop is set, which truncates the output before the first stop.
func Translate(s *seq.Sequence, frame int, stopAtFirstStop bool) (*TranslationResult, error) {
	if frame < 0 || frame > 2 {
		return nil, &InvalidParameterError{Param: "frame", Value: frame, Reason: "must be 0, 1, or 2"}
	}

	r := &TranslationResult{Frame: frame}
	if frame >= s.Len() {
		return r, nil
	}

	sub := s.Norm[frame:]
	n := (len(sub) / 3) * 3

	var b strings.Builder
	b.Grow(n / 3)

	for i := 0; i < n; i += 3 {
		aa := TranslateCodon(sub[i : i+3])
		if stopAtFirstStop && aa == StopSymbol {
			r.Stopped = true
			break
		}
		b.WriteByte(aa)
	}

	r.Protein = b.String()
	return r, nil
}

// ThreeLetter renders the protein using three-letter amino-acid codes
// separated by dashes (Met-Lys-Ter).
func (r *TranslationResult) ThreeLetter() string {
	if r.Protein == "" {
		return ""
	}
	parts := make([]string, 0, len(r.Protein))
	for i := 0; i < len(r.Protein); i++ {
		if name, ok := AminoAcidSingleToThree[r.Protein[i]]; ok {
			parts = append(parts, name)
		} else {
			parts = append(parts, "Xaa")
		}
	}
	return strings.Join(parts, "-")
}

// CodonCount holds usage statistics for one codon.
type CodonCount struct {
	Codon     string  `json:"codon"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

// CodonUsageResult holds codon usage over frame-0 non-overlapping triplets.
type CodonUsageResult struct {
	TotalCodons int          `json:"total_codons"`
	Usage       []CodonCount `json:"usage"` // sorted by codon ascending
}

func (*CodonUsageResult) Op() Op { return OpCodonUsage }

// CodonUsage counts non-overlapping triplets from frame 0 and reports each
// codon's count and frequency, sorted by codon for deterministic output.
// A trailing partial triplet is ignored.
func CodonUsage(s *seq.Sequence) *CodonUsageResult {
	n := (s.Len() / 3) * 3
	counts := make(map[string]int)
	total := 0
	for i := 0; i < n; i += 3 {
		counts[s.Norm[i:i+3]]++
		total++
	}

	r := &CodonUsageResult{TotalCodons: total}
	for codon, count := range counts {
		r.Usage = append(r.Usage, CodonCount{
			Codon:     codon,
			Count:     count,
			Frequency: float64(count) / float64(total),
		})
	}
	sort.Slice(r.Usage, func(i, j int) bool { return r.Usage[i].Codon < r.Usage[j].Codon })
	return r
}
