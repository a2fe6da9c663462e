// Package simulate provides point-mutation simulation over a sequence.
package simulate

import (
	"fmt"
	"strings"

	"github.com/dkrasn/seqlens/internal/analysis"
	"github.com/dkrasn/seqlens/internal/seq"
)

// Simulator applies point mutations to a sequence and compares the
// translated proteins before and after.
type Simulator struct {
	original *seq.Sequence
	mutated  *seq.Sequence
}

// New creates a simulator over a normalized sequence.
func New(s *seq.Sequence) *Simulator {
	return &Simulator{original: s, mutated: s}
}

// Mutated returns the current mutated sequence.
func (m *Simulator) Mutated() *seq.Sequence {
	return m.mutated
}

// Apply mutates the base at a 1-based position. The new base must be in the
// sequence alphabet.
func (m *Simulator) Apply(position int, newBase byte) error {
	idx := position - 1
	if idx < 0 || idx >= m.original.Len() {
		return fmt.Errorf("position %d out of range 1..%d", position, m.original.Len())
	}

	upper := newBase
	if upper >= 'a' && upper <= 'z' {
		upper -= 'a' - 'A'
	}
	switch upper {
	case 'A', 'C', 'G', 'T', 'N':
	default:
		return fmt.Errorf("invalid base %q", newBase)
	}

	mutated := []byte(m.mutated.Norm)
	mutated[idx] = upper

	s, err := seq.Normalize(string(mutated), true)
	if err != nil {
		return err
	}
	m.mutated = s
	return nil
}

// Reset discards all applied mutations.
func (m *Simulator) Reset() {
	m.mutated = m.original
}

// Comparison summarizes the effect of the applied mutations on the frame-0
// translation.
type Comparison struct {
	ProteinOriginal     string `json:"protein_original"`
	ProteinMutated      string `json:"protein_mutated"`
	IsSilent            bool   `json:"is_silent"`
	StopCodonIntroduced bool   `json:"stop_codon_introduced"`
}

// Compare translates the original and mutated sequences in frame 0 and
// reports whether the mutation is silent and whether it introduced a stop
// codon.
func (m *Simulator) Compare() (*Comparison, error) {
	orig, err := analysis.Translate(m.original, 0, false)
	if err != nil {
		return nil, err
	}
	mut, err := analysis.Translate(m.mutated, 0, false)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		ProteinOriginal: orig.Protein,
		ProteinMutated:  mut.Protein,
		IsSilent:        orig.Protein == mut.Protein,
		StopCodonIntroduced: strings.ContainsRune(mut.Protein, analysis.StopSymbol) &&
			!strings.ContainsRune(orig.Protein, analysis.StopSymbol),
	}, nil
}
