package analysis

import (
	"math"

	"github.com/dkrasn/seqlens/internal/seq"
)

// EntropyResult holds a Shannon entropy value in bits.
type EntropyResult struct {
	Unit string  `json:"unit"`
	K    int     `json:"k,omitempty"` // set when unit is kmer
	Bits float64 `json:"bits"`
}

func (*EntropyResult) Op() Op { return OpEntropy }

// ShannonEntropy computes -sum(p_i * log2(p_i)) over the symbol distribution
// (unit "base") or over the k-mer distribution of KmerFrequency (unit
// "kmer", k required). Symbols with zero count contribute nothing. The
// result lies in [0, log2(alphabet size)]: 0.0 for a homogeneous sequence,
// at most 2.0 bits for the four unambiguous bases.
func ShannonEntropy(s *seq.Sequence, unit string, k int) (*EntropyResult, error) {
	switch unit {
	case UnitBase:
		return &EntropyResult{Unit: unit, Bits: entropyOf(s.Norm)}, nil
	case UnitKmer:
		kf, err := KmerFrequency(s, k, false)
		if err != nil {
			return nil, err
		}
		var bits float64
		total := float64(kf.TotalWindows)
		for _, count := range kf.Counts {
			p := float64(count) / total
			bits -= p * math.Log2(p)
		}
		return &EntropyResult{Unit: unit, K: k, Bits: bits}, nil
	default:
		return nil, &InvalidParameterError{Param: "unit", Value: unit, Reason: "must be base or kmer"}
	}
}

// entropyOf computes base-level Shannon entropy of a normalized substring.
func entropyOf(window string) float64 {
	if window == "" {
		return 0.0
	}
	var counts [256]int
	for i := 0; i < len(window); i++ {
		counts[window[i]]++
	}
	length := float64(len(window))
	var bits float64
	for _, count := range counts {
		if count == 0 {
			continue
		}
		p := float64(count) / length
		bits -= p * math.Log2(p)
	}
	return bits
}

// EntropyPoint is the entropy of one window.
type EntropyPoint struct {
	Position int     `json:"position"` // 0-based window start
	Bits     float64 `json:"bits"`
}

// RollingEntropyResult holds base entropy across sliding windows.
type RollingEntropyResult struct {
	Window int            `json:"window"`
	Step   int            `json:"step"`
	Points []EntropyPoint `json:"points"`
}

func (*RollingEntropyResult) Op() Op { return OpRollingEntropy }

// RollingEntropy computes base-level entropy over sliding windows.
// A sequence shorter than the window yields no points.
func RollingEntropy(s *seq.Sequence, window, step int) (*RollingEntropyResult, error) {
	if window < 1 {
		return nil, &InvalidParameterError{Param: "window", Value: window, Reason: "must be >= 1"}
	}
	if step < 1 {
		return nil, &InvalidParameterError{Param: "step", Value: step, Reason: "must be >= 1"}
	}

	r := &RollingEntropyResult{Window: window, Step: step}
	for i := 0; i+window <= s.Len(); i += step {
		r.Points = append(r.Points, EntropyPoint{Position: i, Bits: entropyOf(s.Norm[i : i+window])})
	}
	return r, nil
}
