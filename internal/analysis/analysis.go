// Package analysis provides the sequence analysis engine: composition,
// k-mer, translation, entropy and motif analyzers plus the dispatching
// Engine that fronts them with a result cache.
package analysis

import (
	"fmt"
	"strings"
)

// Op identifies an analysis operation.
type Op string

// Supported operations.
const (
	OpComposition    Op = "composition"
	OpGCSkew         Op = "gc_skew"
	OpKmer           Op = "kmer"
	OpCodonUsage     Op = "codon_usage"
	OpTranslation    Op = "translation"
	OpEntropy        Op = "entropy"
	OpRollingEntropy Op = "rolling_entropy"
	OpMotif          Op = "motif"
)

// Entropy units.
const (
	UnitBase = "base"
	UnitKmer = "kmer"
)

// Params holds the parameter set of an analysis request. Only the fields
// relevant to the requested operation are consulted; the rest are ignored
// and excluded from the cache key.
type Params struct {
	K                int    `json:"k,omitempty"`                 // k-mer length
	Frame            int    `json:"frame,omitempty"`             // translation frame offset: 0, 1 or 2
	StopAtFirstStop  bool   `json:"stop_at_first_stop,omitempty"`
	ExcludeAmbiguous bool   `json:"exclude_ambiguous,omitempty"` // skip k-mer windows containing N
	Unit             string `json:"unit,omitempty"`              // entropy unit: base or kmer
	Motif            string `json:"motif,omitempty"`
	CaseSensitive    bool   `json:"case_sensitive,omitempty"`
	Window           int    `json:"window,omitempty"` // sliding window size
	Step             int    `json:"step,omitempty"`   // sliding window step
}

// Request identifies an operation plus its parameters.
type Request struct {
	Op     Op     `json:"op"`
	Params Params `json:"params"`
}

// Canonical returns the canonical parameter string for the request's
// operation. Requests differing in any relevant parameter produce distinct
// strings; irrelevant fields never leak into the key.
func (r Request) Canonical() string {
	p := r.Params
	switch r.Op {
	case OpComposition, OpCodonUsage:
		return ""
	case OpKmer:
		return fmt.Sprintf("k=%d;exclude_ambiguous=%t", p.K, p.ExcludeAmbiguous)
	case OpTranslation:
		return fmt.Sprintf("frame=%d;stop_at_first_stop=%t", p.Frame, p.StopAtFirstStop)
	case OpEntropy:
		k := 0
		if p.Unit == UnitKmer {
			k = p.K
		}
		return fmt.Sprintf("unit=%s;k=%d", p.Unit, k)
	case OpGCSkew, OpRollingEntropy:
		return fmt.Sprintf("window=%d;step=%d", p.Window, p.Step)
	case OpMotif:
		motif := p.Motif
		if !p.CaseSensitive {
			motif = strings.ToUpper(motif)
		}
		return fmt.Sprintf("motif=%s;case_sensitive=%t", motif, p.CaseSensitive)
	default:
		return ""
	}
}

// Result is the discriminated union over analysis payloads. Concrete types
// are CompositionResult, GCSkewResult, KmerResult, CodonUsageResult,
// TranslationResult, EntropyResult, RollingEntropyResult and MotifResult.
// Results are immutable value objects with stable JSON field names.
type Result interface {
	Op() Op
}
