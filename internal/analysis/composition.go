package analysis

import "github.com/dkrasn/seqlens/internal/seq"

// CompositionResult holds per-base counts and GC content.
type CompositionResult struct {
	A          int     `json:"a"`
	C          int     `json:"c"`
	G          int     `json:"g"`
	T          int     `json:"t"`
	N          int     `json:"n"`
	Length     int     `json:"length"`
	GCFraction float64 `json:"gc_fraction"`
}

func (*CompositionResult) Op() Op { return OpComposition }

// Composition counts each alphabet symbol and computes the GC fraction.
// N counts toward the denominator. O(length).
func Composition(s *seq.Sequence) *CompositionResult {
	r := &CompositionResult{Length: s.Len()}
	for i := 0; i < len(s.Norm); i++ {
		switch s.Norm[i] {
		case 'A':
			r.A++
		case 'C':
			r.C++
		case 'G':
			r.G++
		case 'T':
			r.T++
		case 'N':
			r.N++
		}
	}
	// Normalize rejects empty sequences, but never divide by zero.
	if r.Length > 0 {
		r.GCFraction = float64(r.G+r.C) / float64(r.Length)
	}
	return r
}

// SkewPoint is the GC skew of one window.
type SkewPoint struct {
	Position int     `json:"position"` // 0-based window start
	Skew     float64 `json:"gc_skew"`
}

// GCSkewResult holds GC skew values across sliding windows.
type GCSkewResult struct {
	Window int         `json:"window"`
	Step   int         `json:"step"`
	Points []SkewPoint `json:"points"`
}

func (*GCSkewResult) Op() Op { return OpGCSkew }

// GCSkew computes (G-C)/(G+C) over sliding windows. Windows with no G or C
// report 0.0. A sequence shorter than the window yields a single point
// covering the whole sequence at position 0.
func GCSkew(s *seq.Sequence, window, step int) (*GCSkewResult, error) {
	if window < 1 {
		return nil, &InvalidParameterError{Param: "window", Value: window, Reason: "must be >= 1"}
	}
	if step < 1 {
		return nil, &InvalidParameterError{Param: "step", Value: step, Reason: "must be >= 1"}
	}

	r := &GCSkewResult{Window: window, Step: step}

	if s.Len() < window {
		r.Points = []SkewPoint{{Position: 0, Skew: skewOf(s.Norm)}}
		return r, nil
	}

	for i := 0; i+window <= s.Len(); i += step {
		r.Points = append(r.Points, SkewPoint{Position: i, Skew: skewOf(s.Norm[i : i+window])})
	}
	return r, nil
}

func skewOf(window string) float64 {
	var g, c int
	for i := 0; i < len(window); i++ {
		switch window[i] {
		case 'G':
			g++
		case 'C':
			c++
		}
	}
	if g+c == 0 {
		return 0.0
	}
	return float64(g-c) / float64(g+c)
}
