package analysis

import (
	"sort"
	"strings"

	"github.com/dkrasn/seqlens/internal/seq"
)

// KmerCount pairs a k-mer with its occurrence count.
type KmerCount struct {
	Kmer  string `json:"kmer"`
	Count int    `json:"count"`
}

// KmerResult holds the sliding-window substring frequency distribution.
type KmerResult struct {
	K              int            `json:"k"`
	TotalWindows   int            `json:"total_windows"`   // length - k + 1
	SkippedWindows int            `json:"skipped_windows"` // windows skipped for containing N
	Counts         map[string]int `json:"counts"`
}

func (*KmerResult) Op() Op { return OpKmer }

// KmerFrequency counts every contiguous substring of length k, sliding by 1.
// Windows containing the ambiguity symbol N are counted unless
// excludeAmbiguous is set, in which case they are skipped but still consume
// their index position (TotalWindows is always length-k+1).
func KmerFrequency(s *seq.Sequence, k int, excludeAmbiguous bool) (*KmerResult, error) {
	if k < 1 || k > s.Len() {
		return nil, &InvalidParameterError{Param: "k", Value: k, Reason: "must be between 1 and sequence length"}
	}

	r := &KmerResult{
		K:            k,
		TotalWindows: s.Len() - k + 1,
		Counts:       make(map[string]int),
	}

	for i := 0; i+k <= s.Len(); i++ {
		window := s.Norm[i : i+k]
		if excludeAmbiguous && strings.IndexByte(window, 'N') >= 0 {
			r.SkippedWindows++
			continue
		}
		r.Counts[window]++
	}
	return r, nil
}

// Frequency returns a k-mer's count divided by the total window count.
func (r *KmerResult) Frequency(kmer string) float64 {
	if r.TotalWindows == 0 {
		return 0.0
	}
	return float64(r.Counts[kmer]) / float64(r.TotalWindows)
}

// Top returns the n most frequent k-mers, sorted by descending count and
// then lexicographically ascending, so output order is deterministic.
// n <= 0 or n larger than the distinct k-mer count returns all of them.
func (r *KmerResult) Top(n int) []KmerCount {
	all := make([]KmerCount, 0, len(r.Counts))
	for kmer, count := range r.Counts {
		all = append(all, KmerCount{Kmer: kmer, Count: count})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Count != all[j].Count {
			return all[i].Count > all[j].Count
		}
		return all[i].Kmer < all[j].Kmer
	})
	if n > 0 && n < len(all) {
		all = all[:n]
	}
	return all
}
