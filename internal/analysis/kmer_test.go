package analysis

import (
	"errors"
	"reflect"
	"testing"
)

func TestKmerFrequency(t *testing.T) {
	// Concrete scenario: ATGCGTAA, k=3.
	s := mustSeq(t, "ATGCGTAA")

	r, err := KmerFrequency(s, 3, false)
	if err != nil {
		t.Fatalf("KmerFrequency: %v", err)
	}

	want := map[string]int{
		"ATG": 1, "TGC": 1, "GCG": 1, "CGT": 1, "GTA": 1, "TAA": 1,
	}
	if !reflect.DeepEqual(r.Counts, want) {
		t.Errorf("Counts = %v, want %v", r.Counts, want)
	}
	if r.TotalWindows != 6 {
		t.Errorf("TotalWindows = %d, want 6", r.TotalWindows)
	}
}

func TestKmerFrequency_WindowSum(t *testing.T) {
	s := mustSeq(t, "ATGCATGCATGC")

	for k := 1; k <= s.Len(); k++ {
		r, err := KmerFrequency(s, k, false)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		sum := 0
		for _, count := range r.Counts {
			sum += count
		}
		if wantSum := s.Len() - k + 1; sum != wantSum {
			t.Errorf("k=%d: count sum = %d, want %d", k, sum, wantSum)
		}
	}
}

func TestKmerFrequency_Overlapping(t *testing.T) {
	s := mustSeq(t, "AAAA")

	r, err := KmerFrequency(s, 2, false)
	if err != nil {
		t.Fatalf("KmerFrequency: %v", err)
	}
	if r.Counts["AA"] != 3 {
		t.Errorf("AA count = %d, want 3 (windows slide by 1)", r.Counts["AA"])
	}
}

func TestKmerFrequency_InvalidK(t *testing.T) {
	s := mustSeq(t, "ATGC")

	for _, k := range []int{0, -1, 5} {
		_, err := KmerFrequency(s, k, false)
		if err == nil {
			t.Errorf("k=%d: expected error", k)
			continue
		}
		var paramErr *InvalidParameterError
		if !errors.As(err, &paramErr) {
			t.Errorf("k=%d: error type = %T, want *InvalidParameterError", k, err)
		} else if paramErr.Param != "k" {
			t.Errorf("k=%d: Param = %q, want \"k\"", k, paramErr.Param)
		}
	}
}

func TestKmerFrequency_ExcludeAmbiguous(t *testing.T) {
	s := mustSeq(t, "ATNGC")

	// With N counted: 4 windows, two of them contain N.
	counted, err := KmerFrequency(s, 2, false)
	if err != nil {
		t.Fatalf("KmerFrequency: %v", err)
	}
	if counted.Counts["TN"] != 1 || counted.Counts["NG"] != 1 {
		t.Errorf("ambiguous windows should count by default, got %v", counted.Counts)
	}

	// Excluded: skipped windows still consume index positions.
	excluded, err := KmerFrequency(s, 2, true)
	if err != nil {
		t.Fatalf("KmerFrequency: %v", err)
	}
	if excluded.TotalWindows != 4 {
		t.Errorf("TotalWindows = %d, want 4", excluded.TotalWindows)
	}
	if excluded.SkippedWindows != 2 {
		t.Errorf("SkippedWindows = %d, want 2", excluded.SkippedWindows)
	}
	want := map[string]int{"AT": 1, "GC": 1}
	if !reflect.DeepEqual(excluded.Counts, want) {
		t.Errorf("Counts = %v, want %v", excluded.Counts, want)
	}
}

func TestKmerResult_Top(t *testing.T) {
	s := mustSeq(t, "ATGATGCCC")

	r, err := KmerFrequency(s, 3, false)
	if err != nil {
		t.Fatalf("KmerFrequency: %v", err)
	}

	top := r.Top(2)
	if len(top) != 2 {
		t.Fatalf("Top(2) length = %d", len(top))
	}
	// ATG appears twice; ties broken lexicographically.
	if top[0].Kmer != "ATG" || top[0].Count != 2 {
		t.Errorf("top[0] = %+v, want ATG:2", top[0])
	}

	all := r.Top(0)
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if cur.Count > prev.Count {
			t.Errorf("Top not sorted by count at %d: %+v before %+v", i, prev, cur)
		}
		if cur.Count == prev.Count && cur.Kmer < prev.Kmer {
			t.Errorf("tie not broken lexicographically at %d: %+v before %+v", i, prev, cur)
		}
	}
}

func TestKmerResult_Frequency(t *testing.T) {
	s := mustSeq(t, "ATGCGTAA")

	r, err := KmerFrequency(s, 3, false)
	if err != nil {
		t.Fatalf("KmerFrequency: %v", err)
	}
	if got := r.Frequency("ATG"); got != 1.0/6.0 {
		t.Errorf("Frequency(ATG) = %v, want 1/6", got)
	}
	if got := r.Frequency("GGG"); got != 0.0 {
		t.Errorf("Frequency(GGG) = %v, want 0", got)
	}
}
