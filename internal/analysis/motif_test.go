package analysis

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestFindMotif(t *testing.T) {
	tests := []struct {
		name  string
		seq   string
		motif string
		want  []int
	}{
		// Concrete scenario: overlapping matches all reported.
		{"overlapping", "AAAA", "AA", []int{0, 1, 2}},
		{"single match", "ATGCGTAA", "GCG", []int{2}},
		{"multiple non-overlapping", "GAATTCGGGAATTC", "GAATTC", []int{0, 8}},
		{"no match", "ATGC", "TTT", []int{}},
		{"motif longer than sequence", "AT", "ATGC", []int{}},
		{"whole sequence", "ATGC", "ATGC", []int{0}},
		{"lowercase motif uppercased", "ATGCGTAA", "gcg", []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustSeq(t, tt.seq)
			r, err := FindMotif(s, tt.motif, false)
			if err != nil {
				t.Fatalf("FindMotif(%q, %q): %v", tt.seq, tt.motif, err)
			}
			if !reflect.DeepEqual(r.Positions, tt.want) {
				t.Errorf("FindMotif(%q, %q) = %v, want %v", tt.seq, tt.motif, r.Positions, tt.want)
			}

			// Every reported position is a real occurrence.
			for _, p := range r.Positions {
				if got := s.Norm[p : p+len(r.Motif)]; got != r.Motif {
					t.Errorf("position %d: substring %q != motif %q", p, got, r.Motif)
				}
			}
		})
	}
}

func TestFindMotif_NoOccurrenceOmitted(t *testing.T) {
	s := mustSeq(t, "ATATATATA")
	r, err := FindMotif(s, "ATA", false)
	if err != nil {
		t.Fatal(err)
	}

	reported := make(map[int]bool, len(r.Positions))
	for _, p := range r.Positions {
		reported[p] = true
	}
	for p := 0; p+3 <= s.Len(); p++ {
		if s.Norm[p:p+3] == "ATA" && !reported[p] {
			t.Errorf("occurrence at %d omitted", p)
		}
	}
}

func TestFindMotif_CaseSensitive(t *testing.T) {
	s := mustSeq(t, "ATGCGTAA")

	// The normalized sequence is uppercase, so a lowercase motif cannot
	// match case-sensitively.
	r, err := FindMotif(s, "gcg", true)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Positions) != 0 {
		t.Errorf("case-sensitive lowercase motif matched at %v", r.Positions)
	}
	if !strings.EqualFold(r.Motif, "gcg") {
		t.Errorf("Motif = %q, want original casing preserved", r.Motif)
	}
}

func TestFindMotif_EmptyMotif(t *testing.T) {
	s := mustSeq(t, "ATGC")

	_, err := FindMotif(s, "", false)
	var paramErr *InvalidParameterError
	if !errors.As(err, &paramErr) {
		t.Fatalf("error = %v, want *InvalidParameterError", err)
	}
	if paramErr.Param != "motif" {
		t.Errorf("Param = %q, want \"motif\"", paramErr.Param)
	}
}
