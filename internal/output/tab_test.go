package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dkrasn/seqlens/internal/analysis"
	"github.com/dkrasn/seqlens/internal/seq"
)

func mustSeq(t *testing.T, raw string) *seq.Sequence {
	t.Helper()
	s, err := seq.Normalize(raw, true)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestTabWriter(t *testing.T) {
	var buf bytes.Buffer
	tw := NewTabWriter(&buf)

	if err := tw.WriteHeader(); err != nil {
		t.Fatal(err)
	}

	s := mustSeq(t, "ATGAAATAG")
	res, err := analysis.Translate(s, 0, false)
	if err != nil {
		t.Fatal(err)
	}
	if err := tw.Write("rec1", s.Len(), res); err != nil {
		t.Fatal(err)
	}
	if err := tw.Flush(); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "#Record\t") {
		t.Errorf("header = %q", lines[0])
	}

	fields := strings.Split(lines[1], "\t")
	if len(fields) != 4 {
		t.Fatalf("fields = %d, want 4: %q", len(fields), lines[1])
	}
	if fields[0] != "rec1" || fields[1] != "9" || fields[2] != "translation" {
		t.Errorf("row = %q", lines[1])
	}
	if !strings.Contains(fields[3], "protein=MK*") {
		t.Errorf("detail = %q, want protein=MK*", fields[3])
	}
}

func TestDetail(t *testing.T) {
	s := mustSeq(t, "ATGCGTAA")

	comp := analysis.Composition(s)
	if got := Detail(comp); !strings.Contains(got, "gc_fraction=0.3750") {
		t.Errorf("composition detail = %q", got)
	}

	kf, err := analysis.KmerFrequency(s, 3, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := Detail(kf); !strings.Contains(got, "windows=6") {
		t.Errorf("kmer detail = %q", got)
	}

	motif, err := analysis.FindMotif(s, "GT", false)
	if err != nil {
		t.Fatal(err)
	}
	if got := Detail(motif); !strings.Contains(got, "matches=1") {
		t.Errorf("motif detail = %q", got)
	}
}

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	jw := NewJSONWriter(&buf)

	if err := jw.WriteHeader(); err != nil {
		t.Fatal(err)
	}

	s := mustSeq(t, "ACGT")
	res, err := analysis.ShannonEntropy(s, analysis.UnitBase, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := jw.Write("rec1", s.Len(), res); err != nil {
		t.Fatal(err)
	}
	if err := jw.Flush(); err != nil {
		t.Fatal(err)
	}

	line := strings.TrimSpace(buf.String())
	for _, want := range []string{`"record":"rec1"`, `"op":"entropy"`, `"bits":2`, `"unit":"base"`} {
		if !strings.Contains(line, want) {
			t.Errorf("json line %q missing %q", line, want)
		}
	}
}
