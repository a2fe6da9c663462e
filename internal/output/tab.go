// Package output provides analysis result output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dkrasn/seqlens/internal/analysis"
)

// ResultWriter defines the interface for writing analysis results.
type ResultWriter interface {
	WriteHeader() error
	Write(id string, length int, res analysis.Result) error
	Flush() error
}

// TabWriter writes results in tab-delimited format, one summary line per
// record/operation pair.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#Record",
			"Length",
			"Operation",
			"Detail",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes one result line.
func (tw *TabWriter) Write(id string, length int, res analysis.Result) error {
	_, err := fmt.Fprintf(tw.w, "%s\t%d\t%s\t%s\n", id, length, res.Op(), Detail(res))
	return err
}

// Flush flushes buffered output.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

// Detail renders a compact human-readable summary of a result.
func Detail(res analysis.Result) string {
	switch r := res.(type) {
	case *analysis.CompositionResult:
		return fmt.Sprintf("A=%d C=%d G=%d T=%d N=%d gc_fraction=%.4f",
			r.A, r.C, r.G, r.T, r.N, r.GCFraction)
	case *analysis.KmerResult:
		top := r.Top(10)
		parts := make([]string, 0, len(top))
		for _, kc := range top {
			parts = append(parts, fmt.Sprintf("%s:%d", kc.Kmer, kc.Count))
		}
		return fmt.Sprintf("k=%d windows=%d skipped=%d top=%s",
			r.K, r.TotalWindows, r.SkippedWindows, strings.Join(parts, ","))
	case *analysis.CodonUsageResult:
		return fmt.Sprintf("codons=%d distinct=%d", r.TotalCodons, len(r.Usage))
	case *analysis.TranslationResult:
		return fmt.Sprintf("frame=%d protein=%s", r.Frame, r.Protein)
	case *analysis.EntropyResult:
		if r.Unit == analysis.UnitKmer {
			return fmt.Sprintf("%.4f bits (unit=%s k=%d)", r.Bits, r.Unit, r.K)
		}
		return fmt.Sprintf("%.4f bits (unit=%s)", r.Bits, r.Unit)
	case *analysis.RollingEntropyResult:
		return fmt.Sprintf("window=%d step=%d points=%d", r.Window, r.Step, len(r.Points))
	case *analysis.GCSkewResult:
		return fmt.Sprintf("window=%d step=%d points=%d", r.Window, r.Step, len(r.Points))
	case *analysis.MotifResult:
		return fmt.Sprintf("motif=%s matches=%d positions=%v", r.Motif, len(r.Positions), r.Positions)
	default:
		return fmt.Sprintf("%v", res)
	}
}
