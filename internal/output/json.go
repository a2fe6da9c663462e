package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/dkrasn/seqlens/internal/analysis"
)

// JSONWriter writes one JSON object per result line (NDJSON), suitable for
// piping into downstream tooling.
type JSONWriter struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONWriter creates a new NDJSON writer.
func NewJSONWriter(w io.Writer) *JSONWriter {
	bw := bufio.NewWriter(w)
	return &JSONWriter{
		w:   bw,
		enc: json.NewEncoder(bw),
	}
}

// jsonRecord is the line layout: record id, operation and payload.
type jsonRecord struct {
	Record string          `json:"record"`
	Length int             `json:"length"`
	Op     analysis.Op     `json:"op"`
	Result analysis.Result `json:"result"`
}

// WriteHeader is a no-op for NDJSON output.
func (jw *JSONWriter) WriteHeader() error {
	return nil
}

// Write writes a single result as one JSON line.
func (jw *JSONWriter) Write(id string, length int, res analysis.Result) error {
	return jw.enc.Encode(jsonRecord{
		Record: id,
		Length: length,
		Op:     res.Op(),
		Result: res,
	})
}

// Flush flushes buffered output.
func (jw *JSONWriter) Flush() error {
	return jw.w.Flush()
}
