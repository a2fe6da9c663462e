// Package fasta provides streaming FASTA input for batch analysis.
package fasta

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA entry: the first whitespace-delimited token of the
// header and the concatenated sequence lines.
type Record struct {
	ID       string
	Sequence string
}

// Open reads records from a file path, transparently handling gzip.
// "-" reads from stdin.
func Open(path string) ([]Record, error) {
	if path == "-" {
		return Read(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return Read(reader)
}

// Read parses FASTA content into records.
func Read(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long sequence lines.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max line

	var records []Record
	var currentID string
	var currentSeq strings.Builder
	sawHeader := false

	flush := func() {
		if sawHeader {
			records = append(records, Record{ID: currentID, Sequence: currentSeq.String()})
		}
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, ">") {
			flush()
			currentID = parseHeader(line)
			currentSeq.Reset()
			sawHeader = true
		} else {
			currentSeq.WriteString(strings.TrimSpace(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read FASTA: %w", err)
	}

	flush()

	if len(records) == 0 {
		return nil, fmt.Errorf("read FASTA: no records found")
	}
	return records, nil
}

// parseHeader extracts the record id: the first whitespace-delimited token
// after '>'.
func parseHeader(line string) string {
	header := strings.TrimPrefix(line, ">")
	if i := strings.IndexAny(header, " \t"); i >= 0 {
		header = header[:i]
	}
	return header
}
