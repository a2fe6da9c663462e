// Package metadata provides the local gene-metadata table lookup.
package metadata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Gene is one row of the RNA summary table.
type Gene struct {
	ID          string
	Description string
	SequenceLen int
}

// Table is an in-memory gene metadata table supporting substring search.
type Table struct {
	genes []Gene
}

// Load reads a gene metadata CSV. The file must have a header naming at
// least the ID and Description columns; a Sequence_len column is optional.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gene metadata: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses gene metadata CSV content.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("gene metadata: read header: %w", err)
	}

	idIdx, descIdx, lenIdx := -1, -1, -1
	for i, col := range header {
		switch col {
		case "ID":
			idIdx = i
		case "Description":
			descIdx = i
		case "Sequence_len":
			lenIdx = i
		}
	}
	if idIdx < 0 {
		return nil, fmt.Errorf("gene metadata: missing 'ID' column")
	}
	if descIdx < 0 {
		return nil, fmt.Errorf("gene metadata: missing 'Description' column")
	}

	t := &Table{}
	for {
		fields, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("gene metadata: read row: %w", err)
		}
		if len(fields) <= idIdx || len(fields) <= descIdx {
			continue
		}
		g := Gene{
			ID:          strings.TrimSpace(fields[idIdx]),
			Description: strings.TrimSpace(fields[descIdx]),
		}
		if g.ID == "" {
			continue
		}
		if lenIdx >= 0 && len(fields) > lenIdx {
			if n, err := strconv.Atoi(strings.TrimSpace(fields[lenIdx])); err == nil {
				g.SequenceLen = n
			}
		}
		t.genes = append(t.genes, g)
	}

	return t, nil
}

// Len returns the number of rows in the table.
func (t *Table) Len() int {
	return len(t.genes)
}

// Search returns up to limit genes whose ID or Description contains query,
// case-insensitively. An empty query returns the first limit rows.
func (t *Table) Search(query string, limit int) []Gene {
	if limit <= 0 {
		limit = 50
	}

	if query == "" {
		if len(t.genes) <= limit {
			return t.genes
		}
		return t.genes[:limit]
	}

	q := strings.ToLower(query)
	var results []Gene
	for _, g := range t.genes {
		if strings.Contains(strings.ToLower(g.ID), q) ||
			strings.Contains(strings.ToLower(g.Description), q) {
			results = append(results, g)
			if len(results) == limit {
				break
			}
		}
	}
	return results
}
