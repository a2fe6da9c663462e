// Package seq provides the validated nucleotide sequence model.
package seq

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// InvalidSequenceError reports input rejected by Normalize.
type InvalidSequenceError struct {
	Reason string
	Symbol byte // offending symbol, 0 when not applicable
	Pos    int  // position of the offending symbol in the cleaned input
}

func (e *InvalidSequenceError) Error() string {
	if e.Symbol != 0 {
		return fmt.Sprintf("invalid sequence: %s: symbol %q at position %d", e.Reason, e.Symbol, e.Pos)
	}
	return fmt.Sprintf("invalid sequence: %s", e.Reason)
}

// Sequence is a validated, normalized nucleotide string.
// It is immutable after construction; analyzers borrow Norm read-only.
type Sequence struct {
	Raw  string // input as supplied by the caller
	Norm string // uppercase, whitespace-stripped, alphabet-checked
}

// Normalize validates raw input and builds a Sequence.
// Input is uppercased and stripped of whitespace and line breaks.
// The alphabet is {A,C,G,T,N}. With strict=true any other symbol is
// rejected; otherwise it is coerced to N. Empty input is always rejected.
func Normalize(raw string, strict bool) (*Sequence, error) {
	var b strings.Builder
	b.Grow(len(raw))

	pos := 0
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		switch c {
		case 'A', 'C', 'G', 'T', 'N':
			b.WriteByte(c)
		default:
			if strict {
				return nil, &InvalidSequenceError{Reason: "disallowed symbol", Symbol: raw[i], Pos: pos}
			}
			b.WriteByte('N')
		}
		pos++
	}

	norm := b.String()
	if norm == "" {
		return nil, &InvalidSequenceError{Reason: "empty sequence"}
	}

	return &Sequence{Raw: raw, Norm: norm}, nil
}

// Len returns the length of the normalized sequence.
func (s *Sequence) Len() int {
	return len(s.Norm)
}

// Fingerprint returns a content-derived identifier of the normalized
// sequence. Two Sequence values with identical content share a fingerprint,
// so cache keys survive re-fetching the same accession.
func (s *Sequence) Fingerprint() string {
	sum := sha256.Sum256([]byte(s.Norm))
	return hex.EncodeToString(sum[:])
}

// Complement returns the complement of a single base.
func Complement(base byte) byte {
	switch base {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'G':
		return 'C'
	case 'C':
		return 'G'
	default:
		return 'N'
	}
}

// ReverseComplement returns the reverse complement of a normalized
// DNA string.
func ReverseComplement(s string) string {
	n := len(s)
	// Stack-allocate for short fragments (motifs, codons).
	var buf [64]byte
	var result []byte
	if n <= len(buf) {
		result = buf[:n]
	} else {
		result = make([]byte, n)
	}
	for i := 0; i < n; i++ {
		result[i] = Complement(s[n-1-i])
	}
	return string(result)
}
