// Package core holds the domain types shared by the dataset generators, the benchmark
// result loaders and the figure renderers.
package core

import (
	"fmt"
	"strings"
)

// PayloadBits is the width of the binary payload attached to every keyword.
const PayloadBits = 8

// KeywordRecord is one line of a keyword dataset.
type KeywordRecord struct {
	Keyword string
	Payload uint8
	// Fallback marks keywords produced by the index-derived fallback path.
	Fallback bool
}

// String renders the record as "<keyword> <8-bit binary payload>".
func (r KeywordRecord) String() string {
	return fmt.Sprintf("%s %08b", r.Keyword, r.Payload)
}

// ParseKeywordRecord parses a line produced by KeywordRecord.String.
func ParseKeywordRecord(line string) (KeywordRecord, error) {
	line = strings.TrimRight(line, "\r\n")
	kw, payload, ok := strings.Cut(line, " ")
	if !ok || kw == "" {
		return KeywordRecord{}, fmt.Errorf("%w: missing separator in %q", ErrMalformedInput, line)
	}
	if len(payload) != PayloadBits {
		return KeywordRecord{}, fmt.Errorf("%w: payload %q is not %d bits", ErrMalformedInput, payload, PayloadBits)
	}

	var v uint8
	for _, c := range payload {
		switch c {
		case '0':
			v <<= 1
		case '1':
			v = v<<1 | 1
		default:
			return KeywordRecord{}, fmt.Errorf("%w: payload %q is not binary", ErrMalformedInput, payload)
		}
	}
	return KeywordRecord{Keyword: kw, Payload: v}, nil
}
