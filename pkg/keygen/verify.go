package keygen

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/psibench/pkg/core"
)

// maxReportedProblems caps the problem list of a Report.
const maxReportedProblems = 20

// Report summarizes a keyword file check.
type Report struct {
	Lines     int
	Unique    int
	Fallbacks int
	Problems  []string
	// Truncated counts problems beyond maxReportedProblems.
	Truncated int
}

// OK reports whether the file passed every check.
func (r Report) OK() bool {
	return len(r.Problems) == 0
}

// Err returns the problems as a single error wrapping core.ErrMalformedInput.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	msg := strings.Join(r.Problems, "; ")
	if r.Truncated > 0 {
		msg += fmt.Sprintf("; and %d more", r.Truncated)
	}
	return fmt.Errorf("%w: %s", core.ErrMalformedInput, msg)
}

// Check reads a keyword file and verifies the line format, the keyword length bounds
// and charset of cfg, and keyword uniqueness. Fallback keys are exempt from the
// length and charset checks. cfg.Lines is checked when positive.
func Check(r io.Reader, cfg Config) (Report, error) {
	var rep Report
	problem := func(format string, args ...any) {
		if len(rep.Problems) >= maxReportedProblems {
			rep.Truncated++
			return
		}
		rep.Problems = append(rep.Problems, fmt.Sprintf(format, args...))
	}

	alphabet := make(map[rune]struct{})
	for _, c := range cfg.Charset {
		alphabet[c] = struct{}{}
	}
	minLen := min(MinKeywordLen, cfg.MaxKeywordLen)
	seen := make(map[string]struct{})

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		rep.Lines++
		rec, err := core.ParseKeywordRecord(sc.Text())
		if err != nil {
			problem("line %d: %v", rep.Lines, err)
			continue
		}

		if _, dup := seen[rec.Keyword]; dup {
			problem("line %d: duplicate keyword %q", rep.Lines, rec.Keyword)
		}
		seen[rec.Keyword] = struct{}{}

		if isFallbackKey(rec.Keyword) {
			rep.Fallbacks++
			continue
		}
		if n := utf8.RuneCountInString(rec.Keyword); n < minLen || n > cfg.MaxKeywordLen {
			problem("line %d: keyword length %d outside [%d, %d]", rep.Lines, n, minLen, cfg.MaxKeywordLen)
		}
		if len(alphabet) > 0 {
			for _, c := range rec.Keyword {
				if _, ok := alphabet[c]; !ok {
					problem("line %d: keyword %q uses %q outside the charset", rep.Lines, rec.Keyword, c)
					break
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return rep, fmt.Errorf("failed to read keywords: %w", err)
	}

	rep.Unique = len(seen)
	if cfg.Lines > 0 && rep.Lines != cfg.Lines {
		problem("expected %d lines, found %d", cfg.Lines, rep.Lines)
	}
	return rep, nil
}
