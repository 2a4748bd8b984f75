package parser

import (
	"strings"

	"github.com/faturaflow/faturaflow/internal/grammar"
)

// RawMatch holds the three captured groups of one transaction-pattern match,
// in document order.
type RawMatch struct {
	DateText        string
	DescriptionText string
	AmountText      string
}

// Extractor runs a grammar's transaction pattern over statement text.
type Extractor struct{}

// NewExtractor creates an extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns every transaction-pattern match in document order. The
// scan is global, non-overlapping, case-insensitive and multiline (the
// grammar compiles those flags in). Downstream per-match processing is the
// caller's responsibility; a malformed match must not abort the batch.
func (e *Extractor) Extract(text string, g *grammar.Grammar) []RawMatch {
	matches := g.TransactionPattern.FindAllStringSubmatch(text, -1)

	out := make([]RawMatch, 0, len(matches))
	for _, m := range matches {
		if len(m) != 4 {
			continue
		}
		out = append(out, RawMatch{
			DateText:        strings.TrimSpace(m[1]),
			DescriptionText: strings.TrimSpace(m[2]),
			AmountText:      strings.TrimSpace(m[3]),
		})
	}
	return out
}
