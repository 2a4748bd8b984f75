// Package parser turns raw statement text into normalized transaction
// fields: format detection, pattern extraction, date and currency
// normalization, and installment marker parsing.
package parser

import (
	"strings"

	"github.com/faturaflow/faturaflow/internal/common"
	"github.com/faturaflow/faturaflow/internal/grammar"
)

// Detector selects the applicable grammar for a text blob.
type Detector struct {
	registry *grammar.Registry
}

// NewDetector creates a detector over the given registry.
func NewDetector(registry *grammar.Registry) *Detector {
	return &Detector{registry: registry}
}

// Detect returns the source id of the grammar that applies to text. It never
// fails: when no name literal appears and no transaction pattern matches,
// the registry default is returned.
func (d *Detector) Detect(text string) string {
	folded := common.FoldDiacritics(strings.ToLower(text))

	// Known source names, in registry order. Literal lists put longer
	// overlapping names first so "c6 bank" wins over "c6".
	for _, g := range d.registry.Grammars() {
		for _, literal := range g.NameLiterals {
			if strings.Contains(folded, common.FoldDiacritics(strings.ToLower(literal))) {
				return g.SourceID
			}
		}
	}

	// No literal matched; fall back to the first grammar whose transaction
	// pattern finds anything.
	for _, g := range d.registry.Grammars() {
		if g.TransactionPattern.MatchString(text) {
			return g.SourceID
		}
	}

	return d.registry.Default().SourceID
}
