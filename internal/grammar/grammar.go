// Package grammar holds the per-source parsing specifications and the
// immutable registry they are loaded into. A grammar describes how one
// statement source formats its transaction lines: the transaction pattern,
// the installment marker, the date layout, and the keyword table used for
// deterministic categorization.
package grammar

import (
	"fmt"
	"regexp"
)

// KeywordGroup maps one category to its keyword list. Groups are ordered;
// the first category whose keyword matches wins.
type KeywordGroup struct {
	Category string
	Keywords []string
}

// Spec is the raw, uncompiled form of a grammar. Patterns are written
// without flags; they are compiled case-insensitive and multiline.
type Spec struct {
	SourceID           string
	TransactionPattern string
	InstallmentPattern string
	DateFormat         string // Go reference layout, may omit the year
	CurrencyPattern    string
	Locale             string // month-abbreviation locale, defaults to pt-BR
	NameLiterals       []string
	CategoryKeywords   []KeywordGroup
	NoisePatterns      []string
}

// Grammar is a compiled, immutable parsing spec for one source.
type Grammar struct {
	TransactionPattern *regexp.Regexp
	InstallmentPattern *regexp.Regexp
	CurrencyPattern    *regexp.Regexp
	SourceID           string
	DateFormat         string
	Locale             string
	NameLiterals       []string
	CategoryKeywords   []KeywordGroup
	noisePatterns      []*regexp.Regexp
}

// Compile validates a spec and compiles its patterns. The transaction
// pattern must capture exactly three groups (date, description, amount in
// document order) and the installment pattern exactly two (current, total).
func Compile(spec Spec) (*Grammar, error) {
	if spec.SourceID == "" {
		return nil, fmt.Errorf("grammar: source id is required")
	}

	txnRe, err := regexp.Compile("(?im)" + spec.TransactionPattern)
	if err != nil {
		return nil, fmt.Errorf("grammar %s: invalid transaction pattern: %w", spec.SourceID, err)
	}
	if txnRe.NumSubexp() != 3 {
		return nil, fmt.Errorf("grammar %s: transaction pattern must capture 3 groups, has %d", spec.SourceID, txnRe.NumSubexp())
	}

	var instRe *regexp.Regexp
	if spec.InstallmentPattern != "" {
		instRe, err = regexp.Compile("(?i)" + spec.InstallmentPattern)
		if err != nil {
			return nil, fmt.Errorf("grammar %s: invalid installment pattern: %w", spec.SourceID, err)
		}
		if instRe.NumSubexp() != 2 {
			return nil, fmt.Errorf("grammar %s: installment pattern must capture 2 groups, has %d", spec.SourceID, instRe.NumSubexp())
		}
	}

	var curRe *regexp.Regexp
	if spec.CurrencyPattern != "" {
		curRe, err = regexp.Compile("(?i)" + spec.CurrencyPattern)
		if err != nil {
			return nil, fmt.Errorf("grammar %s: invalid currency pattern: %w", spec.SourceID, err)
		}
	}

	noise := make([]*regexp.Regexp, 0, len(spec.NoisePatterns))
	for _, p := range spec.NoisePatterns {
		re, reErr := regexp.Compile("(?i)" + p)
		if reErr != nil {
			return nil, fmt.Errorf("grammar %s: invalid noise pattern %q: %w", spec.SourceID, p, reErr)
		}
		noise = append(noise, re)
	}

	if spec.DateFormat == "" {
		return nil, fmt.Errorf("grammar %s: date format is required", spec.SourceID)
	}

	locale := spec.Locale
	if locale == "" {
		locale = "pt-BR"
	}

	return &Grammar{
		SourceID:           spec.SourceID,
		TransactionPattern: txnRe,
		InstallmentPattern: instRe,
		CurrencyPattern:    curRe,
		DateFormat:         spec.DateFormat,
		Locale:             locale,
		NameLiterals:       append([]string(nil), spec.NameLiterals...),
		CategoryKeywords:   append([]KeywordGroup(nil), spec.CategoryKeywords...),
		noisePatterns:      noise,
	}, nil
}

// MustCompile is Compile for statically known specs.
func MustCompile(spec Spec) *Grammar {
	g, err := Compile(spec)
	if err != nil {
		panic(err)
	}
	return g
}

// IsNoise reports whether an extracted description is an OCR/extraction
// artifact this grammar filters out (bare currency symbols, barcode-like
// digit runs). Membership is a per-source policy supplied by the spec.
func (g *Grammar) IsNoise(description string) bool {
	for _, re := range g.noisePatterns {
		if re.MatchString(description) {
			return true
		}
	}
	return false
}

// Registry is the process-wide, read-only table of grammars. Iteration
// order is registration order, which is significant for format detection.
type Registry struct {
	byID      map[string]*Grammar
	grammars  []*Grammar
	defaultID string
}

// NewRegistry builds a registry from the given grammars. defaultID names
// the grammar returned when format detection finds no match.
func NewRegistry(defaultID string, grammars ...*Grammar) (*Registry, error) {
	if len(grammars) == 0 {
		return nil, fmt.Errorf("grammar: registry needs at least one grammar")
	}

	byID := make(map[string]*Grammar, len(grammars))
	for _, g := range grammars {
		if _, dup := byID[g.SourceID]; dup {
			return nil, fmt.Errorf("grammar: duplicate source id %q", g.SourceID)
		}
		byID[g.SourceID] = g
	}

	if _, ok := byID[defaultID]; !ok {
		return nil, fmt.Errorf("grammar: default source %q is not registered", defaultID)
	}

	return &Registry{
		grammars:  append([]*Grammar(nil), grammars...),
		byID:      byID,
		defaultID: defaultID,
	}, nil
}

// Lookup returns the grammar for a source id.
func (r *Registry) Lookup(sourceID string) (*Grammar, bool) {
	g, ok := r.byID[sourceID]
	return g, ok
}

// Grammars returns all grammars in registration order.
func (r *Registry) Grammars() []*Grammar {
	return append([]*Grammar(nil), r.grammars...)
}

// Default returns the fallback grammar used when detection fails.
func (r *Registry) Default() *Grammar {
	return r.byID[r.defaultID]
}

// SourceIDs returns the registered source ids in registration order.
func (r *Registry) SourceIDs() []string {
	ids := make([]string, len(r.grammars))
	for i, g := range r.grammars {
		ids[i] = g.SourceID
	}
	return ids
}
