// Package classify assigns categories to transaction descriptions in two
// independent stages: a deterministic per-grammar keyword table and an
// adaptive matcher over learned correction patterns.
package classify

import (
	"regexp"
	"strings"

	"github.com/faturaflow/faturaflow/internal/common"
)

// installmentMarkers are stripped before matching so "LOJA X Parcela 2/6"
// and "LOJA X 3/6" normalize to the same key. Longer marker forms come
// first so "parc." does not leave its digits behind.
var installmentMarkers = []*regexp.Regexp{
	regexp.MustCompile(`\bparcela\s*\d+(?:\s*/\s*\d+)?`),
	regexp.MustCompile(`\bparc\.?\s*\d+(?:\s*/\s*\d+)?`),
	regexp.MustCompile(`\b\d+ª\s*de\s*\d+`),
	regexp.MustCompile(`[(\[]\s*\d+\s*/\s*\d+\s*[)\]]`),
	regexp.MustCompile(`\b\d+\s*/\s*\d+\b`),
}

var (
	nonWord    = regexp.MustCompile(`[^a-z0-9 ]+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// stopWords are Portuguese prepositions/conjunctions excluded from keyword
// tokenization. Words of length <= 2 are dropped before this check.
var stopWords = map[string]struct{}{
	"das": {}, "dos": {}, "com": {}, "para": {}, "por": {},
	"nas": {}, "nos": {}, "sem": {}, "sob": {}, "uma": {},
	"pela": {}, "pelo": {}, "que": {}, "mas": {}, "aos": {},
}

// NormalizeDescription produces the canonical matching key for a
// description: lowercased, diacritics folded, installment markers and
// punctuation stripped, whitespace collapsed.
func NormalizeDescription(description string) string {
	s := strings.ToLower(common.FoldDiacritics(description))
	for _, marker := range installmentMarkers {
		s = marker.ReplaceAllString(s, " ")
	}
	s = nonWord.ReplaceAllString(s, " ")
	s = whitespace.ReplaceAllString(strings.TrimSpace(s), " ")
	return s
}

// Tokenize splits a normalized description into matching keywords: unique
// tokens longer than two characters that are not stop words.
func Tokenize(normalized string) []string {
	fields := strings.Fields(normalized)
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) <= 2 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return tokens
}
