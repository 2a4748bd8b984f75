// Package engine orchestrates the ingestion pipeline: detect the source
// format, extract raw matches, normalize fields, detect installments,
// classify, and fingerprint.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/faturaflow/faturaflow/internal/classify"
	"github.com/faturaflow/faturaflow/internal/common"
	"github.com/faturaflow/faturaflow/internal/grammar"
	"github.com/faturaflow/faturaflow/internal/model"
	"github.com/faturaflow/faturaflow/internal/parser"
)

// DefaultLearnedThreshold is the minimum learned-match confidence applied
// when the keyword stage produced "outros".
const DefaultLearnedThreshold = 0.7

// Result is the outcome of analyzing one document.
type Result struct {
	SourceID     string
	Transactions []model.Transaction
	Skipped      int // matches dropped by the noise filter or per-match errors
}

// Option configures an Engine.
type Option func(*Engine)

// WithLearnedMatcher enables the adaptive classification stage.
func WithLearnedMatcher(m *classify.Matcher) Option {
	return func(e *Engine) { e.matcher = m }
}

// WithLearnedThreshold overrides the acceptance threshold for learned matches.
func WithLearnedThreshold(threshold float64) Option {
	return func(e *Engine) { e.learnedThreshold = threshold }
}

// WithClock fixes the engine's notion of "now" (current-year date
// assumption, import timestamps). Used by tests and replayed imports.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
		e.normalizer = parser.NewNormalizerAt(now)
	}
}

// Engine is the statement ingestion pipeline. It holds no mutable state of
// its own; documents may be analyzed concurrently.
type Engine struct {
	registry         *grammar.Registry
	detector         *parser.Detector
	extractor        *parser.Extractor
	normalizer       *parser.Normalizer
	matcher          *classify.Matcher
	now              func() time.Time
	learnedThreshold float64
}

// New creates an engine over the given grammar registry.
func New(registry *grammar.Registry, opts ...Option) *Engine {
	e := &Engine{
		registry:         registry,
		detector:         parser.NewDetector(registry),
		extractor:        parser.NewExtractor(),
		normalizer:       parser.NewNormalizer(),
		now:              time.Now,
		learnedThreshold: DefaultLearnedThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Analyze converts one document's extracted text into transaction records.
// originLabel tags which physical card/account the document belongs to and
// participates in each transaction's fingerprint.
//
// Empty text returns common.ErrEmptyText. A grammar that matches nothing
// returns common.ErrNoTransactions: a statement with literally no
// transactions is indistinguishable from a wrong grammar, so it is surfaced
// rather than swallowed. Individual malformed matches are logged and
// skipped, never fatal.
func (e *Engine) Analyze(ctx context.Context, text, originLabel string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrEmptyText
	}

	sourceID := e.detector.Detect(text)
	g, ok := e.registry.Lookup(sourceID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", common.ErrUnknownSource, sourceID)
	}

	raw := e.extractor.Extract(text, g)
	slog.Debug("extracted raw matches", "source", sourceID, "matches", len(raw))

	result := &Result{SourceID: sourceID}
	importedAt := e.now()

	for _, match := range raw {
		if g.IsNoise(match.DescriptionText) {
			slog.Debug("dropping noise artifact", "source", sourceID, "text", match.DescriptionText)
			result.Skipped++
			continue
		}

		txn, err := e.processMatch(ctx, match, g, originLabel, importedAt)
		if err != nil {
			slog.Warn("skipping malformed transaction",
				"source", sourceID,
				"description", match.DescriptionText,
				"error", err)
			result.Skipped++
			continue
		}
		result.Transactions = append(result.Transactions, *txn)
	}

	if len(result.Transactions) == 0 {
		return nil, fmt.Errorf("%w: source %s", common.ErrNoTransactions, sourceID)
	}

	return result, nil
}

// processMatch normalizes, classifies, and fingerprints a single raw match.
func (e *Engine) processMatch(ctx context.Context, match parser.RawMatch, g *grammar.Grammar, originLabel string, importedAt time.Time) (*model.Transaction, error) {
	description := strings.TrimSpace(match.DescriptionText)
	if description == "" {
		return nil, fmt.Errorf("empty description")
	}

	txn := &model.Transaction{
		Date:        e.normalizer.ParseDate(match.DateText, g),
		Description: description,
		Amount:      e.normalizer.ParseCurrency(match.AmountText),
		Installment: parser.ParseInstallment(description, g),
		SourceID:    g.SourceID,
		OriginLabel: originLabel,
		ImportedAt:  importedAt,
	}

	txn.Category = classify.ClassifyByKeyword(description, g)
	if txn.Category == model.CategoryOther && e.matcher != nil {
		learned, err := e.matcher.Match(ctx, description)
		switch {
		case err != nil:
			// Repository trouble never costs us the transaction.
			slog.Warn("learned match failed", "description", description, "error", err)
		case learned.Found && learned.Confidence > e.learnedThreshold:
			txn.Category = learned.Category
			slog.Debug("applied learned category",
				"description", description,
				"category", learned.Category,
				"confidence", learned.Confidence,
				"match_type", learned.MatchType)
		}
	}

	txn.Fingerprint = txn.GenerateFingerprint()
	return txn, nil
}
