// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/faturaflow/faturaflow/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	Origin string // exact origin-label match, empty for all
	Search string // substring match on description, category, or source
	Limit  int
}

// SaveReport summarizes a persistence run: how many transactions were new
// and how many were already known by fingerprint.
type SaveReport struct {
	Saved      int
	Duplicates int
}

// Statistics aggregates the stored transaction set.
type Statistics struct {
	BySource     map[string]int
	ByCategory   map[string]int
	ByOrigin     map[string]int
	TotalAmount  decimal.Decimal
	Total        int
	Installments int
}

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) (*SaveReport, error)
	GetTransactionByFingerprint(ctx context.Context, fingerprint string) (*model.Transaction, error)
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	UpdateTransactionCategory(ctx context.Context, fingerprint, category string) error
	GetStatistics(ctx context.Context) (*Statistics, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// PatternRepository is the capability the learned classifier consumes. Any
// backing store may implement it; Upsert must be an atomic
// increment-on-conflict so concurrent corrections never lose updates.
type PatternRepository interface {
	// ExactLookup returns the highest-usage pattern recorded for a
	// normalized description, or common.ErrNotFound.
	ExactLookup(ctx context.Context, normalizedDescription string) (*model.CategoryPattern, error)
	// KeywordLookup returns up to limit patterns whose normalized
	// description contains keyword, ordered by descending usage count.
	KeywordLookup(ctx context.Context, keyword string, limit int) ([]model.CategoryPattern, error)
	// Upsert creates a (normalizedDescription, category) pattern with usage
	// count 1, or atomically increments an existing one and refreshes its
	// last-used timestamp. Returns the resulting pattern.
	Upsert(ctx context.Context, normalizedDescription, category string) (*model.CategoryPattern, error)
	// ListPatterns returns up to limit patterns by descending usage count.
	ListPatterns(ctx context.Context, limit int) ([]model.CategoryPattern, error)
}
