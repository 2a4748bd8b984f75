package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/faturaflow/faturaflow/internal/common"
	"github.com/faturaflow/faturaflow/internal/model"
)

const patternColumns = `id, normalized_description, category, usage_count,
	confidence_seed, created_at, last_used_at`

// defaultConfidenceSeed is stored with newly learned patterns. It is the
// pattern's own prior; the matcher derives reported confidence from match
// type and score, not from this seed.
const defaultConfidenceSeed = 0.9

// ExactLookup returns the highest-usage learned pattern for a normalized
// description, or common.ErrNotFound.
func (s *SQLiteStorage) ExactLookup(ctx context.Context, normalizedDescription string) (*model.CategoryPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(normalizedDescription, "normalizedDescription"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+patternColumns+`
		FROM category_patterns
		WHERE normalized_description = ?
		ORDER BY usage_count DESC, last_used_at DESC
		LIMIT 1`, normalizedDescription)

	pattern, err := scanPattern(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("pattern %q: %w", normalizedDescription, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pattern: %w", err)
	}
	return pattern, nil
}

// KeywordLookup returns up to limit patterns whose normalized description
// contains keyword, by descending usage count.
func (s *SQLiteStorage) KeywordLookup(ctx context.Context, keyword string, limit int) ([]model.CategoryPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(keyword, "keyword"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+patternColumns+`
		FROM category_patterns
		WHERE normalized_description LIKE '%' || ? || '%'
		ORDER BY usage_count DESC, last_used_at DESC
		LIMIT ?`, keyword, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("failed to close rows", "error", closeErr)
		}
	}()

	var patterns []model.CategoryPattern
	for rows.Next() {
		pattern, scanErr := scanPattern(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", scanErr)
		}
		patterns = append(patterns, *pattern)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patterns: %w", err)
	}

	return patterns, nil
}

// Upsert creates a (normalizedDescription, category) pattern or atomically
// increments its usage count and refreshes its last-used timestamp. The
// increment happens inside a single statement so concurrent corrections of
// the same key never lose updates.
func (s *SQLiteStorage) Upsert(ctx context.Context, normalizedDescription, category string) (*model.CategoryPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(normalizedDescription, "normalizedDescription"); err != nil {
		return nil, err
	}
	if !model.ValidCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO category_patterns (normalized_description, category, usage_count, confidence_seed)
		VALUES (?, ?, 1, ?)
		ON CONFLICT(normalized_description, category)
		DO UPDATE SET usage_count = usage_count + 1, last_used_at = CURRENT_TIMESTAMP`,
		normalizedDescription, category, defaultConfidenceSeed)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert pattern: %w", err)
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+patternColumns+`
		FROM category_patterns
		WHERE normalized_description = ? AND category = ?`,
		normalizedDescription, category)

	pattern, err := scanPattern(row)
	if err != nil {
		return nil, fmt.Errorf("failed to read back pattern: %w", err)
	}

	slog.Debug("recorded category pattern",
		"description", normalizedDescription,
		"category", category,
		"usage_count", pattern.UsageCount)
	return pattern, nil
}

// ListPatterns returns up to limit learned patterns by descending usage.
func (s *SQLiteStorage) ListPatterns(ctx context.Context, limit int) ([]model.CategoryPattern, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+patternColumns+`
		FROM category_patterns
		ORDER BY usage_count DESC, last_used_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query patterns: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("failed to close rows", "error", closeErr)
		}
	}()

	var patterns []model.CategoryPattern
	for rows.Next() {
		pattern, scanErr := scanPattern(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", scanErr)
		}
		patterns = append(patterns, *pattern)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating patterns: %w", err)
	}

	return patterns, nil
}

func scanPattern(row rowScanner) (*model.CategoryPattern, error) {
	var pattern model.CategoryPattern
	err := row.Scan(
		&pattern.ID, &pattern.NormalizedDescription, &pattern.Category,
		&pattern.UsageCount, &pattern.ConfidenceSeed,
		&pattern.CreatedAt, &pattern.LastUsedAt,
	)
	if err != nil {
		return nil, err
	}
	return &pattern, nil
}
