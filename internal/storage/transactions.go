package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/faturaflow/faturaflow/internal/common"
	"github.com/faturaflow/faturaflow/internal/model"
	"github.com/faturaflow/faturaflow/internal/service"
)

const transactionColumns = `fingerprint, date, description, amount,
	installment_current, installment_total, category, source_id,
	origin_label, imported_at`

// SaveTransactions persists transactions, deduplicating by fingerprint.
// Already-known fingerprints are counted as duplicates, not errors.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (*service.SaveReport, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	report := &service.SaveReport{}
	for i := range transactions {
		txn := &transactions[i]
		if txn.Fingerprint == "" {
			txn.Fingerprint = txn.GenerateFingerprint()
		}

		var current, total any
		if txn.Installment != nil {
			current = txn.Installment.Current
			total = txn.Installment.Total
		}

		result, execErr := stmt.ExecContext(ctx,
			txn.Fingerprint, txn.Date, txn.Description, txn.Amount.StringFixed(2),
			current, total, txn.Category, txn.SourceID,
			txn.OriginLabel, txn.ImportedAt,
		)
		if execErr != nil {
			return nil, fmt.Errorf("failed to insert transaction: %w", execErr)
		}

		rows, raErr := result.RowsAffected()
		if raErr != nil {
			return nil, fmt.Errorf("failed to get rows affected: %w", raErr)
		}
		if rows == 0 {
			report.Duplicates++
		} else {
			report.Saved++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}

	slog.Info("saved transactions", "saved", report.Saved, "duplicates", report.Duplicates)
	return report, nil
}

// GetTransactionByFingerprint retrieves one transaction by its fingerprint.
func (s *SQLiteStorage) GetTransactionByFingerprint(ctx context.Context, fingerprint string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(fingerprint, "fingerprint"); err != nil {
		return nil, err
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE fingerprint = ?`, fingerprint)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", fingerprint, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}
	return txn, nil
}

// GetTransactions returns stored transactions, newest imports first,
// optionally filtered by origin label and a description/category/source
// search term.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE 1=1`
	args := make([]any, 0, 4)

	if filter.Origin != "" {
		query += ` AND origin_label = ?`
		args = append(args, filter.Origin)
	}
	if filter.Search != "" {
		query += ` AND (description LIKE ? OR category LIKE ? OR source_id LIKE ?)`
		like := "%" + filter.Search + "%"
		args = append(args, like, like, like)
	}

	query += ` ORDER BY imported_at DESC, date DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("failed to close rows", "error", closeErr)
		}
	}()

	var transactions []model.Transaction
	for rows.Next() {
		txn, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", scanErr)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// UpdateTransactionCategory reassigns a stored transaction's category.
func (s *SQLiteStorage) UpdateTransactionCategory(ctx context.Context, fingerprint, category string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(fingerprint, "fingerprint"); err != nil {
		return err
	}
	if !model.ValidCategory(category) {
		return fmt.Errorf("unknown category %q", category)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE transactions SET category = ? WHERE fingerprint = ?`,
		category, fingerprint)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("transaction %s: %w", fingerprint, common.ErrNotFound)
	}

	slog.Info("updated transaction category", "fingerprint", fingerprint, "category", category)
	return nil
}

// GetStatistics aggregates the stored transaction set.
func (s *SQLiteStorage) GetStatistics(ctx context.Context) (*service.Statistics, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	stats := &service.Statistics{
		BySource:    make(map[string]int),
		ByCategory:  make(map[string]int),
		ByOrigin:    make(map[string]int),
		TotalAmount: decimal.Zero,
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT amount, installment_current, category, source_id, origin_label
		FROM transactions`)
	if err != nil {
		return nil, fmt.Errorf("failed to query statistics: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			slog.Error("failed to close rows", "error", closeErr)
		}
	}()

	for rows.Next() {
		var (
			amountText string
			current    sql.NullInt64
			category   string
			sourceID   string
			origin     string
		)
		if scanErr := rows.Scan(&amountText, &current, &category, &sourceID, &origin); scanErr != nil {
			return nil, fmt.Errorf("failed to scan statistics row: %w", scanErr)
		}

		amount, parseErr := decimal.NewFromString(amountText)
		if parseErr != nil {
			return nil, fmt.Errorf("corrupt amount %q: %w", amountText, parseErr)
		}

		stats.Total++
		stats.TotalAmount = stats.TotalAmount.Add(amount)
		stats.BySource[sourceID]++
		stats.ByCategory[category]++
		stats.ByOrigin[origin]++
		if current.Valid {
			stats.Installments++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating statistics: %w", err)
	}

	return stats, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var (
		txn        model.Transaction
		amountText string
		current    sql.NullInt64
		total      sql.NullInt64
	)

	err := row.Scan(
		&txn.Fingerprint, &txn.Date, &txn.Description, &amountText,
		&current, &total, &txn.Category, &txn.SourceID,
		&txn.OriginLabel, &txn.ImportedAt,
	)
	if err != nil {
		return nil, err
	}

	amount, err := decimal.NewFromString(amountText)
	if err != nil {
		return nil, fmt.Errorf("corrupt amount %q: %w", amountText, err)
	}
	txn.Amount = amount

	if current.Valid && total.Valid {
		txn.Installment = &model.Installment{
			Current: int(current.Int64),
			Total:   int(total.Int64),
		}
	}

	return &txn, nil
}
