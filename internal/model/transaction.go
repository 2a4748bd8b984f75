package model

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single statement line from any source.
type Transaction struct {
	Date        time.Time
	ImportedAt  time.Time
	Installment *Installment
	Description string
	Category    string
	SourceID    string
	OriginLabel string // which physical card/account this came from
	Fingerprint string
	Amount      decimal.Decimal
}

// Installment carries the position of a transaction within an installment
// plan. Current and Total are always set together.
type Installment struct {
	Current int
	Total   int
}

// IsInstallment reports whether the transaction is part of an installment plan.
func (t *Transaction) IsInstallment() bool {
	return t.Installment != nil
}

// Fingerprint computes the content hash used for duplicate detection and as
// the transaction's stable identity. Fields are joined exactly as stored;
// whitespace or formatting drift between re-imports will not deduplicate.
func Fingerprint(date time.Time, description string, amount decimal.Decimal, sourceID, originLabel string) string {
	key := strings.Join([]string{
		date.Format("02/01/2006"),
		description,
		amount.StringFixed(2),
		sourceID,
		originLabel,
	}, "|")
	sum := sha256.Sum256([]byte(key))
	return fmt.Sprintf("%x", sum)
}

// GenerateFingerprint computes and returns the fingerprint for this transaction.
func (t *Transaction) GenerateFingerprint() string {
	return Fingerprint(t.Date, t.Description, t.Amount, t.SourceID, t.OriginLabel)
}
