package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFingerprint(t *testing.T) {
	base := Transaction{
		Date:        time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC),
		Description: "Disal Ecommerce - Parcela 7/7",
		Amount:      decimal.RequireFromString("51.82"),
		SourceID:    "nubank",
		OriginLabel: "principal",
	}

	tests := []struct {
		mutate   func(*Transaction)
		name     string
		wantSame bool
	}{
		{
			name:     "identical fields yield identical digest",
			mutate:   func(*Transaction) {},
			wantSame: true,
		},
		{
			name:     "different date changes digest",
			mutate:   func(txn *Transaction) { txn.Date = txn.Date.AddDate(0, 0, 1) },
			wantSame: false,
		},
		{
			name:     "different description changes digest",
			mutate:   func(txn *Transaction) { txn.Description = "Disal Ecommerce" },
			wantSame: false,
		},
		{
			name:     "different amount changes digest",
			mutate:   func(txn *Transaction) { txn.Amount = decimal.RequireFromString("51.83") },
			wantSame: false,
		},
		{
			name:     "different source changes digest",
			mutate:   func(txn *Transaction) { txn.SourceID = "itau" },
			wantSame: false,
		},
		{
			name:     "different origin label changes digest",
			mutate:   func(txn *Transaction) { txn.OriginLabel = "adicional" },
			wantSame: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := base
			tt.mutate(&other)

			got := other.GenerateFingerprint()
			want := base.GenerateFingerprint()

			assert.Len(t, got, 64)
			if tt.wantSame {
				assert.Equal(t, want, got)
			} else {
				assert.NotEqual(t, want, got)
			}
		})
	}
}

func TestFingerprintIgnoresNonIdentityFields(t *testing.T) {
	txn := Transaction{
		Date:        time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
		Description: "UBER TRIP SAO PAULO",
		Amount:      decimal.RequireFromString("25.50"),
		SourceID:    "nubank",
		OriginLabel: "principal",
	}
	before := txn.GenerateFingerprint()

	txn.Category = "transporte"
	txn.Installment = &Installment{Current: 2, Total: 6}
	txn.ImportedAt = time.Now()

	assert.Equal(t, before, txn.GenerateFingerprint())
}

func TestValidCategory(t *testing.T) {
	assert.True(t, ValidCategory("alimentacao"))
	assert.True(t, ValidCategory(CategoryOther))
	assert.False(t, ValidCategory("investimentos"))
	assert.False(t, ValidCategory(""))
}

func TestCategoryPatternValidate(t *testing.T) {
	valid := CategoryPattern{
		NormalizedDescription: "supermercado abc ltda",
		Category:              "alimentacao",
		UsageCount:            1,
		ConfidenceSeed:        0.9,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		mutate func(*CategoryPattern)
		name   string
	}{
		{name: "empty description", mutate: func(p *CategoryPattern) { p.NormalizedDescription = "" }},
		{name: "unknown category", mutate: func(p *CategoryPattern) { p.Category = "nope" }},
		{name: "zero usage count", mutate: func(p *CategoryPattern) { p.UsageCount = 0 }},
		{name: "confidence seed out of range", mutate: func(p *CategoryPattern) { p.ConfidenceSeed = 1.5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}
