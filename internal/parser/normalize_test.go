package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/faturaflow/faturaflow/internal/grammar"
)

func fixedClock() time.Time {
	return time.Date(2025, 8, 23, 12, 0, 0, 0, time.UTC)
}

func mustGrammar(t *testing.T, sourceID string) *grammar.Grammar {
	t.Helper()
	g, ok := grammar.MustDefaultRegistry().Lookup(sourceID)
	require.True(t, ok)
	return g
}

func TestParseCurrency(t *testing.T) {
	n := NewNormalizerAt(fixedClock)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "brazilian thousands and decimal", input: "R$ 1.234,56", want: "1234.56"},
		{name: "comma decimal only", input: "45,80", want: "45.8"},
		{name: "symbol and spaces", input: "R$   25,50", want: "25.5"},
		{name: "plain integer", input: "120", want: "120"},
		{name: "dot decimal untouched", input: "32.90", want: "32.9"},
		{name: "empty string", input: "", want: "0"},
		{name: "garbage", input: "abc", want: "0"},
		{name: "lone symbol", input: "R$", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.ParseCurrency(tt.input)
			assert.Equal(t, tt.want, got.String())
			assert.False(t, got.IsNegative())
		})
	}
}

func TestParseCurrencyAlwaysTwoDigitPrecision(t *testing.T) {
	n := NewNormalizerAt(fixedClock)

	assert.Equal(t, "1234.56", n.ParseCurrency("R$ 1.234,56").StringFixed(2))
	assert.Equal(t, "45.80", n.ParseCurrency("45,80").StringFixed(2))
	assert.Equal(t, "0.00", n.ParseCurrency("not a number").StringFixed(2))
	// Over-precise input is rounded, not truncated.
	assert.Equal(t, "10.35", n.ParseCurrency("10.345").StringFixed(2))
}

func TestParseDateWithYear(t *testing.T) {
	n := NewNormalizerAt(fixedClock)

	itau := mustGrammar(t, "itau")
	got := n.ParseDate("15/01/2024", itau)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)

	santander := mustGrammar(t, "santander")
	got = n.ParseDate("15/01/24", santander)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateAssumesCurrentYear(t *testing.T) {
	n := NewNormalizerAt(fixedClock)
	nubank := mustGrammar(t, "nubank")

	got := n.ParseDate("29/06", nubank)
	assert.Equal(t, time.Date(2025, 6, 29, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDateTransliteratesMonths(t *testing.T) {
	n := NewNormalizerAt(fixedClock)

	tests := []struct {
		name   string
		source string
		input  string
		want   time.Time
	}{
		{name: "btg january", source: "btg", input: "15 jan", want: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)},
		{name: "btg february pt abbreviation", source: "btg", input: "03 fev", want: time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC)},
		{name: "btg december", source: "btg", input: "25 dez", want: time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC)},
		{name: "unicred single-digit day", source: "unicred", input: "2/ago", want: time.Date(2025, 8, 2, 0, 0, 0, 0, time.UTC)},
		{name: "c6 september", source: "c6", input: "9 set", want: time.Date(2025, 9, 9, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.ParseDate(tt.input, mustGrammar(t, tt.source))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateFallsBackToNow(t *testing.T) {
	n := NewNormalizerAt(fixedClock)
	nubank := mustGrammar(t, "nubank")

	got := n.ParseDate("not a date at all", nubank)
	assert.Equal(t, fixedClock(), got)
}
