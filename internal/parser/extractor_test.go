package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractDocumentOrder(t *testing.T) {
	e := NewExtractor()
	nubank := mustGrammar(t, "nubank")

	text := `Nubank fatura
15/01 UBER TRIP SAO PAULO R$ 25,50
16/01 IFOOD DELIVERY 2/6 R$ 45,80
17/01 POSTO SHELL BR R$ 120,00
`

	matches := e.Extract(text, nubank)
	require.Len(t, matches, 3)

	assert.Equal(t, RawMatch{DateText: "15/01", DescriptionText: "UBER TRIP SAO PAULO", AmountText: "R$ 25,50"}, matches[0])
	assert.Equal(t, RawMatch{DateText: "16/01", DescriptionText: "IFOOD DELIVERY 2/6", AmountText: "R$ 45,80"}, matches[1])
	assert.Equal(t, RawMatch{DateText: "17/01", DescriptionText: "POSTO SHELL BR", AmountText: "R$ 120,00"}, matches[2])
}

func TestExtractCaseInsensitive(t *testing.T) {
	e := NewExtractor()
	btg := mustGrammar(t, "btg")

	matches := e.Extract("15 JAN restaurante california r$ 89,90", btg)
	require.Len(t, matches, 1)
	assert.Equal(t, "15 JAN", matches[0].DateText)
	assert.Equal(t, "restaurante california", matches[0].DescriptionText)
}

func TestExtractAnchoredPattern(t *testing.T) {
	e := NewExtractor()
	c6 := mustGrammar(t, "c6")

	// The c6 pattern anchors the amount at end of line; multiline text must
	// still produce one match per line.
	text := "16 jan IFOOD DELIVERY - Parcela 2/6 45,80\n17 jan POSTO SHELL 120,00\n"
	matches := e.Extract(text, c6)
	require.Len(t, matches, 2)
	assert.Equal(t, "45,80", matches[0].AmountText)
	assert.Equal(t, "120,00", matches[1].AmountText)
}

func TestExtractNoMatches(t *testing.T) {
	e := NewExtractor()
	nubank := mustGrammar(t, "nubank")

	assert.Empty(t, e.Extract("no transactions in here", nubank))
	assert.Empty(t, e.Extract("", nubank))
}
