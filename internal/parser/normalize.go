package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	"github.com/faturaflow/faturaflow/internal/grammar"
)

// monthTables transliterate source-locale month abbreviations into tokens
// time.Parse understands. Table-driven so new source locales only add an
// entry here, not date-parser changes.
var monthTables = map[string]map[string]string{
	"pt-BR": {
		"jan": "Jan", "fev": "Feb", "mar": "Mar", "abr": "Apr",
		"mai": "May", "jun": "Jun", "jul": "Jul", "ago": "Aug",
		"set": "Sep", "out": "Oct", "nov": "Nov", "dez": "Dec",
	},
}

var currencyJunk = regexp.MustCompile(`[R$\s]`)

// Normalizer parses date and currency substrings into canonical types.
// Parsing never fails: dates degrade to a free-form parse and finally to
// "now", amounts degrade to zero.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer creates a normalizer using the wall clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewNormalizerAt creates a normalizer with a fixed clock, for tests and
// replayed imports.
func NewNormalizerAt(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// ParseDate parses dateText using the grammar's layout. Layouts without a
// year assume the current calendar year. Month abbreviations are
// transliterated from the grammar's locale first. Failing the layout, a
// free-form parse is attempted; failing that, the current time is returned.
func (n *Normalizer) ParseDate(dateText string, g *grammar.Grammar) time.Time {
	value := strings.TrimSpace(dateText)
	layout := g.DateFormat

	if strings.Contains(layout, "Jan") {
		value = transliterateMonth(value, g.Locale)
	}

	// Layouts like "02/01" carry no year ("06" covers both two- and
	// four-digit layouts); assume the current one.
	if !strings.Contains(layout, "06") {
		value = value + "/" + strconv.Itoa(n.now().Year())
		layout = layout + "/2006"
	}

	if t, err := time.Parse(layout, value); err == nil {
		return t
	}
	if t, err := dateparse.ParseAny(dateText); err == nil {
		return t
	}
	return n.now()
}

// ParseCurrency converts a currency substring to a non-negative amount with
// two-digit precision. A lone comma is the decimal separator; when both
// comma and dot appear the dot is a thousands separator ("1.234,56" ->
// 1234.56). Malformed input parses to zero.
func (n *Normalizer) ParseCurrency(amountText string) decimal.Decimal {
	clean := currencyJunk.ReplaceAllString(amountText, "")

	hasComma := strings.Contains(clean, ",")
	hasDot := strings.Contains(clean, ".")
	switch {
	case hasComma && !hasDot:
		clean = strings.ReplaceAll(clean, ",", ".")
	case hasComma && hasDot:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero
	}
	return d.Abs().Round(2)
}

func transliterateMonth(value, locale string) string {
	table, ok := monthTables[locale]
	if !ok {
		return value
	}
	lower := strings.ToLower(value)
	for pt, en := range table {
		if strings.Contains(lower, pt) {
			return strings.Replace(lower, pt, en, 1)
		}
	}
	return value
}
