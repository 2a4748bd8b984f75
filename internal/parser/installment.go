package parser

import (
	"strconv"

	"github.com/faturaflow/faturaflow/internal/grammar"
	"github.com/faturaflow/faturaflow/internal/model"
)

// ParseInstallment searches description for the grammar's installment marker
// ("2/6", "PARC 2/6", "(2/6)", "- Parcela 2/6", ... depending on the
// source). Both integers are captured or the result is nil.
func ParseInstallment(description string, g *grammar.Grammar) *model.Installment {
	if g.InstallmentPattern == nil {
		return nil
	}

	m := g.InstallmentPattern.FindStringSubmatch(description)
	if m == nil {
		return nil
	}

	current, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	total, err := strconv.Atoi(m[2])
	if err != nil {
		return nil
	}

	return &model.Installment{Current: current, Total: total}
}
