package classify

import (
	"strings"

	"github.com/faturaflow/faturaflow/internal/grammar"
	"github.com/faturaflow/faturaflow/internal/model"
)

// ClassifyByKeyword is the deterministic first stage: it returns the first
// category in the grammar's keyword table (in table order) with a keyword
// contained in the lowercased description, or "outros".
func ClassifyByKeyword(description string, g *grammar.Grammar) string {
	lower := strings.ToLower(description)

	for _, group := range g.CategoryKeywords {
		for _, keyword := range group.Keywords {
			if strings.Contains(lower, keyword) {
				return group.Category
			}
		}
	}

	return model.CategoryOther
}
