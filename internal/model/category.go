// Package model defines the core domain types shared across the application.
package model

// CategoryOther is the fallback category for transactions no keyword or
// learned pattern could place.
const CategoryOther = "outros"

// Categories lists every category a transaction can be assigned to.
var Categories = []string{
	"alimentacao",
	"transporte",
	"saude",
	"compras",
	"servicos",
	CategoryOther,
}

// ValidCategory reports whether name is one of the known categories.
func ValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}
