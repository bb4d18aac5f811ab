package pms

import (
	"sort"
	"strings"
)

// Taxonomy is the fixed item category tree: main category to sub categories.
// The oracle must pick Main Category and Sub Category from this tree.
var Taxonomy = map[string][]string{
	"FOOD": {
		"DRY ITEMS",
		"DAIRY PRODUCTS",
		"FRUITS & VEGETABLES",
		"BEEF & SEAFOOD & POULTRY",
		"OILS & VINEGARS",
		"SAUCES & PASTES",
		"FROZEN FOOD",
	},
	"BEVERAGES": {
		"SOFT DRINKS",
		"ALCOHOL",
		"WATER",
		"JUICE",
		"COFFEE & TEA",
		"SYRUPS & MIXERS",
	},
	"NON FOOD": {
		"PACKAGING",
		"CLEANING",
		"KITCHEN SUPPLIES / DISPOSABLES",
		"OFFICE SUPPLIES",
		"MAINTENANCE",
	},
}

// renderTaxonomy flattens the category tree into prompt text, main
// categories in stable order.
func renderTaxonomy() string {
	mains := make([]string, 0, len(Taxonomy))
	for main := range Taxonomy {
		mains = append(mains, main)
	}
	sort.Strings(mains)

	var b strings.Builder
	for _, main := range mains {
		b.WriteString("- ")
		b.WriteString(main)
		b.WriteString(": ")
		b.WriteString(strings.Join(Taxonomy[main], ", "))
		b.WriteString("\n")
	}
	return b.String()
}
