package pms

import (
	"fmt"

	"github.com/supy-ops/pms-converter/internal/tax"
)

const promptTemplate = `You are a specialized F&B data standardization engine.

CONTEXT:
- Region: %s
- Currency: %s
- Tax Rate: %s%%
- Translation Mode: %s

TASK:
You will receive a JSON object with an "items" array of raw invoice line items.
Standardize every item into the PMS format below.

CATEGORY TAXONOMY (Main Category: Sub Categories):
%s
OUTPUT SCHEMA (JSON array of objects, one per input item, same order):
[
  {
    "Match %%": integer (0-100 confidence),
    "Remarks": "string (CRITICAL/ERROR/WARNING/INFO)",
    "Supplier Item Name": "original string",
    "Supplier Item Code": "original string",
    "Supplier Name": "original string",
    "Buying Unit": "original string",
    "Price Per Buying Unit": number,
    "Base Item / Ingredient Name": "Cleaned Name",
    "Main Category": "FOOD/BEVERAGES/NON FOOD",
    "Sub Category": "string from taxonomy",
    "Base Unit (Kg / L / Piece)": "Kg/L/Piece",
    "Qty in Base Packaging": number,
    "Package Name": "Bottle/Can/Box/Bag/Case/etc or empty",
    "Base Package Multiplier": number or null,
    "Larger Package Name": "string or empty",
    "Bigger Packaging": "string or empty",
    "Par Level": null,
    "Min Level": null,
    "Is Item Taxable?": "Yes/No",
    "Base Item Prep Wastage (%%)": null,
    "Affects COGS (Yes/No)": "Yes"
  }
]

STRICT STANDARDIZATION RULES:

1. Base Item Name Cleaning:
   - For FOOD: remove brands, origins, grades, and packaging sizes. Keep it generic (3-5 words).
     - "Fresh USA Strawberry Grade A 250g" -> "Strawberry Fresh"
     - "Kikkoman Soy Sauce 1L" -> "Soy Sauce"
   - For ALCOHOL: keep brand, vintage, and type.
     - "Heineken Beer" -> "Heineken Beer"
     - "Chateau Margaux 2015" -> "Chateau Margaux 2015"

2. Unit Standardization:
   - "Base Unit" must ONLY be: "Kg" (solids), "L" (liquids), or "Piece" (everything else).
   - Convert grams to Kg (500g -> 0.5 Kg).
   - Convert ml to L (750ml -> 0.75 L).

3. Package Name:
   - Must be a physical container type (Bottle, Can, Jar, Tin, Bag, Box, Case, Tub).
   - NEVER use a unit of measure (Kg, L, ml) as a Package Name.

4. Taxability:
   - %s
   - Alcohol and non-food items are always "Yes".

5. Remarks & Scoring:
   - If information is missing (e.g. no price), set "Remarks" to "CRITICAL: Missing Price".
   - If a unit is ambiguous, set "Remarks" to "WARNING: Check Unit".
   - "Match %%": start at 100. Deduct 10 for each warning, 30 for each critical error.

Process the input array and return ONLY the JSON array.`

// StandardizationPrompt renders the system prompt for one standardization
// call, embedding the country tax context and translation mode.
func StandardizationPrompt(country tax.Country, translate bool) string {
	translation := "Keep original language"
	if translate {
		translation = "Translate all foreign text to English"
	}

	taxRule := fmt.Sprintf(`Food items in %s are taxed at the standard rate; set "Is Item Taxable?" to "Yes" for food.`, country.Name)
	if country.FoodExempt {
		taxRule = fmt.Sprintf(`%s exempts food from tax; set "Is Item Taxable?" to "No" for food items.`, country.Name)
	}

	return fmt.Sprintf(promptTemplate,
		country.Name,
		country.Currency,
		formatRate(country.Rate),
		translation,
		renderTaxonomy(),
		taxRule,
	)
}

// formatRate prints tax rates without a trailing ".0" for whole numbers.
func formatRate(rate float64) string {
	if rate == float64(int64(rate)) {
		return fmt.Sprintf("%d", int64(rate))
	}
	return fmt.Sprintf("%.1f", rate)
}
