package extract

import (
	"fmt"

	"github.com/supy-ops/pms-converter/internal/tax"
)

const promptTemplate = `You are an expert invoice data extraction engine for the F&B industry.

CURRENT REGION CONTEXT:
- Country: %s (%s)
- Standard Tax Rate: %.1f%%
- Food Items Tax Exempt: %t
- Local Currency: %s

YOUR MISSION:
Extract every single line item from the provided invoice document (image or PDF).

OUTPUT REQUIREMENTS:
Return a strictly valid JSON object. Do not include markdown code blocks. The JSON must follow this schema:
{
  "invoice_metadata": {
    "invoice_number": "string",
    "invoice_date": "YYYY-MM-DD",
    "supplier_name": "string",
    "total_amount": number
  },
  "line_items": [
    {
      "Supplier Item Name": "Exact text from invoice",
      "Supplier Item Code": "SKU or code if visible, else empty string",
      "Supplier Name": "Vendor Name",
      "Buying Unit": "Unit string (e.g., kg, case, box, ea)",
      "Price": number (unit price),
      "Discount": number (0 if none),
      "Tax Rate": number (percentage),
      "Page Number": integer
    }
  ]
}

LOGIC RULES:
1. Tax Logic:
   - %s
   - For non-food items (cleaning, packaging, alcohol), use the standard rate of %.1f%%.
   - If the invoice explicitly states a tax rate for a line, use that specific rate.
2. Data Cleaning:
   - Remove currency symbols from Price ('$10.00' -> 10.00).
   - Convert dates to ISO format (YYYY-MM-DD).
3. Completeness:
   - Do not summarize. Extract every single row.`

// invoicePrompt renders the extraction system prompt for one country.
func invoicePrompt(country tax.Country) string {
	foodRule := fmt.Sprintf("Food items in %s carry the standard rate unless the invoice says otherwise.", country.Name)
	if country.FoodExempt {
		foodRule = fmt.Sprintf("%s exempts food from tax: set 'Tax Rate' to 0 for all food ingredients.", country.Name)
	}
	return fmt.Sprintf(promptTemplate,
		country.Name, country.Code,
		country.Rate,
		country.FoodExempt,
		country.Currency,
		foodRule,
		country.Rate,
	)
}
