// Package model defines the item record that flows through every pipeline
// stage and the derived review/duplicate types.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Canonical PMS column headers. These exact strings are the JSON keys on the
// wire to the standardization endpoint and the column headers in the export.
const (
	FieldMatchPercent     = "Match %"
	FieldRemarks          = "Remarks"
	FieldSupplierItemName = "Supplier Item Name"
	FieldSupplierItemCode = "Supplier Item Code"
	FieldSupplierName     = "Supplier Name"
	FieldBuyingUnit       = "Buying Unit"
	FieldPricePerUnit     = "Price Per Buying Unit"
	FieldBaseItemName     = "Base Item / Ingredient Name"
	FieldMainCategory     = "Main Category"
	FieldSubCategory      = "Sub Category"
	FieldBaseUnit         = "Base Unit (Kg / L / Piece)"
	FieldQtyInBasePkg     = "Qty in Base Packaging"
	FieldPackageName      = "Package Name"
	FieldBasePkgMult      = "Base Package Multiplier"
	FieldLargerPackage    = "Larger Package Name"
	FieldBiggerPackaging  = "Bigger Packaging"
	FieldParLevel         = "Par Level"
	FieldMinLevel         = "Min Level"
	FieldTaxable          = "Is Item Taxable?"
	FieldPrepWastage      = "Base Item Prep Wastage (%)"
	FieldAffectsCOGS      = "Affects COGS (Yes/No)"
)

// Severity tokens the oracle embeds in the remarks field.
const (
	SeverityCritical = "CRITICAL"
	SeverityError    = "ERROR"
	SeverityWarning  = "WARNING"
)

// ItemRecord is one line item at any pipeline stage. The canonical PMS
// fields are typed; columns outside the canonical schema ride along in
// Extra. Index is the record's stable position in the original input
// sequence, assigned once at pipeline entry and never recomputed. Review and
// duplicate back-references join on it.
type ItemRecord struct {
	Match            any    // confidence score 0-100; nil until standardized
	Remarks          string
	SupplierItemName string
	SupplierItemCode string
	SupplierName     string
	BuyingUnit       string
	PricePerUnit     any
	BaseItemName     string
	MainCategory     string
	SubCategory      string
	BaseUnit         string // one of "Kg", "L", "Piece" after standardization
	QtyInBasePkg     any
	PackageName      string
	BasePkgMult      any
	LargerPackage    string
	BiggerPackaging  string
	ParLevel         any
	MinLevel         any
	Taxable          string // "Yes" / "No"
	PrepWastage      any
	AffectsCOGS      string

	Index int
	Extra map[string]any
}

// Confidence returns the match score as a float. A missing or unparseable
// value reads as 100 (fully confident), so only explicit low scores flag a
// row for review.
func (r ItemRecord) Confidence() float64 {
	if v, ok := toFloat(r.Match); ok {
		return v
	}
	return 100
}

// HasSeverity reports whether the remarks contain the given severity token,
// case-insensitively.
func (r ItemRecord) HasSeverity(token string) bool {
	return strings.Contains(strings.ToUpper(r.Remarks), strings.ToUpper(token))
}

// canonicalStrings maps header name to accessor for the string-typed fields.
func (r ItemRecord) canonicalStrings() []struct {
	key string
	val string
} {
	return []struct {
		key string
		val string
	}{
		{FieldRemarks, r.Remarks},
		{FieldSupplierItemName, r.SupplierItemName},
		{FieldSupplierItemCode, r.SupplierItemCode},
		{FieldSupplierName, r.SupplierName},
		{FieldBuyingUnit, r.BuyingUnit},
		{FieldBaseItemName, r.BaseItemName},
		{FieldMainCategory, r.MainCategory},
		{FieldSubCategory, r.SubCategory},
		{FieldBaseUnit, r.BaseUnit},
		{FieldPackageName, r.PackageName},
		{FieldLargerPackage, r.LargerPackage},
		{FieldBiggerPackaging, r.BiggerPackaging},
		{FieldTaxable, r.Taxable},
		{FieldAffectsCOGS, r.AffectsCOGS},
	}
}

// canonicalValues maps header name to accessor for the loosely typed fields.
func (r ItemRecord) canonicalValues() []struct {
	key string
	val any
} {
	return []struct {
		key string
		val any
	}{
		{FieldMatchPercent, r.Match},
		{FieldPricePerUnit, r.PricePerUnit},
		{FieldQtyInBasePkg, r.QtyInBasePkg},
		{FieldBasePkgMult, r.BasePkgMult},
		{FieldParLevel, r.ParLevel},
		{FieldMinLevel, r.MinLevel},
		{FieldPrepWastage, r.PrepWastage},
	}
}

// Columns flattens the record into a map keyed by the canonical PMS headers
// plus any pass-through columns, with zero-valued canonical fields omitted.
func (r ItemRecord) Columns() map[string]any {
	m := make(map[string]any, len(r.Extra)+21)
	for k, v := range r.Extra {
		m[k] = Sanitize(v)
	}
	for _, f := range r.canonicalStrings() {
		if f.val != "" {
			m[f.key] = f.val
		}
	}
	for _, f := range r.canonicalValues() {
		if f.val != nil {
			m[f.key] = Sanitize(f.val)
		}
	}
	return m
}

// MarshalJSON emits the record as a flat object keyed by the canonical PMS
// headers plus any pass-through columns. Zero-valued canonical fields are
// omitted so raw (pre-standardization) records serialize with only the
// columns they actually carry. All values are reduced to plain JSON types.
func (r ItemRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Columns())
}

// UnmarshalJSON fills the canonical fields from their header keys and routes
// everything else into Extra. Numbers are preserved as json.Number so
// integer confidence scores survive round-tripping.
func (r *ItemRecord) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil {
		return err
	}

	r.Match = takeValue(m, FieldMatchPercent)
	r.Remarks = takeString(m, FieldRemarks)
	r.SupplierItemName = takeString(m, FieldSupplierItemName)
	r.SupplierItemCode = takeString(m, FieldSupplierItemCode)
	r.SupplierName = takeString(m, FieldSupplierName)
	r.BuyingUnit = takeString(m, FieldBuyingUnit)
	r.PricePerUnit = takeValue(m, FieldPricePerUnit)
	r.BaseItemName = takeString(m, FieldBaseItemName)
	r.MainCategory = takeString(m, FieldMainCategory)
	r.SubCategory = takeString(m, FieldSubCategory)
	r.BaseUnit = takeString(m, FieldBaseUnit)
	r.QtyInBasePkg = takeValue(m, FieldQtyInBasePkg)
	r.PackageName = takeString(m, FieldPackageName)
	r.BasePkgMult = takeValue(m, FieldBasePkgMult)
	r.LargerPackage = takeString(m, FieldLargerPackage)
	r.BiggerPackaging = takeString(m, FieldBiggerPackaging)
	r.ParLevel = takeValue(m, FieldParLevel)
	r.MinLevel = takeValue(m, FieldMinLevel)
	r.Taxable = takeString(m, FieldTaxable)
	r.PrepWastage = takeValue(m, FieldPrepWastage)
	r.AffectsCOGS = takeString(m, FieldAffectsCOGS)

	if len(m) > 0 {
		r.Extra = m
	}
	return nil
}

func takeString(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	delete(m, key)
	return CoerceString(v)
}

func takeValue(m map[string]any, key string) any {
	v, ok := m[key]
	if !ok {
		return nil
	}
	delete(m, key)
	return v
}

// CoerceString converts a loosely typed cell value to its string form.
func CoerceString(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case json.Number:
		return s.String()
	default:
		return fmt.Sprintf("%v", s)
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Sanitize recursively reduces a value to plain JSON types: strings,
// numbers, booleans, nulls; times become ISO-8601 strings. Anything else is
// stringified.
func Sanitize(v any) any {
	switch t := v.(type) {
	case nil, bool, string, int, int64, float64, float32, json.Number:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Sanitize(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = Sanitize(vv)
		}
		return out
	default:
		return fmt.Sprintf("%v", t)
	}
}
