package pms

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/supy-ops/pms-converter/internal/model"
)

// Column name candidates mapped onto the canonical supplier item name and
// unit price fields during homogenization. Supplier spreadsheets rarely
// agree on headers.
var (
	nameCandidates  = []string{"Description", "Item", "Product", "Product Name", "Item Name", "Material"}
	priceCandidates = []string{"Price", "Unit Price", "Cost", "Amount"}
)

// unitSpacing inserts a space between a number and a trailing unit
// ("5kg" -> "5 kg"), a common OCR artifact.
var unitSpacing = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)(kg|g|gm|l|ml|ltr|gram|oz|lb|pcs|pc)\b`)

var multiSpace = regexp.MustCompile(`\s+`)

// NormalizeSpacing fixes number/unit spacing and collapses repeated
// whitespace in OCR output.
func NormalizeSpacing(text string) string {
	text = unitSpacing.ReplaceAllString(text, "$1 $2")
	text = multiSpace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Homogenize maps known column-name variants in a raw record's extension
// bag onto the canonical fields the pipeline depends on, and cleans the
// supplier item name's spacing. Records whose canonical fields are already
// set pass through unchanged.
func Homogenize(rec model.ItemRecord) model.ItemRecord {
	if rec.SupplierItemName == "" {
		for _, key := range nameCandidates {
			if v, ok := rec.Extra[key]; ok {
				rec.SupplierItemName = model.CoerceString(v)
				delete(rec.Extra, key)
				break
			}
		}
	}
	if rec.PricePerUnit == nil {
		for _, key := range priceCandidates {
			if v, ok := rec.Extra[key]; ok {
				rec.PricePerUnit = v
				delete(rec.Extra, key)
				break
			}
		}
	}
	rec.SupplierItemName = NormalizeSpacing(rec.SupplierItemName)
	return rec
}

// Prepare homogenizes every record and stamps its stable positional index.
// Indices are assigned here, at pipeline entry, and are the join key for
// all downstream back-references.
func Prepare(records []model.ItemRecord) []model.ItemRecord {
	out := make([]model.ItemRecord, len(records))
	for i, rec := range records {
		rec = Homogenize(rec)
		rec.Index = i
		out[i] = rec
	}
	return out
}

// DetectLanguage identifies the dominant script of a text sample by Unicode
// ranges. Returns "English" when no non-Latin script matches.
func DetectLanguage(text string) string {
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			return "Chinese"
		case unicode.Is(unicode.Arabic, r):
			return "Arabic"
		case unicode.Is(unicode.Thai, r):
			return "Thai"
		case unicode.Is(unicode.Hiragana, r), unicode.Is(unicode.Katakana, r):
			return "Japanese"
		case unicode.Is(unicode.Hangul, r):
			return "Korean"
		case unicode.Is(unicode.Cyrillic, r):
			return "Russian"
		case unicode.Is(unicode.Devanagari, r):
			return "Hindi"
		case vietnameseRunes[r]:
			return "Vietnamese"
		}
	}
	return "English"
}

// DominantLanguage returns the most frequent detected language across a set
// of samples, used to suggest enabling the translation toggle.
func DominantLanguage(samples []string) string {
	counts := make(map[string]int)
	best, bestCount := "English", 0
	for _, s := range samples {
		lang := DetectLanguage(s)
		counts[lang]++
		if counts[lang] > bestCount {
			best, bestCount = lang, counts[lang]
		}
	}
	return best
}

var vietnameseRunes = func() map[rune]bool {
	m := make(map[rune]bool)
	for _, r := range "àáạảãâầấậẩẫăằắặẳẵèéẹẻẽêềếệểễìíịỉĩòóọỏõôồốộổỗơờớợởỡùúụủũưừứựửữỳýỵỷỹđ" {
		m[r] = true
		m[unicode.ToUpper(r)] = true
	}
	return m
}()
