// Package tax holds the country tax reference table used to drive
// taxability and currency context in extraction and standardization prompts.
package tax

import "sort"

// Country is one reference entry: standard VAT/GST rate, whether basic food
// items are exempt, and the local currency code.
type Country struct {
	Code       string
	Name       string
	Rate       float64
	FoodExempt bool
	Currency   string
}

// DefaultCode is the fallback region when a country code is unrecognized.
const DefaultCode = "AE"

var countries = map[string]Country{
	"AE": {Name: "UAE", Rate: 5, FoodExempt: true, Currency: "AED"},
	"AR": {Name: "Argentina", Rate: 21, FoodExempt: true, Currency: "ARS"},
	"AT": {Name: "Austria", Rate: 20, FoodExempt: true, Currency: "EUR"},
	"AU": {Name: "Australia", Rate: 10, FoodExempt: true, Currency: "AUD"},
	"BE": {Name: "Belgium", Rate: 21, FoodExempt: true, Currency: "EUR"},
	"BG": {Name: "Bulgaria", Rate: 20, FoodExempt: true, Currency: "BGN"},
	"BH": {Name: "Bahrain", Rate: 10, FoodExempt: true, Currency: "BHD"},
	"BD": {Name: "Bangladesh", Rate: 15, FoodExempt: true, Currency: "BDT"},
	"BR": {Name: "Brazil", Rate: 17, FoodExempt: false, Currency: "BRL"},
	"CA": {Name: "Canada", Rate: 5, FoodExempt: true, Currency: "CAD"},
	"CH": {Name: "Switzerland", Rate: 7.7, FoodExempt: true, Currency: "CHF"},
	"CL": {Name: "Chile", Rate: 19, FoodExempt: true, Currency: "CLP"},
	"CN": {Name: "China", Rate: 13, FoodExempt: true, Currency: "CNY"},
	"CO": {Name: "Colombia", Rate: 19, FoodExempt: true, Currency: "COP"},
	"CY": {Name: "Cyprus", Rate: 19, FoodExempt: true, Currency: "EUR"},
	"CZ": {Name: "Czech Republic", Rate: 21, FoodExempt: true, Currency: "CZK"},
	"DE": {Name: "Germany", Rate: 19, FoodExempt: true, Currency: "EUR"},
	"DK": {Name: "Denmark", Rate: 25, FoodExempt: false, Currency: "DKK"},
	"DZ": {Name: "Algeria", Rate: 19, FoodExempt: true, Currency: "DZD"},
	"EE": {Name: "Estonia", Rate: 20, FoodExempt: true, Currency: "EUR"},
	"EG": {Name: "Egypt", Rate: 14, FoodExempt: false, Currency: "EGP"},
	"ES": {Name: "Spain", Rate: 21, FoodExempt: true, Currency: "EUR"},
	"ET": {Name: "Ethiopia", Rate: 15, FoodExempt: true, Currency: "ETB"},
	"FI": {Name: "Finland", Rate: 24, FoodExempt: true, Currency: "EUR"},
	"FR": {Name: "France", Rate: 20, FoodExempt: true, Currency: "EUR"},
	"GB": {Name: "UK", Rate: 20, FoodExempt: true, Currency: "GBP"},
	"GE": {Name: "Georgia", Rate: 18, FoodExempt: true, Currency: "GEL"},
	"GH": {Name: "Ghana", Rate: 12.5, FoodExempt: false, Currency: "GHS"},
	"GR": {Name: "Greece", Rate: 24, FoodExempt: true, Currency: "EUR"},
	"HK": {Name: "Hong Kong", Rate: 0, FoodExempt: true, Currency: "HKD"},
	"HR": {Name: "Croatia", Rate: 25, FoodExempt: true, Currency: "EUR"},
	"HU": {Name: "Hungary", Rate: 27, FoodExempt: true, Currency: "HUF"},
	"ID": {Name: "Indonesia", Rate: 11, FoodExempt: false, Currency: "IDR"},
	"IE": {Name: "Ireland", Rate: 23, FoodExempt: true, Currency: "EUR"},
	"IL": {Name: "Israel", Rate: 17, FoodExempt: true, Currency: "ILS"},
	"IN": {Name: "India", Rate: 18, FoodExempt: true, Currency: "INR"},
	"IQ": {Name: "Iraq", Rate: 0, FoodExempt: true, Currency: "IQD"},
	"IS": {Name: "Iceland", Rate: 24, FoodExempt: true, Currency: "ISK"},
	"IT": {Name: "Italy", Rate: 22, FoodExempt: true, Currency: "EUR"},
	"JO": {Name: "Jordan", Rate: 16, FoodExempt: true, Currency: "JOD"},
	"JP": {Name: "Japan", Rate: 10, FoodExempt: true, Currency: "JPY"},
	"KE": {Name: "Kenya", Rate: 16, FoodExempt: true, Currency: "KES"},
	"KH": {Name: "Cambodia", Rate: 10, FoodExempt: true, Currency: "KHR"},
	"KR": {Name: "South Korea", Rate: 10, FoodExempt: true, Currency: "KRW"},
	"KW": {Name: "Kuwait", Rate: 0, FoodExempt: true, Currency: "KWD"},
	"KZ": {Name: "Kazakhstan", Rate: 12, FoodExempt: true, Currency: "KZT"},
	"LB": {Name: "Lebanon", Rate: 11, FoodExempt: true, Currency: "LBP"},
	"LK": {Name: "Sri Lanka", Rate: 15, FoodExempt: false, Currency: "LKR"},
	"LT": {Name: "Lithuania", Rate: 21, FoodExempt: true, Currency: "EUR"},
	"LU": {Name: "Luxembourg", Rate: 17, FoodExempt: true, Currency: "EUR"},
	"LV": {Name: "Latvia", Rate: 21, FoodExempt: true, Currency: "EUR"},
	"MA": {Name: "Morocco", Rate: 20, FoodExempt: true, Currency: "MAD"},
	"MT": {Name: "Malta", Rate: 18, FoodExempt: true, Currency: "EUR"},
	"MU": {Name: "Mauritius", Rate: 15, FoodExempt: true, Currency: "MUR"},
	"MV": {Name: "Maldives", Rate: 6, FoodExempt: false, Currency: "MVR"},
	"MX": {Name: "Mexico", Rate: 16, FoodExempt: true, Currency: "MXN"},
	"MY": {Name: "Malaysia", Rate: 10, FoodExempt: true, Currency: "MYR"},
	"NG": {Name: "Nigeria", Rate: 7.5, FoodExempt: false, Currency: "NGN"},
	"NL": {Name: "Netherlands", Rate: 21, FoodExempt: true, Currency: "EUR"},
	"NO": {Name: "Norway", Rate: 25, FoodExempt: true, Currency: "NOK"},
	"NP": {Name: "Nepal", Rate: 13, FoodExempt: true, Currency: "NPR"},
	"NZ": {Name: "New Zealand", Rate: 15, FoodExempt: true, Currency: "NZD"},
	"OM": {Name: "Oman", Rate: 5, FoodExempt: true, Currency: "OMR"},
	"PA": {Name: "Panama", Rate: 7, FoodExempt: true, Currency: "PAB"},
	"PE": {Name: "Peru", Rate: 18, FoodExempt: true, Currency: "PEN"},
	"PH": {Name: "Philippines", Rate: 12, FoodExempt: false, Currency: "PHP"},
	"PK": {Name: "Pakistan", Rate: 17, FoodExempt: true, Currency: "PKR"},
	"PL": {Name: "Poland", Rate: 23, FoodExempt: true, Currency: "PLN"},
	"PT": {Name: "Portugal", Rate: 23, FoodExempt: true, Currency: "EUR"},
	"QA": {Name: "Qatar", Rate: 0, FoodExempt: true, Currency: "QAR"},
	"RO": {Name: "Romania", Rate: 19, FoodExempt: true, Currency: "RON"},
	"RS": {Name: "Serbia", Rate: 20, FoodExempt: true, Currency: "RSD"},
	"RU": {Name: "Russia", Rate: 20, FoodExempt: true, Currency: "RUB"},
	"SA": {Name: "Saudi Arabia", Rate: 15, FoodExempt: true, Currency: "SAR"},
	"SE": {Name: "Sweden", Rate: 25, FoodExempt: true, Currency: "SEK"},
	"SG": {Name: "Singapore", Rate: 9, FoodExempt: true, Currency: "SGD"},
	"SI": {Name: "Slovenia", Rate: 22, FoodExempt: true, Currency: "EUR"},
	"SK": {Name: "Slovakia", Rate: 20, FoodExempt: true, Currency: "EUR"},
	"TH": {Name: "Thailand", Rate: 7, FoodExempt: false, Currency: "THB"},
	"TN": {Name: "Tunisia", Rate: 19, FoodExempt: true, Currency: "TND"},
	"TR": {Name: "Turkey", Rate: 20, FoodExempt: true, Currency: "TRY"},
	"TW": {Name: "Taiwan", Rate: 5, FoodExempt: false, Currency: "TWD"},
	"TZ": {Name: "Tanzania", Rate: 18, FoodExempt: false, Currency: "TZS"},
	"UA": {Name: "Ukraine", Rate: 20, FoodExempt: true, Currency: "UAH"},
	"UG": {Name: "Uganda", Rate: 18, FoodExempt: false, Currency: "UGX"},
	"US": {Name: "USA", Rate: 0, FoodExempt: true, Currency: "USD"},
	"UY": {Name: "Uruguay", Rate: 22, FoodExempt: true, Currency: "UYU"},
	"UZ": {Name: "Uzbekistan", Rate: 12, FoodExempt: true, Currency: "UZS"},
	"VN": {Name: "Vietnam", Rate: 10, FoodExempt: true, Currency: "VND"},
	"ZA": {Name: "South Africa", Rate: 15, FoodExempt: true, Currency: "ZAR"},
	"ZM": {Name: "Zambia", Rate: 16, FoodExempt: false, Currency: "ZMW"},
	"ZW": {Name: "Zimbabwe", Rate: 14.5, FoodExempt: false, Currency: "ZWL"},
}

// Lookup returns the reference entry for a two-letter country code, falling
// back to the default region when the code is unrecognized. The returned
// Country always has Code set to the entry actually used.
func Lookup(code string) Country {
	c, ok := countries[code]
	if !ok {
		code = DefaultCode
		c = countries[code]
	}
	c.Code = code
	return c
}

// Known reports whether a code has an entry in the reference table.
func Known(code string) bool {
	_, ok := countries[code]
	return ok
}

// Codes returns all known country codes in sorted order.
func Codes() []string {
	out := make([]string, 0, len(countries))
	for code := range countries {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
