package currency

import "github.com/shopspring/decimal"

// cent and noMinor are the two subunit denominators every registry entry uses;
// a handful of currencies (JPY, KRW, HUF...) have no minor unit at all.
var (
	cent    = decimal.NewFromFloat(0.01)
	noMinor = decimal.NewFromInt(1)
)

// registry is the compile-time table of currencies known to ecbrates: 31
// enabled (EUR plus the 30 quoted in the ECB daily feed), 9 retired
// historic-only currencies, and 1 (HRK) retired after previously being
// enabled - 41 in all. See Descriptor.Enabled.
var registry = map[string]Descriptor{
	"EUR": {Name: "Euro", ISOAlpha: "EUR", ISONumeric: "978", Symbol: "€", Subunit: cent, SubunitName: "cent", Enabled: true},

	"USD": {Name: "US Dollar", ISOAlpha: "USD", ISONumeric: "840", Symbol: "$", Subunit: cent, SubunitName: "cent", AltSymbols: []string{"US$"}, Enabled: true},
	"JPY": {Name: "Japanese Yen", ISOAlpha: "JPY", ISONumeric: "392", Symbol: "¥", Subunit: noMinor, SubunitName: "sen", Enabled: true},
	"BGN": {Name: "Bulgarian Lev", ISOAlpha: "BGN", ISONumeric: "975", Symbol: "лв", Subunit: cent, SubunitName: "stotinka", Enabled: true},
	"CZK": {Name: "Czech Koruna", ISOAlpha: "CZK", ISONumeric: "203", Symbol: "Kč", Subunit: cent, SubunitName: "haléř", Enabled: true},
	"DKK": {Name: "Danish Krone", ISOAlpha: "DKK", ISONumeric: "208", Symbol: "kr", Subunit: cent, SubunitName: "øre", Enabled: true},
	"GBP": {Name: "Pound Sterling", ISOAlpha: "GBP", ISONumeric: "826", Symbol: "£", Subunit: cent, SubunitName: "penny", AltNames: []string{"British Pound"}, Enabled: true},
	"HUF": {Name: "Hungarian Forint", ISOAlpha: "HUF", ISONumeric: "348", Symbol: "Ft", Subunit: noMinor, SubunitName: "fillér", Enabled: true},
	"PLN": {Name: "Polish Złoty", ISOAlpha: "PLN", ISONumeric: "985", Symbol: "zł", Subunit: cent, SubunitName: "grosz", Enabled: true},
	"RON": {Name: "Romanian Leu", ISOAlpha: "RON", ISONumeric: "946", Symbol: "lei", Subunit: cent, SubunitName: "ban", Enabled: true},
	"SEK": {Name: "Swedish Krona", ISOAlpha: "SEK", ISONumeric: "752", Symbol: "kr", Subunit: cent, SubunitName: "öre", Enabled: true},
	"CHF": {Name: "Swiss Franc", ISOAlpha: "CHF", ISONumeric: "756", Symbol: "Fr", Subunit: cent, SubunitName: "rappen", Enabled: true},
	"ISK": {Name: "Icelandic Króna", ISOAlpha: "ISK", ISONumeric: "352", Symbol: "kr", Subunit: noMinor, SubunitName: "eyrir", Enabled: true},
	"NOK": {Name: "Norwegian Krone", ISOAlpha: "NOK", ISONumeric: "578", Symbol: "kr", Subunit: cent, SubunitName: "øre", Enabled: true},
	"TRY": {Name: "Turkish Lira", ISOAlpha: "TRY", ISONumeric: "949", Symbol: "₺", Subunit: cent, SubunitName: "kuruş", Enabled: true},
	"AUD": {Name: "Australian Dollar", ISOAlpha: "AUD", ISONumeric: "036", Symbol: "$", Subunit: cent, SubunitName: "cent", AltSymbols: []string{"A$"}, Enabled: true},
	"BRL": {Name: "Brazilian Real", ISOAlpha: "BRL", ISONumeric: "986", Symbol: "R$", Subunit: cent, SubunitName: "centavo", Enabled: true},
	"CAD": {Name: "Canadian Dollar", ISOAlpha: "CAD", ISONumeric: "124", Symbol: "$", Subunit: cent, SubunitName: "cent", AltSymbols: []string{"C$"}, Enabled: true},
	"CNY": {Name: "Chinese Yuan", ISOAlpha: "CNY", ISONumeric: "156", Symbol: "¥", Subunit: cent, SubunitName: "fen", AltNames: []string{"Renminbi"}, Enabled: true},
	"HKD": {Name: "Hong Kong Dollar", ISOAlpha: "HKD", ISONumeric: "344", Symbol: "$", Subunit: cent, SubunitName: "cent", AltSymbols: []string{"HK$"}, Enabled: true},
	"IDR": {Name: "Indonesian Rupiah", ISOAlpha: "IDR", ISONumeric: "360", Symbol: "Rp", Subunit: cent, SubunitName: "sen", Enabled: true},
	"ILS": {Name: "Israeli New Shekel", ISOAlpha: "ILS", ISONumeric: "376", Symbol: "₪", Subunit: cent, SubunitName: "agora", Enabled: true},
	"INR": {Name: "Indian Rupee", ISOAlpha: "INR", ISONumeric: "356", Symbol: "₹", Subunit: cent, SubunitName: "paisa", Enabled: true},
	"KRW": {Name: "South Korean Won", ISOAlpha: "KRW", ISONumeric: "410", Symbol: "₩", Subunit: noMinor, SubunitName: "jeon", Enabled: true},
	"MXN": {Name: "Mexican Peso", ISOAlpha: "MXN", ISONumeric: "484", Symbol: "$", Subunit: cent, SubunitName: "centavo", Enabled: true},
	"MYR": {Name: "Malaysian Ringgit", ISOAlpha: "MYR", ISONumeric: "458", Symbol: "RM", Subunit: cent, SubunitName: "sen", Enabled: true},
	"NZD": {Name: "New Zealand Dollar", ISOAlpha: "NZD", ISONumeric: "554", Symbol: "$", Subunit: cent, SubunitName: "cent", AltSymbols: []string{"NZ$"}, Enabled: true},
	"PHP": {Name: "Philippine Peso", ISOAlpha: "PHP", ISONumeric: "608", Symbol: "₱", Subunit: cent, SubunitName: "centavo", Enabled: true},
	"SGD": {Name: "Singapore Dollar", ISOAlpha: "SGD", ISONumeric: "702", Symbol: "$", Subunit: cent, SubunitName: "cent", AltSymbols: []string{"S$"}, Enabled: true},
	"THB": {Name: "Thai Baht", ISOAlpha: "THB", ISONumeric: "764", Symbol: "฿", Subunit: cent, SubunitName: "satang", Enabled: true},
	"ZAR": {Name: "South African Rand", ISOAlpha: "ZAR", ISONumeric: "710", Symbol: "R", Subunit: cent, SubunitName: "cent", Enabled: true},

	// Retired after their issuing country adopted the euro. Still appear in
	// the historic feed for dates before the changeover.
	"CYP": {Name: "Cypriot Pound", ISOAlpha: "CYP", ISONumeric: "196", Symbol: "£", Subunit: cent, SubunitName: "cent", Enabled: false},
	"EEK": {Name: "Estonian Kroon", ISOAlpha: "EEK", ISONumeric: "233", Symbol: "kr", Subunit: cent, SubunitName: "senti", Enabled: false},
	"GRD": {Name: "Greek Drachma", ISOAlpha: "GRD", ISONumeric: "300", Symbol: "₯", Subunit: cent, SubunitName: "lepton", Enabled: false},
	"LTL": {Name: "Lithuanian Litas", ISOAlpha: "LTL", ISONumeric: "440", Symbol: "Lt", Subunit: cent, SubunitName: "centas", Enabled: false},
	"LVL": {Name: "Latvian Lats", ISOAlpha: "LVL", ISONumeric: "428", Symbol: "Ls", Subunit: cent, SubunitName: "santīms", Enabled: false},
	"MTL": {Name: "Maltese Lira", ISOAlpha: "MTL", ISONumeric: "470", Symbol: "₤", Subunit: cent, SubunitName: "cent", Enabled: false},
	"ROL": {Name: "Romanian Leu (old)", ISOAlpha: "ROL", ISONumeric: "642", Symbol: "lei", Subunit: cent, SubunitName: "ban", Enabled: false},
	"SIT": {Name: "Slovenian Tolar", ISOAlpha: "SIT", ISONumeric: "705", Symbol: "$", Subunit: cent, SubunitName: "stotin", Enabled: false},
	"SKK": {Name: "Slovak Koruna", ISOAlpha: "SKK", ISONumeric: "703", Symbol: "Sk", Subunit: cent, SubunitName: "halier", Enabled: false},

	// Retired after being enabled: Croatia adopted the euro on 2023-01-01.
	"HRK": {Name: "Croatian Kuna", ISOAlpha: "HRK", ISONumeric: "191", Symbol: "kn", Subunit: cent, SubunitName: "lipa", Enabled: false},
}
