package theme

type Currency struct {
	Code   string
	ISO    string
	Name   string
	Symbol string
	Active bool
}

var treasuryCurrencies = [...]Currency{
	{Code: "USD", ISO: "840", Name: "US Dollar", Symbol: "$", Active: true},
	{Code: "EUR", ISO: "978", Name: "Euro", Symbol: "€"},
	{Code: "GBP", ISO: "826", Name: "British Pound", Symbol: "£"},
	{Code: "CHF", ISO: "756", Name: "Swiss Franc", Symbol: "Fr"},
	{Code: "JPY", ISO: "392", Name: "Japanese Yen", Symbol: "¥"},
	{Code: "CAD", ISO: "124", Name: "Canadian Dollar", Symbol: "C$"},
	{Code: "AUD", ISO: "036", Name: "Australian Dollar", Symbol: "A$"},
	{Code: "SGD", ISO: "702", Name: "Singapore Dollar", Symbol: "S$"},
	{Code: "HKD", ISO: "344", Name: "Hong Kong Dollar", Symbol: "HK$"},
	{Code: "CNY", ISO: "156", Name: "Chinese Yuan", Symbol: "¥"},
	{Code: "AED", ISO: "784", Name: "UAE Dirham", Symbol: "AED"},
	{Code: "SAR", ISO: "682", Name: "Saudi Riyal", Symbol: "SAR"},
	{Code: "INR", ISO: "356", Name: "Indian Rupee", Symbol: "Rs"},
	{Code: "BRL", ISO: "986", Name: "Brazilian Real", Symbol: "R$"},
	{Code: "MXN", ISO: "484", Name: "Mexican Peso", Symbol: "MX$"},
}

// TreasuryCurrencies returns a fresh copy of the 15 ISO 4217 treasury currencies.
// Exactly one entry is active: the reserve currency backing the minted asset.
func TreasuryCurrencies() []Currency {
	out := make([]Currency, len(treasuryCurrencies))
	copy(out, treasuryCurrencies[:])
	return out
}
