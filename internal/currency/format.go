package currency

import (
	"math"
	"strings"

	xcurrency "golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatCurrency renders amount for display using the default catalog.
func FormatCurrency(amount float64, code Code) string {
	return defaultCatalog.Format(amount, code)
}

// Format renders amount with the currency's symbol, locale grouping and
// fraction digits. Codes outside the catalog that are valid ISO 4217 codes
// are shown with the code as prefix in US-English grouping; anything else
// falls back to USD. Format never panics.
func (c *Catalog) Format(amount float64, code Code) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fallbackFormat(amount)
		}
	}()

	if p, ok := c.Lookup(code); ok {
		return render(amount, p.Locale, p.Symbol, p.SymbolSpace, p.FractionDigits)
	}

	unit, err := xcurrency.ParseISO(string(code))
	if err != nil {
		return fallbackFormat(amount)
	}
	scale, _ := xcurrency.Standard.Rounding(unit)
	return render(amount, "en-US", unit.String(), true, scale)
}

func fallbackFormat(amount float64) string {
	return render(amount, "en-US", "$", false, 2)
}

func render(amount float64, locale, symbol string, space bool, digits int) string {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.AmericanEnglish
	}
	p := message.NewPrinter(tag)

	var b strings.Builder
	if math.Signbit(amount) && !isZeroAfterRounding(amount, digits) {
		b.WriteByte('-')
	}
	b.WriteString(symbol)
	if space {
		b.WriteByte(' ')
	}
	b.WriteString(p.Sprintf("%v", number.Decimal(math.Abs(amount), number.Scale(digits))))
	return b.String()
}

// isZeroAfterRounding keeps -0.001 from rendering as "-$0.00".
func isZeroAfterRounding(amount float64, digits int) bool {
	pow := math.Pow10(digits)
	return math.Round(math.Abs(amount)*pow) == 0
}
