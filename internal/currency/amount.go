package currency

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ErrEmptyAmount is returned for blank input. Ingestion treats it as a zero row.
	ErrEmptyAmount = errors.New("empty amount")
	// ErrUnparsableAmount is returned when no finite number can be recovered.
	ErrUnparsableAmount = errors.New("unparsable amount")
)

// currencyGlyphs is the safety net applied after hint-specific stripping.
var currencyGlyphs = regexp.MustCompile(`[$€£¥₹₩￥]`)

// numericPrefix mirrors how a lenient float parser reads a cleaned string:
// an optional sign, then digits with at most one decimal point.
var numericPrefix = regexp.MustCompile(`^-?(\d+(\.\d*)?|\.\d+)`)

// ParseAmount parses raw using the default catalog. See Catalog.ParseAmount.
func ParseAmount(raw string, hint Code) (float64, error) {
	return defaultCatalog.ParseAmount(raw, hint)
}

// ParseAmountOrZero is the lenient form of ParseAmount: any failure yields 0.
func ParseAmountOrZero(raw string, hint Code) float64 {
	v, err := defaultCatalog.ParseAmount(raw, hint)
	if err != nil {
		return 0
	}
	return v
}

// ParseAmountValue accepts a cell that may already be numeric. Numbers pass
// through unchanged; strings go through ParseAmount.
func ParseAmountValue(v any, hint Code) (float64, error) {
	return defaultCatalog.ParseAmountValue(v, hint)
}

// ParseAmount converts a textual amount to a float64.
//
// Keywords of the hinted currency are removed case-insensitively, then any
// remaining currency glyph. Separators follow the hint's convention: for
// comma-decimal currencies a single comma marks the fraction and dots group
// thousands; otherwise commas are dropped. What is left is reduced to digits,
// dots and a leading minus, and its numeric prefix is parsed.
//
// An unknown or empty hint uses dot-decimal rules with no keyword stripping.
// Formatting a result with strconv and parsing it again returns the same
// value only under dot-decimal hints. Comma-decimal hints treat the dot as a
// grouping mark, so "1234.56" reads as 123456 under EUR.
func (c *Catalog) ParseAmount(raw string, hint Code) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, ErrEmptyAmount
	}

	profile, known := c.Lookup(hint)
	if known {
		for _, kw := range profile.Keywords {
			s = replaceFold(s, kw)
		}
	}
	s = currencyGlyphs.ReplaceAllString(s, "")

	if known && profile.CommaDecimal() {
		parts := strings.Split(s, ",")
		if len(parts) == 2 {
			s = strings.ReplaceAll(parts[0], ".", "") + "." + parts[1]
		} else {
			s = strings.ReplaceAll(s, ".", "")
		}
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	cleaned := keepNumeric(s)
	match := numericPrefix.FindString(cleaned)
	if match == "" {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableAmount, raw)
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", ErrUnparsableAmount, raw)
	}
	return v, nil
}

// ParseAmountValue is the catalog-bound form of the package function.
func (c *Catalog) ParseAmountValue(v any, hint Code) (float64, error) {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0, ErrEmptyAmount
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case int32:
		f = float64(n)
	case json.Number:
		return c.ParseAmount(n.String(), hint)
	case decimal.Decimal:
		f = n.InexactFloat64()
	case string:
		return c.ParseAmount(n, hint)
	case fmt.Stringer:
		return c.ParseAmount(n.String(), hint)
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrUnparsableAmount, v)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("%w: %v", ErrUnparsableAmount, f)
	}
	return f, nil
}

// keepNumeric drops everything except digits, dots and a minus sign that
// precedes all kept characters.
func keepNumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && b.Len() == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// replaceFold removes every case-insensitive occurrence of sub from s.
func replaceFold(s, sub string) string {
	if sub == "" {
		return s
	}
	re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(sub))
	return re.ReplaceAllString(s, "")
}
