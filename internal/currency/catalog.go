// Package currency holds the supported currency catalog and the functions that
// parse, detect and format monetary amounts against it.
//
// The catalog is built once at package initialization and never mutated.
// Lookups hand out copies, so callers cannot alter the shared profiles.
package currency

import (
	"fmt"
	"regexp"
	"strings"
)

// Code is a three-letter ISO 4217 currency code.
type Code string

// Supported currency codes, in catalog order.
const (
	USD Code = "USD"
	EUR Code = "EUR"
	GBP Code = "GBP"
	JPY Code = "JPY"
	IDR Code = "IDR"
	CNY Code = "CNY"
	INR Code = "INR"
	KRW Code = "KRW"
	CAD Code = "CAD"
	AUD Code = "AUD"
)

// DefaultCode is returned by detection when there is nothing to detect from.
const DefaultCode = USD

// String implements fmt.Stringer.
func (c Code) String() string {
	return string(c)
}

// ParseCode normalizes user input ("idr ", "Eur") into a Code. The second
// return value reports whether the code is part of the default catalog.
func ParseCode(s string) (Code, bool) {
	code := Code(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := Default().Lookup(code)
	return code, ok
}

// Denomination groups currencies by the magnitude of everyday amounts.
type Denomination int

const (
	// DenominationNeutral currencies get no magnitude bonus during detection.
	DenominationNeutral Denomination = iota
	// DenominationLow currencies express daily spending in tens or hundreds.
	DenominationLow
	// DenominationHigh currencies express daily spending in thousands or more.
	DenominationHigh
)

// Profile describes how a currency is recognized, parsed and displayed.
type Profile struct {
	Code Code
	// Keywords are the symbols and words that identify the currency in free text.
	Keywords []string
	// Locale is the BCP 47 tag used for digit grouping when formatting.
	Locale string
	// Symbol is the display prefix; SymbolSpace inserts a space after it.
	Symbol      string
	SymbolSpace bool
	// TypicalMin and TypicalMax bound a plausible mean transaction size (inclusive).
	TypicalMin float64
	TypicalMax float64
	// DecimalSeparator and ThousandSeparator describe textual amounts in this currency.
	DecimalSeparator  rune
	ThousandSeparator rune
	// FractionDigits is the number of minor-unit digits shown on display.
	FractionDigits int
	Denomination   Denomination

	patterns []*regexp.Regexp
}

// CommaDecimal reports whether amounts are written as 1.234,56.
func (p Profile) CommaDecimal() bool {
	return p.DecimalSeparator == ',' && p.ThousandSeparator == '.'
}

// InTypicalRange reports whether mean lies within [TypicalMin, TypicalMax].
func (p Profile) InTypicalRange(mean float64) bool {
	return mean >= p.TypicalMin && mean <= p.TypicalMax
}

// clone returns a copy whose slices do not alias the catalog.
func (p Profile) clone() Profile {
	out := p
	out.Keywords = append([]string(nil), p.Keywords...)
	out.patterns = append([]*regexp.Regexp(nil), p.patterns...)
	return out
}

// Catalog is an ordered, read-only set of currency profiles. Order matters:
// when two currencies score equally during detection the earlier one wins.
type Catalog struct {
	profiles []Profile
	index    map[Code]int
}

// NewCatalog builds a catalog from the given profiles, preserving their order.
func NewCatalog(profiles ...Profile) (*Catalog, error) {
	c := &Catalog{
		profiles: make([]Profile, 0, len(profiles)),
		index:    make(map[Code]int, len(profiles)),
	}
	for _, p := range profiles {
		if len(p.Code) != 3 {
			return nil, fmt.Errorf("invalid currency code %q", p.Code)
		}
		if _, dup := c.index[p.Code]; dup {
			return nil, fmt.Errorf("duplicate currency code %s", p.Code)
		}
		if p.TypicalMin > p.TypicalMax {
			return nil, fmt.Errorf("currency %s: typical range [%g, %g] is inverted", p.Code, p.TypicalMin, p.TypicalMax)
		}
		p = p.clone()
		p.patterns = make([]*regexp.Regexp, 0, len(p.Keywords))
		for _, kw := range p.Keywords {
			re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(kw) + `\b`)
			if err != nil {
				return nil, fmt.Errorf("currency %s: keyword %q: %w", p.Code, kw, err)
			}
			p.patterns = append(p.patterns, re)
		}
		c.index[p.Code] = len(c.profiles)
		c.profiles = append(c.profiles, p)
	}
	return c, nil
}

// MustCatalog is like NewCatalog but panics on an invalid definition.
func MustCatalog(profiles ...Profile) *Catalog {
	c, err := NewCatalog(profiles...)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup returns a copy of the profile for code.
func (c *Catalog) Lookup(code Code) (Profile, bool) {
	i, ok := c.index[code]
	if !ok {
		return Profile{}, false
	}
	return c.profiles[i].clone(), true
}

// Profiles returns copies of every profile in catalog order.
func (c *Catalog) Profiles() []Profile {
	out := make([]Profile, len(c.profiles))
	for i, p := range c.profiles {
		out[i] = p.clone()
	}
	return out
}

// Codes returns the catalog codes in order.
func (c *Catalog) Codes() []Code {
	out := make([]Code, len(c.profiles))
	for i, p := range c.profiles {
		out[i] = p.Code
	}
	return out
}

// Len returns the number of profiles.
func (c *Catalog) Len() int {
	return len(c.profiles)
}

var defaultCatalog = MustCatalog(
	Profile{Code: USD, Keywords: []string{"$", "usd", "dollar", "us"}, Locale: "en-US", Symbol: "$",
		TypicalMin: 1, TypicalMax: 50000, DecimalSeparator: '.', ThousandSeparator: ',', FractionDigits: 2, Denomination: DenominationLow},
	Profile{Code: EUR, Keywords: []string{"€", "eur", "euro"}, Locale: "en-GB", Symbol: "€",
		TypicalMin: 1, TypicalMax: 50000, DecimalSeparator: ',', ThousandSeparator: '.', FractionDigits: 2, Denomination: DenominationLow},
	Profile{Code: GBP, Keywords: []string{"£", "gbp", "pound", "sterling"}, Locale: "en-GB", Symbol: "£",
		TypicalMin: 1, TypicalMax: 50000, DecimalSeparator: '.', ThousandSeparator: ',', FractionDigits: 2, Denomination: DenominationLow},
	Profile{Code: JPY, Keywords: []string{"¥", "jpy", "yen"}, Locale: "ja-JP", Symbol: "¥",
		TypicalMin: 100, TypicalMax: 1000000, DecimalSeparator: '.', ThousandSeparator: ',', FractionDigits: 0, Denomination: DenominationHigh},
	Profile{Code: IDR, Keywords: []string{"rp", "idr", "rupiah", "indonesia", "indo"}, Locale: "id-ID", Symbol: "Rp", SymbolSpace: true,
		TypicalMin: 1000, TypicalMax: 100000000, DecimalSeparator: ',', ThousandSeparator: '.', FractionDigits: 0, Denomination: DenominationHigh},
	Profile{Code: CNY, Keywords: []string{"¥", "￥", "cny", "yuan", "rmb"}, Locale: "zh-CN", Symbol: "¥",
		TypicalMin: 1, TypicalMax: 100000, DecimalSeparator: '.', ThousandSeparator: ',', FractionDigits: 2},
	Profile{Code: INR, Keywords: []string{"₹", "inr", "rupee", "rs"}, Locale: "en-IN", Symbol: "₹",
		TypicalMin: 10, TypicalMax: 1000000, DecimalSeparator: '.', ThousandSeparator: ',', FractionDigits: 2},
	Profile{Code: KRW, Keywords: []string{"₩", "krw", "won"}, Locale: "ko-KR", Symbol: "₩",
		TypicalMin: 1000, TypicalMax: 10000000, DecimalSeparator: '.', ThousandSeparator: ',', FractionDigits: 0, Denomination: DenominationHigh},
	Profile{Code: CAD, Keywords: []string{"cad", "c$", "canadian"}, Locale: "en-CA", Symbol: "CA$",
		TypicalMin: 1, TypicalMax: 50000, DecimalSeparator: '.', ThousandSeparator: ',', FractionDigits: 2, Denomination: DenominationLow},
	Profile{Code: AUD, Keywords: []string{"aud", "a$", "australian"}, Locale: "en-AU", Symbol: "A$",
		TypicalMin: 1, TypicalMax: 50000, DecimalSeparator: '.', ThousandSeparator: ',', FractionDigits: 2, Denomination: DenominationLow},
)

// Default returns the process-wide catalog.
func Default() *Catalog {
	return defaultCatalog
}
