package currency

import (
	"math"
	"strings"
	"unicode"
)

// Detection weights.
const (
	keywordHitScore     = 10
	typicalRangeScore   = 5
	denominationBonus   = 3
	highDenominationMin = 10000
	lowDenominationMax  = 1000
)

// Sample is the part of a transaction that detection looks at.
type Sample struct {
	Description string
	Amount      float64
}

// Score is one currency's detection result.
type Score struct {
	Code  Code
	Score int
}

// DetectCurrency picks a currency for the samples using the default catalog.
func DetectCurrency(samples []Sample) Code {
	return defaultCatalog.Detect(samples)
}

// Detect returns the best-scoring currency for the samples. Equal scores
// resolve to the profile listed first. An empty input yields DefaultCode.
func (c *Catalog) Detect(samples []Sample) Code {
	if len(samples) == 0 || len(c.profiles) == 0 {
		return DefaultCode
	}
	scores := c.Scores(samples)
	best := scores[0]
	for _, s := range scores[1:] {
		if s.Score > best.Score {
			best = s
		}
	}
	return best.Code
}

// Scores returns every profile's score in catalog order.
func (c *Catalog) Scores(samples []Sample) []Score {
	corpus, mean := summarizeSamples(samples)

	out := make([]Score, 0, len(c.profiles))
	for _, p := range c.profiles {
		score := 0
		if corpus != "" {
			for _, re := range p.patterns {
				score += keywordHitScore * len(re.FindAllStringIndex(corpus, -1))
			}
		}
		if len(samples) > 0 && p.InTypicalRange(mean) {
			score += typicalRangeScore
		}
		switch {
		case p.Denomination == DenominationHigh && mean > highDenominationMin:
			score += denominationBonus
		case p.Denomination == DenominationLow && mean < lowDenominationMax && len(samples) > 0:
			score += denominationBonus
		}
		out = append(out, Score{Code: p.Code, Score: score})
	}
	return out
}

func summarizeSamples(samples []Sample) (string, float64) {
	if len(samples) == 0 {
		return "", 0
	}
	descriptions := make([]string, 0, len(samples))
	total := 0.0
	for _, s := range samples {
		descriptions = append(descriptions, strings.ToLower(s.Description))
		total += math.Abs(s.Amount)
	}
	return strings.Join(descriptions, " "), total / float64(len(samples))
}

// SniffHint guesses the currency of raw amount cells from the symbols and
// codes written in them. Every marked cell must name the same currency, and
// every unmarked cell must read the same under that currency's convention as
// under DefaultCode's. Otherwise it returns false and the caller keeps its
// default, so one "€" cell cannot turn "-20.00" into -2000 elsewhere in the
// file. Longer markers outrank shorter ones, so "C$ 12" counts toward CAD
// rather than USD.
func SniffHint(cells []string) (Code, bool) {
	return defaultCatalog.SniffHint(cells)
}

// SniffHint is the catalog-bound form of the package function.
func (c *Catalog) SniffHint(cells []string) (Code, bool) {
	winner := -1
	var plain []string
	for _, cell := range cells {
		lower := strings.ToLower(strings.TrimSpace(cell))
		if lower == "" {
			continue
		}
		bestIdx, bestLen := -1, 0
		for i, p := range c.profiles {
			for j, kw := range p.Keywords {
				if len(kw) <= bestLen {
					continue
				}
				if hasMarker(lower, kw, p.patterns[j].MatchString) {
					bestIdx, bestLen = i, len(kw)
				}
			}
		}
		switch {
		case bestIdx < 0:
			plain = append(plain, cell)
		case winner >= 0 && bestIdx != winner:
			return "", false
		default:
			winner = bestIdx
		}
	}
	if winner < 0 {
		return "", false
	}
	code := c.profiles[winner].Code
	for _, cell := range plain {
		if !c.sameReading(cell, code, DefaultCode) {
			return "", false
		}
	}
	return code, true
}

// sameReading reports whether raw parses to the same value, or fails alike,
// under both hints.
func (c *Catalog) sameReading(raw string, a, b Code) bool {
	va, errA := c.ParseAmount(raw, a)
	vb, errB := c.ParseAmount(raw, b)
	if (errA != nil) != (errB != nil) {
		return false
	}
	return va == vb
}

// hasMarker treats alphabetic keywords as whole words. Amount cells glue
// symbols to digits ("$12", "Rp15.000"), so glyph keywords and letter
// keywords that touch a digit are matched as substrings.
func hasMarker(cell, kw string, wordMatch func(string) bool) bool {
	if !isAlpha(kw) {
		return strings.Contains(cell, kw)
	}
	if wordMatch(cell) {
		return true
	}
	for i := strings.Index(cell, kw); i >= 0; {
		end := i + len(kw)
		beforeOK := i == 0 || !isLetterByte(cell[i-1])
		afterOK := end == len(cell) || !isLetterByte(cell[end])
		if beforeOK && afterOK {
			return true
		}
		next := strings.Index(cell[i+1:], kw)
		if next < 0 {
			break
		}
		i += next + 1
	}
	return false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func isLetterByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
