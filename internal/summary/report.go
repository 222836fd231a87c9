package summary

import (
	"fmt"
	"strings"

	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/models"
)

// SpendingProfile classifies the ratio of expenses to income.
type SpendingProfile string

const (
	ProfileHighSpender       SpendingProfile = "high-spender"
	ProfileConservativeSaver SpendingProfile = "conservative-saver"
	ProfileBalanced          SpendingProfile = "balanced"
)

// Profile classifies totals: above 80% of income spent is a high spender,
// below 50% a conservative saver.
func Profile(t Totals) SpendingProfile {
	switch {
	case t.Expenses > t.Income*0.8:
		return ProfileHighSpender
	case t.Expenses < t.Income*0.5:
		return ProfileConservativeSaver
	default:
		return ProfileBalanced
	}
}

// SavingsBand grades a savings rate.
type SavingsBand string

const (
	SavingsNeedsImprovement SavingsBand = "needs-improvement"
	SavingsGood             SavingsBand = "good"
	SavingsExcellent        SavingsBand = "excellent"
)

// SavingsStatus grades a savings rate given as a percentage.
func SavingsStatus(rate float64) SavingsBand {
	switch {
	case rate >= 30:
		return SavingsExcellent
	case rate >= 20:
		return SavingsGood
	default:
		return SavingsNeedsImprovement
	}
}

// WidthClass is the space available to a chart label.
type WidthClass int

const (
	WidthNarrow WidthClass = iota
	WidthMedium
	WidthWide
)

// ParseWidthClass maps "narrow", "medium" and "wide" to a WidthClass.
func ParseWidthClass(s string) (WidthClass, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "narrow":
		return WidthNarrow, nil
	case "medium":
		return WidthMedium, nil
	case "wide", "":
		return WidthWide, nil
	}
	return WidthWide, fmt.Errorf("unknown width class %q", s)
}

const mediumLabelRunes = 8

// SliceLabel renders a category slice label for the given width.
func SliceLabel(name string, pct float64, width WidthClass) string {
	p := fmt.Sprintf("%.1f%%", pct)
	switch width {
	case WidthNarrow:
		return p
	case WidthMedium:
		r := []rune(name)
		if len(r) > mediumLabelRunes {
			name = string(r[:mediumLabelRunes]) + "..."
		}
		return name + " " + p
	default:
		return name + " " + p
	}
}

// Formatted carries the headline totals rendered in the report currency.
type Formatted struct {
	Income   string `json:"income" yaml:"income"`
	Expenses string `json:"expenses" yaml:"expenses"`
	Net      string `json:"net" yaml:"net"`
}

// Report bundles every summary view of a transaction list.
type Report struct {
	Currency          currency.Code        `json:"currency" yaml:"currency"`
	Totals            Totals               `json:"totals" yaml:"totals"`
	Formatted         Formatted            `json:"formatted" yaml:"formatted"`
	Profile           SpendingProfile      `json:"profile" yaml:"profile"`
	SavingsStatus     SavingsBand          `json:"savingsStatus" yaml:"savings_status"`
	Categories        []CategoryTotal      `json:"categories" yaml:"categories"`
	DailySpending     []PeriodTotal        `json:"dailySpending" yaml:"daily_spending"`
	MonthlySpending   []PeriodTotal        `json:"monthlySpending" yaml:"monthly_spending"`
	HighSpendingDays  []PeriodTotal        `json:"highSpendingDays" yaml:"high_spending_days"`
	FrequentMerchants []MerchantCount      `json:"frequentMerchants" yaml:"frequent_merchants"`
	Recent            []models.Transaction `json:"recent" yaml:"recent"`
}

// Report limits.
const (
	CategoryLimit = 5
	MerchantLimit = 5
	RecentLimit   = 10
)

// Summarize computes a Report. An empty code means the currency is detected
// from the transactions.
func Summarize(transactions []models.Transaction, code currency.Code) *Report {
	if code == "" {
		code = DetectCurrency(transactions)
	}
	totals := ComputeTotals(transactions)
	return &Report{
		Currency: code,
		Totals:   totals,
		Formatted: Formatted{
			Income:   currency.FormatCurrency(totals.Income, code),
			Expenses: currency.FormatCurrency(totals.Expenses, code),
			Net:      currency.FormatCurrency(totals.Net, code),
		},
		Profile:           Profile(totals),
		SavingsStatus:     SavingsStatus(totals.SavingsRate),
		Categories:        CategoryBreakdown(transactions, 0),
		DailySpending:     DailySpending(transactions),
		MonthlySpending:   MonthlySpending(transactions),
		HighSpendingDays:  HighSpendingDays(transactions),
		FrequentMerchants: FrequentMerchants(transactions, MerchantLimit),
		Recent:            LastN(transactions, RecentLimit),
	}
}

// TopCategories returns at most n categories of the report.
func (r *Report) TopCategories(n int) []CategoryTotal {
	if n > 0 && len(r.Categories) > n {
		return r.Categories[:n]
	}
	return r.Categories
}

// DetectCurrency runs currency detection over transaction descriptions and
// amounts.
func DetectCurrency(transactions []models.Transaction) currency.Code {
	samples := make([]currency.Sample, len(transactions))
	for i, tx := range transactions {
		samples[i] = currency.Sample{Description: tx.Description, Amount: tx.Amount}
	}
	return currency.DetectCurrency(samples)
}
