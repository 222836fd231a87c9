// Package summary derives the aggregate views shown next to an uploaded
// transaction list: totals, category breakdowns, spending over time and the
// spending profile used to personalise insights.
package summary

import (
	"sort"
	"strings"

	"casha/finance-advisor/internal/dateutils"
	"casha/finance-advisor/internal/models"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals are the headline figures of a transaction list.
type Totals struct {
	Income      float64 `json:"income" yaml:"income"`
	Expenses    float64 `json:"expenses" yaml:"expenses"`
	Net         float64 `json:"net" yaml:"net"`
	SavingsRate float64 `json:"savingsRate" yaml:"savings_rate"`
	Count       int     `json:"count" yaml:"count"`
}

// ComputeTotals sums income (positive amounts) and expenses (absolute value of
// negative amounts). The savings rate is a percentage of income and is zero
// when there is no income.
func ComputeTotals(transactions []models.Transaction) Totals {
	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range transactions {
		switch {
		case tx.IsIncome():
			income = income.Add(tx.DecimalAmount())
		case tx.IsExpense():
			expenses = expenses.Add(tx.AbsAmount())
		}
	}
	net := income.Sub(expenses)
	rate := decimal.Zero
	if income.IsPositive() {
		rate = net.Div(income).Mul(hundred)
	}
	return Totals{
		Income:      income.InexactFloat64(),
		Expenses:    expenses.InexactFloat64(),
		Net:         net.InexactFloat64(),
		SavingsRate: rate.InexactFloat64(),
		Count:       len(transactions),
	}
}

// CategoryTotal is the expense total of one category.
type CategoryTotal struct {
	Category   string  `json:"category" yaml:"category"`
	Amount     float64 `json:"amount" yaml:"amount"`
	Percentage float64 `json:"percentage" yaml:"percentage"`
	Count      int     `json:"count" yaml:"count"`
}

// CategoryBreakdown groups expenses by category, largest first. A positive
// limit keeps only the top entries.
func CategoryBreakdown(transactions []models.Transaction, limit int) []CategoryTotal {
	sums := map[string]decimal.Decimal{}
	counts := map[string]int{}
	total := decimal.Zero
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		cat := strings.TrimSpace(tx.Category)
		if cat == "" {
			cat = models.CategoryOther
		}
		sums[cat] = sums[cat].Add(tx.AbsAmount())
		counts[cat]++
		total = total.Add(tx.AbsAmount())
	}

	out := make([]CategoryTotal, 0, len(sums))
	for cat, sum := range sums {
		pct := decimal.Zero
		if total.IsPositive() {
			pct = sum.Div(total).Mul(hundred)
		}
		out = append(out, CategoryTotal{
			Category:   cat,
			Amount:     sum.InexactFloat64(),
			Percentage: pct.InexactFloat64(),
			Count:      counts[cat],
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PeriodTotal is an amount attributed to a day or month. Dated is false when
// the bucket key is the raw, unparsable date text.
type PeriodTotal struct {
	Period string  `json:"period" yaml:"period"`
	Amount float64 `json:"amount" yaml:"amount"`
	Dated  bool    `json:"dated" yaml:"dated"`
}

type bucket struct {
	key   string
	dated bool
	sum   decimal.Decimal
	order int
}

// buckets accumulates amounts per key, remembering first-seen order.
type buckets struct {
	index map[string]*bucket
	list  []*bucket
}

func newBuckets() *buckets {
	return &buckets{index: map[string]*bucket{}}
}

func (b *buckets) add(key string, dated bool, amount decimal.Decimal) {
	bk, ok := b.index[key]
	if !ok {
		bk = &bucket{key: key, dated: dated, order: len(b.list)}
		b.index[key] = bk
		b.list = append(b.list, bk)
	}
	bk.sum = bk.sum.Add(amount)
}

// sorted returns dated buckets chronologically, then undated ones in the
// order they were first seen.
func (b *buckets) sorted() []PeriodTotal {
	list := append([]*bucket(nil), b.list...)
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].dated != list[j].dated {
			return list[i].dated
		}
		if list[i].dated {
			return list[i].key < list[j].key
		}
		return list[i].order < list[j].order
	})
	out := make([]PeriodTotal, len(list))
	for i, bk := range list {
		out[i] = PeriodTotal{Period: bk.key, Amount: bk.sum.InexactFloat64(), Dated: bk.dated}
	}
	return out
}

func dayKey(date string) (string, bool) {
	if key, ok := dateutils.DayKey(date); ok {
		return key, true
	}
	return strings.TrimSpace(date), false
}

func monthKey(date string) (string, bool) {
	if key, ok := dateutils.MonthKey(date); ok {
		return key, true
	}
	return strings.TrimSpace(date), false
}

// DailySpending totals expenses per calendar day.
func DailySpending(transactions []models.Transaction) []PeriodTotal {
	b := newBuckets()
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		key, dated := dayKey(tx.Date)
		b.add(key, dated, tx.AbsAmount())
	}
	return b.sorted()
}

// MonthlySpending totals the absolute value of every transaction, income
// included, per calendar month.
func MonthlySpending(transactions []models.Transaction) []PeriodTotal {
	b := newBuckets()
	for _, tx := range transactions {
		key, dated := monthKey(tx.Date)
		b.add(key, dated, tx.AbsAmount())
	}
	return b.sorted()
}

// HighSpendingDays returns the days whose expenses exceed one and a half
// times the average daily expense. The average spreads total expenses over
// every day that has any transaction.
func HighSpendingDays(transactions []models.Transaction) []PeriodTotal {
	b := newBuckets()
	total := decimal.Zero
	for _, tx := range transactions {
		key, dated := dayKey(tx.Date)
		amount := decimal.Zero
		if tx.IsExpense() {
			amount = tx.AbsAmount()
			total = total.Add(amount)
		}
		b.add(key, dated, amount)
	}
	if len(b.list) == 0 || !total.IsPositive() {
		return nil
	}

	threshold := total.Div(decimal.NewFromInt(int64(len(b.list)))).Mul(decimal.NewFromFloat(1.5))
	var out []PeriodTotal
	for _, day := range b.sorted() {
		if decimal.NewFromFloat(day.Amount).GreaterThan(threshold) {
			out = append(out, day)
		}
	}
	return out
}

// MerchantCount is how often a merchant appears among expenses.
type MerchantCount struct {
	Merchant string `json:"merchant" yaml:"merchant"`
	Count    int    `json:"count" yaml:"count"`
}

// FrequentMerchants counts expenses by the first word of their description,
// most frequent first.
func FrequentMerchants(transactions []models.Transaction, limit int) []MerchantCount {
	counts := map[string]int{}
	for _, tx := range transactions {
		if !tx.IsExpense() {
			continue
		}
		if m := tx.Merchant(); m != "" {
			counts[m]++
		}
	}
	out := make([]MerchantCount, 0, len(counts))
	for m, n := range counts {
		out = append(out, MerchantCount{Merchant: m, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Merchant < out[j].Merchant
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// LastN returns the final n transactions in input order.
func LastN(transactions []models.Transaction, n int) []models.Transaction {
	if n <= 0 {
		return nil
	}
	if len(transactions) > n {
		transactions = transactions[len(transactions)-n:]
	}
	return append([]models.Transaction(nil), transactions...)
}
