package summary

import (
	"testing"

	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransactions() []models.Transaction {
	return []models.Transaction{
		{Date: "2024-01-01", Description: "Salary January", Amount: 3000, Category: "Income"},
		{Date: "2024-01-02", Description: "Grocery store", Amount: -150, Category: "Food & Dining"},
		{Date: "2024-01-02", Description: "Grocery market", Amount: -50, Category: "Food & Dining"},
		{Date: "2024-01-03", Description: "Netflix", Amount: -15, Category: "Entertainment"},
		{Date: "2024-01-05", Description: "Rent", Amount: -1200, Category: "Housing"},
		{Date: "2024-02-01", Description: "Salary February", Amount: 3000, Category: "Income"},
		{Date: "2024-02-03", Description: "Gas station", Amount: -60, Category: ""},
	}
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(sampleTransactions())
	assert.Equal(t, 6000.0, totals.Income)
	assert.Equal(t, 1475.0, totals.Expenses)
	assert.Equal(t, 4525.0, totals.Net)
	assert.InDelta(t, 75.4166, totals.SavingsRate, 0.001)
	assert.Equal(t, 7, totals.Count)
}

func TestComputeTotals_NoIncome(t *testing.T) {
	totals := ComputeTotals([]models.Transaction{{Amount: -10}, {Amount: -5.5}})
	assert.Equal(t, 0.0, totals.Income)
	assert.Equal(t, 15.5, totals.Expenses)
	assert.Equal(t, -15.5, totals.Net)
	assert.Equal(t, 0.0, totals.SavingsRate)

	assert.Equal(t, Totals{}, ComputeTotals(nil))
}

func TestComputeTotals_DecimalSums(t *testing.T) {
	totals := ComputeTotals([]models.Transaction{{Amount: 0.1}, {Amount: 0.2}})
	assert.Equal(t, 0.3, totals.Income)
}

func TestCategoryBreakdown(t *testing.T) {
	got := CategoryBreakdown(sampleTransactions(), 0)
	require.Len(t, got, 4)

	assert.Equal(t, "Housing", got[0].Category)
	assert.Equal(t, 1200.0, got[0].Amount)
	assert.Equal(t, "Food & Dining", got[1].Category)
	assert.Equal(t, 200.0, got[1].Amount)
	assert.Equal(t, 2, got[1].Count)
	assert.Equal(t, "Other", got[2].Category)
	assert.Equal(t, "Entertainment", got[3].Category)

	var pct float64
	for _, c := range got {
		pct += c.Percentage
	}
	assert.InDelta(t, 100, pct, 0.0001)

	top := CategoryBreakdown(sampleTransactions(), 2)
	assert.Len(t, top, 2)
}

func TestCategoryBreakdown_TiesByName(t *testing.T) {
	got := CategoryBreakdown([]models.Transaction{
		{Amount: -10, Category: "Zoo"},
		{Amount: -10, Category: "Art"},
		{Amount: 50, Category: "Income"},
	}, 0)
	require.Len(t, got, 2)
	assert.Equal(t, "Art", got[0].Category)
	assert.Equal(t, "Zoo", got[1].Category)
	assert.Equal(t, 50.0, got[0].Percentage)
}

func TestDailySpending(t *testing.T) {
	txs := []models.Transaction{
		{Date: "sometime", Amount: -5},
		{Date: "2024-01-03", Amount: -10},
		{Date: "02.01.2024", Amount: -20},
		{Date: "2024-01-02", Amount: -1},
		{Date: "2024-01-02", Amount: 500},
		{Date: "later", Amount: -7},
	}
	got := DailySpending(txs)
	require.Len(t, got, 4)
	assert.Equal(t, PeriodTotal{Period: "2024-01-02", Amount: 21, Dated: true}, got[0])
	assert.Equal(t, PeriodTotal{Period: "2024-01-03", Amount: 10, Dated: true}, got[1])
	assert.Equal(t, PeriodTotal{Period: "sometime", Amount: 5}, got[2])
	assert.Equal(t, PeriodTotal{Period: "later", Amount: 7}, got[3])
}

func TestMonthlySpending(t *testing.T) {
	got := MonthlySpending(sampleTransactions())
	require.Len(t, got, 2)
	assert.Equal(t, "2024-01", got[0].Period)
	assert.Equal(t, 4415.0, got[0].Amount)
	assert.Equal(t, "2024-02", got[1].Period)
	assert.Equal(t, 3060.0, got[1].Amount)
}

func TestHighSpendingDays(t *testing.T) {
	// 1475 of expenses over 6 distinct days: threshold is 368.75.
	got := HighSpendingDays(sampleTransactions())
	require.Len(t, got, 1)
	assert.Equal(t, "2024-01-05", got[0].Period)
	assert.Equal(t, 1200.0, got[0].Amount)

	assert.Nil(t, HighSpendingDays(nil))
	assert.Nil(t, HighSpendingDays([]models.Transaction{{Date: "2024-01-01", Amount: 10}}))
}

func TestFrequentMerchants(t *testing.T) {
	got := FrequentMerchants(sampleTransactions(), 2)
	require.Len(t, got, 2)
	assert.Equal(t, MerchantCount{Merchant: "GROCERY", Count: 2}, got[0])
	assert.Equal(t, MerchantCount{Merchant: "GAS", Count: 1}, got[1])
}

func TestProfileAndSavingsStatus(t *testing.T) {
	assert.Equal(t, ProfileHighSpender, Profile(Totals{Income: 100, Expenses: 81}))
	assert.Equal(t, ProfileBalanced, Profile(Totals{Income: 100, Expenses: 80}))
	assert.Equal(t, ProfileBalanced, Profile(Totals{Income: 100, Expenses: 50}))
	assert.Equal(t, ProfileConservativeSaver, Profile(Totals{Income: 100, Expenses: 49}))
	assert.Equal(t, ProfileHighSpender, Profile(Totals{Expenses: 1}))

	assert.Equal(t, SavingsNeedsImprovement, SavingsStatus(19.9))
	assert.Equal(t, SavingsGood, SavingsStatus(20))
	assert.Equal(t, SavingsGood, SavingsStatus(29.99))
	assert.Equal(t, SavingsExcellent, SavingsStatus(30))
	assert.Equal(t, SavingsNeedsImprovement, SavingsStatus(-40))
}

func TestLastN(t *testing.T) {
	txs := sampleTransactions()
	last := LastN(txs, 2)
	require.Len(t, last, 2)
	assert.Equal(t, "Salary February", last[0].Description)
	assert.Equal(t, "Gas station", last[1].Description)

	last[0].Description = "changed"
	assert.Equal(t, "Salary February", txs[5].Description)

	assert.Len(t, LastN(txs, 100), len(txs))
	assert.Nil(t, LastN(txs, 0))
}

func TestSliceLabel(t *testing.T) {
	tests := []struct {
		name  string
		width WidthClass
		want  string
	}{
		{"Entertainment", WidthNarrow, "12.5%"},
		{"Entertainment", WidthMedium, "Entertai... 12.5%"},
		{"Food", WidthMedium, "Food 12.5%"},
		{"Entertainment", WidthWide, "Entertainment 12.5%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SliceLabel(tt.name, 12.5, tt.width))
	}
}

func TestParseWidthClass(t *testing.T) {
	w, err := ParseWidthClass("Narrow")
	require.NoError(t, err)
	assert.Equal(t, WidthNarrow, w)

	w, err = ParseWidthClass("")
	require.NoError(t, err)
	assert.Equal(t, WidthWide, w)

	_, err = ParseWidthClass("huge")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	r := Summarize(sampleTransactions(), currency.USD)
	assert.Equal(t, currency.USD, r.Currency)
	assert.Equal(t, "$6,000.00", r.Formatted.Income)
	assert.Equal(t, "$1,475.00", r.Formatted.Expenses)
	assert.Equal(t, "$4,525.00", r.Formatted.Net)
	assert.Equal(t, ProfileConservativeSaver, r.Profile)
	assert.Equal(t, SavingsExcellent, r.SavingsStatus)
	assert.Len(t, r.Categories, 4)
	assert.Len(t, r.TopCategories(CategoryLimit), 4)
	assert.Len(t, r.TopCategories(1), 1)
	assert.Len(t, r.Recent, 7)
}

func TestSummarize_DetectsCurrency(t *testing.T) {
	txs := []models.Transaction{
		{Date: "2024-01-15", Description: "Grocery Shopping", Amount: -150000, Category: "Food"},
		{Date: "2024-01-14", Description: "Salary", Amount: 5000000, Category: "Income"},
	}
	r := Summarize(txs, "")
	assert.Equal(t, currency.IDR, r.Currency)
}
