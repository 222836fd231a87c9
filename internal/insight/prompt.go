package insight

import (
	"fmt"
	"strings"
	"time"

	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/summary"
)

// BuildPrompt renders the advisor prompt for a payload and its summary. The
// output depends only on its arguments.
func BuildPrompt(payload Payload, report *summary.Report, now time.Time) string {
	code := report.Currency
	money := func(v float64) string { return currency.FormatCurrency(v, code) }
	t := report.Totals

	var b strings.Builder
	b.WriteString("You are a financial advisor. Analyze this user's real financial data and personalize every point.\n\n")
	fmt.Fprintf(&b, "USER PROFILE DETECTED: %s\n", report.Profile)
	fmt.Fprintf(&b, "ANALYSIS DATE: %s\n", now.Format("2006-01-02"))
	fmt.Fprintf(&b, "CURRENCY: %s\n", code)
	b.WriteString("FINANCIAL SNAPSHOT:\n")
	fmt.Fprintf(&b, "- Income: %s\n", money(t.Income))
	fmt.Fprintf(&b, "- Expenses: %s\n", money(t.Expenses))
	fmt.Fprintf(&b, "- Net Position: %s\n", money(t.Net))
	fmt.Fprintf(&b, "- Savings Rate: %.1f%%\n\n", t.SavingsRate)

	b.WriteString("TOP SPENDING CATEGORIES:\n")
	top := report.TopCategories(summary.CategoryLimit)
	if len(top) == 0 {
		b.WriteString("No expenses recorded\n")
	}
	for i, c := range top {
		fmt.Fprintf(&b, "%d. %s: %s (%.1f%%)\n", i+1, c.Category, money(c.Amount), c.Percentage)
	}

	b.WriteString("\nHIGH-SPENDING PATTERNS:\n")
	if days := report.HighSpendingDays; len(days) > 0 {
		var sum float64
		for _, d := range days {
			sum += d.Amount
		}
		fmt.Fprintf(&b, "Detected %d high-spending days averaging %s per day\n", len(days), money(sum/float64(len(days))))
	} else {
		b.WriteString("No unusual spending spikes detected\n")
	}

	if len(report.FrequentMerchants) > 0 {
		b.WriteString("\nFREQUENT MERCHANTS:\n")
		for _, m := range report.FrequentMerchants {
			fmt.Fprintf(&b, "- %s: %d transactions\n", m.Merchant, m.Count)
		}
	}

	fmt.Fprintf(&b, "\nDETAILED TRANSACTIONS (Last %d):\n", summary.RecentLimit)
	for _, tx := range summary.LastN(payload.Transactions, summary.RecentLimit) {
		sign := ""
		if tx.Amount >= 0 {
			sign = "+"
		}
		fmt.Fprintf(&b, "%s: %s -> %s%s [%s]\n", tx.Date, tx.Description, sign, money(tx.Amount), tx.Category)
	}

	b.WriteString(`
Based on this specific data, respond with these sections:

PERSONALIZED INSIGHTS: spending signature, biggest strength, primary risk.
BEHAVIORAL ANALYSIS: peak spending periods, spending triggers, category dominance.
CUSTOM OPTIMIZATION PLAN: monthly savings potential, quick wins with amounts, long-term strategy.
30-DAY ACTION PLAN: one concrete task per week with expected savings.
PREDICTIVE ANALYSIS: balance in 6 months at the current rate, savings from reducing the top category by 15%.

Use the exact numbers above in the stated currency and avoid generic advice.
`)
	return b.String()
}
