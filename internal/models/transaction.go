// Package models provides the data structures used throughout the application.
package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Transaction is one parsed row of financial activity. A positive Amount is
// income, a negative Amount is an expense.
type Transaction struct {
	Date        string  `csv:"date" json:"date" yaml:"date"`
	Description string  `csv:"description" json:"description" yaml:"description"`
	Amount      float64 `csv:"amount" json:"amount" yaml:"amount"`
	Category    string  `csv:"category" json:"category" yaml:"category"`
}

// IsIncome reports whether the transaction credits the account.
func (t Transaction) IsIncome() bool {
	return t.Amount > 0
}

// IsExpense reports whether the transaction debits the account.
func (t Transaction) IsExpense() bool {
	return t.Amount < 0
}

// AbsAmount returns the magnitude of the amount as a decimal.
func (t Transaction) AbsAmount() decimal.Decimal {
	return decimal.NewFromFloat(t.Amount).Abs()
}

// DecimalAmount returns the signed amount as a decimal.
func (t Transaction) DecimalAmount() decimal.Decimal {
	return decimal.NewFromFloat(t.Amount)
}

// NeedsCategory reports whether the category is blank or the uncategorized marker.
func (t Transaction) NeedsCategory() bool {
	c := strings.TrimSpace(t.Category)
	return c == "" || strings.EqualFold(c, CategoryUncategorized)
}

// Merchant returns the first word of the description in upper case.
func (t Transaction) Merchant() string {
	fields := strings.Fields(t.Description)
	if len(fields) == 0 {
		return ""
	}
	return strings.ToUpper(fields[0])
}
