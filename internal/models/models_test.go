package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionBuilder_Defaults(t *testing.T) {
	tx, err := NewTransactionBuilder().
		WithRow(3).
		WithAmount(-12.5).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "2024-01-03", tx.Date)
	assert.Equal(t, DefaultDescription, tx.Description)
	assert.Equal(t, DefaultCategory, tx.Category)
	assert.Equal(t, -12.5, tx.Amount)
}

func TestPlaceholderDate(t *testing.T) {
	tests := []struct {
		row      int
		expected string
	}{
		{1, "2024-01-01"},
		{31, "2024-01-31"},
		{32, "2024-02-01"},
		{40, "2024-02-09"},
		{367, "2025-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlaceholderDate(tt.row))
		})
	}

	tx, err := NewTransactionBuilder().WithRow(40).WithAmount(1).Build()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-09", tx.Date)
}

func TestTransactionBuilder_CustomDefaults(t *testing.T) {
	tx, err := NewTransactionBuilder().
		WithDefaults("Transaksi", "Lainnya").
		WithRow(12).
		WithDescription("   ").
		WithAmount(1).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "2024-01-12", tx.Date)
	assert.Equal(t, "Transaksi", tx.Description)
	assert.Equal(t, "Lainnya", tx.Category)
}

func TestTransactionBuilder_KeepsValues(t *testing.T) {
	tx, err := NewTransactionBuilder().
		WithRow(1).
		WithDate(" yesterday ").
		WithDescription("Grocery Shopping").
		WithAmount(-150000).
		WithCategory("Food").
		Build()
	require.NoError(t, err)

	assert.Equal(t, Transaction{Date: "yesterday", Description: "Grocery Shopping", Amount: -150000, Category: "Food"}, tx)
}

func TestTransactionBuilder_Errors(t *testing.T) {
	_, err := NewTransactionBuilder().WithRow(0).Build()
	assert.Error(t, err)

	_, err = NewTransactionBuilder().WithRow(1).WithAmount(math.NaN()).Build()
	assert.Error(t, err)

	_, err = NewTransactionBuilder().WithAmount(1).Build()
	assert.Error(t, err)
}

func TestTransaction_Helpers(t *testing.T) {
	income := Transaction{Description: "salary march", Amount: 100}
	expense := Transaction{Description: "  netflix subscription", Amount: -15.99, Category: "uncategorized"}

	assert.True(t, income.IsIncome())
	assert.False(t, income.IsExpense())
	assert.True(t, expense.IsExpense())
	assert.Equal(t, "15.99", expense.AbsAmount().String())
	assert.Equal(t, "-15.99", expense.DecimalAmount().String())
	assert.True(t, expense.NeedsCategory())
	assert.True(t, income.NeedsCategory())
	assert.False(t, Transaction{Category: "Food"}.NeedsCategory())
	assert.Equal(t, "NETFLIX", expense.Merchant())
	assert.Equal(t, "", Transaction{}.Merchant())
}
