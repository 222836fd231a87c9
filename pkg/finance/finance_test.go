package finance_test

import (
	"errors"
	"testing"

	"casha/finance-advisor/internal/parsererror"
	"casha/finance-advisor/pkg/finance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rupiahCSV = "Date,Description,Amount,Category\n" +
	"2024-01-15,Grocery Shopping,-150000,Food\n" +
	"2024-01-14,Salary,5000000,Income\n"

func TestParseFile(t *testing.T) {
	txs, err := finance.ParseFile([]byte(rupiahCSV), finance.CSV)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, finance.Transaction{Date: "2024-01-15", Description: "Grocery Shopping", Amount: -150000, Category: "Food"}, txs[0])

	assert.Equal(t, finance.IDR, finance.DetectCurrency(txs))
}

func TestParseFile_Errors(t *testing.T) {
	_, err := finance.ParseFile([]byte("Date,Description,Amount,Category\n"), finance.CSV)
	require.Error(t, err)

	var ie *parsererror.IngestError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, parsererror.KindEmptyFile, ie.Kind)
}

func TestParseNamedFile(t *testing.T) {
	txs, err := finance.ParseNamedFile("export.csv", []byte(rupiahCSV))
	require.NoError(t, err)
	assert.Len(t, txs, 2)

	_, err = finance.ParseNamedFile("statement.pdf", []byte("%PDF-1.4"))
	assert.True(t, errors.Is(err, parsererror.ErrUnsupportedFileType))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		hint finance.Currency
		want float64
	}{
		{"Rp 1.500.000", finance.IDR, 1500000},
		{"€1.234,56", finance.EUR, 1234.56},
		{"$1,234.56", finance.USD, 1234.56},
		{"-42", "", -42},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := finance.ParseAmount(tt.raw, tt.hint)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	_, err := finance.ParseAmount("n/a", finance.USD)
	assert.Error(t, err)
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.50", finance.FormatCurrency(1234.5, finance.USD))
	assert.Equal(t, "-$10.00", finance.FormatCurrency(-10, finance.USD))
	assert.Equal(t, "$1,000.00", finance.FormatCurrency(1000, "ZZZ"))
}

func TestDetectCurrency_Empty(t *testing.T) {
	assert.Equal(t, finance.USD, finance.DetectCurrency(nil))
}
