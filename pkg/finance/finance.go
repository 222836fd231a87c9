// Package finance is the public entry point for reading transaction exports.
// It exposes the amount parser, currency detection and formatting, and the
// tabular file parser without the CLI or HTTP layers.
package finance

import (
	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/ingest"
	"casha/finance-advisor/internal/models"
	"casha/finance-advisor/internal/summary"
)

// Transaction is one normalized row of an export.
type Transaction = models.Transaction

// Currency is an ISO 4217 code from the supported catalog.
type Currency = currency.Code

// FileKind selects the decoder for ParseFile.
type FileKind = ingest.FileKind

// Supported file kinds.
const (
	CSV         FileKind = ingest.KindCSV
	Spreadsheet FileKind = ingest.KindSpreadsheet
)

// Supported currencies.
const (
	USD Currency = currency.USD
	EUR Currency = currency.EUR
	GBP Currency = currency.GBP
	JPY Currency = currency.JPY
	IDR Currency = currency.IDR
	CNY Currency = currency.CNY
	INR Currency = currency.INR
	KRW Currency = currency.KRW
	CAD Currency = currency.CAD
	AUD Currency = currency.AUD
)

// ParseAmount converts a human-written amount such as "Rp 1.500.000" or
// "€1.234,56" to a number. The hint decides how separators are read; an
// empty hint means dot-decimal conventions.
func ParseAmount(raw string, hint Currency) (float64, error) {
	return currency.ParseAmount(raw, hint)
}

// DetectCurrency guesses the currency of a transaction list from its
// descriptions and amount magnitudes. It never fails; USD is the default.
func DetectCurrency(transactions []Transaction) Currency {
	return summary.DetectCurrency(transactions)
}

// FormatCurrency renders amount in the currency's local style.
func FormatCurrency(amount float64, code Currency) string {
	return currency.FormatCurrency(amount, code)
}

// ParseFile decodes a CSV or spreadsheet export with default options.
// Errors are *parsererror.IngestError values.
func ParseFile(data []byte, kind FileKind) ([]Transaction, error) {
	return ingest.ParseFile(data, kind)
}

// ParseNamedFile is ParseFile with the kind detected from name and content.
func ParseNamedFile(name string, data []byte) ([]Transaction, error) {
	res, err := ingest.NewParser(nil, ingest.DefaultOptions()).Parse(name, data)
	if err != nil {
		return nil, err
	}
	return res.Transactions, nil
}
