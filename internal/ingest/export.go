package ingest

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"casha/finance-advisor/internal/models"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes transactions with a date,description,amount,category
// header, in the same schema the parser accepts.
func WriteCSV(w io.Writer, transactions []models.Transaction, delimiter rune) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	if delimiter == 0 {
		delimiter = ','
	}
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = delimiter
	if err := gocsv.MarshalCSV(transactions, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}

// ReadCSV reads a file previously produced by WriteCSV. Unlike the upload
// parser it maps columns by header name and performs no defaulting.
func ReadCSV(r io.Reader) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := gocsv.Unmarshal(r, &transactions); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return transactions, nil
}

// WriteJSON writes transactions as an indented JSON array.
func WriteJSON(w io.Writer, transactions []models.Transaction) error {
	if transactions == nil {
		transactions = []models.Transaction{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(transactions); err != nil {
		return fmt.Errorf("error writing JSON data: %w", err)
	}
	return nil
}
