package models

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// TransactionBuilder provides a fluent API for constructing transactions.
// Blank fields are filled from the builder's defaults when Build is called.
type TransactionBuilder struct {
	tx                 Transaction
	row                int
	defaultDescription string
	defaultCategory    string
	err                error
}

// NewTransactionBuilder creates a new TransactionBuilder with default values
func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		defaultDescription: DefaultDescription,
		defaultCategory:    DefaultCategory,
	}
}

// WithDefaults overrides the labels used for blank description and category
// cells. Empty arguments keep the current values.
func (b *TransactionBuilder) WithDefaults(description, category string) *TransactionBuilder {
	if description != "" {
		b.defaultDescription = description
	}
	if category != "" {
		b.defaultCategory = category
	}
	return b
}

// WithRow sets the 1-based data row the transaction came from. It is used to
// synthesize a placeholder date when the date cell is blank.
func (b *TransactionBuilder) WithRow(row int) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if row < 1 {
		b.err = fmt.Errorf("row must be positive, got %d", row)
		return b
	}
	b.row = row
	return b
}

// WithDate sets the date text. Unparsable dates are kept as-is.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Date = strings.TrimSpace(date)
	return b
}

// WithDescription sets the description.
func (b *TransactionBuilder) WithDescription(description string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Description = strings.TrimSpace(description)
	return b
}

// WithAmount sets the signed amount.
func (b *TransactionBuilder) WithAmount(amount float64) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		b.err = errors.New("amount must be a finite number")
		return b
	}
	b.tx.Amount = amount
	return b
}

// WithCategory sets the category label.
func (b *TransactionBuilder) WithCategory(category string) *TransactionBuilder {
	if b.err != nil {
		return b
	}
	b.tx.Category = strings.TrimSpace(category)
	return b
}

// Build applies defaults and returns the transaction.
func (b *TransactionBuilder) Build() (Transaction, error) {
	if b.err != nil {
		return Transaction{}, fmt.Errorf("builder error: %w", b.err)
	}

	tx := b.tx
	if tx.Date == "" {
		if b.row < 1 {
			return Transaction{}, errors.New("date is required when no row is set")
		}
		tx.Date = PlaceholderDate(b.row)
	}
	if tx.Description == "" {
		tx.Description = b.defaultDescription
	}
	if tx.Category == "" {
		tx.Category = b.defaultCategory
	}
	return tx, nil
}

// PlaceholderDate synthesizes a calendar date for the 1-based data row index,
// counting days from 2024-01-01. Row 32 becomes 2024-02-01.
func PlaceholderDate(row int) string {
	return time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, row-1).
		Format("2006-01-02")
}
