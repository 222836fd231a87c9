// Package insight assembles the narrative analysis of a transaction list:
// it builds a prompt from the summary views, asks a text generator for
// advice and attaches the derived figures the client displays with it.
package insight

import (
	"errors"

	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/models"
)

// Fallback texts returned in place of generated insights.
const (
	FallbackInsights      = "Unable to generate AI insights at this time. Please try again later."
	BlankResponseInsights = "Unable to generate insights at this time."
)

var (
	// ErrEmptyPayload is returned when there are no transactions to analyze.
	ErrEmptyPayload = errors.New("no transactions to analyze")
	// ErrGeneratorUnavailable is returned when no generator is configured.
	ErrGeneratorUnavailable = errors.New("insight generator not configured")
	// ErrGeneration wraps failures of the text generator.
	ErrGeneration = errors.New("insight generation failed")
)

// Payload is the body sent for analysis.
type Payload struct {
	Transactions []models.Transaction `json:"transactions"`
	Currency     currency.Code        `json:"currency,omitempty"`
}

// Validate rejects payloads without transactions.
func (p Payload) Validate() error {
	if len(p.Transactions) == 0 {
		return ErrEmptyPayload
	}
	return nil
}
