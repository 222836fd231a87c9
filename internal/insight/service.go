package insight

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"casha/finance-advisor/internal/categorizer"
	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/logging"
	"casha/finance-advisor/internal/models"
	"casha/finance-advisor/internal/summary"
)

// Report is the analysis returned to clients.
type Report struct {
	Insights                  string                      `json:"insights"`
	Currency                  currency.Code               `json:"currency"`
	Profile                   summary.SpendingProfile     `json:"profile"`
	CategorizationSuggestions []models.CategorySuggestion `json:"categorizationSuggestions"`
	MonthlySpending           map[string]float64          `json:"monthlySpending"`
	TotalIncome               float64                     `json:"totalIncome"`
	TotalExpenses             float64                     `json:"totalExpenses"`
	// SavingsRate is a percentage with one decimal, "0" without income.
	SavingsRate string `json:"savingsRate"`
}

// Validate checks that every field is present. Values are not checked.
func (r *Report) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Insights) == "" {
		missing = append(missing, "insights")
	}
	if r.CategorizationSuggestions == nil {
		missing = append(missing, "categorizationSuggestions")
	}
	if r.MonthlySpending == nil {
		missing = append(missing, "monthlySpending")
	}
	if r.SavingsRate == "" {
		missing = append(missing, "savingsRate")
	}
	if len(missing) > 0 {
		return fmt.Errorf("insight report missing fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Service produces insight reports.
type Service struct {
	generator   Generator
	categorizer *categorizer.Categorizer
	logger      logging.Logger
	timeout     time.Duration
	now         func() time.Time
}

// NewService creates a Service. A nil categorizer uses the built-in rules;
// a nil generator makes Analyze fail with ErrGeneratorUnavailable after
// computing the derived fields.
func NewService(generator Generator, cat *categorizer.Categorizer, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if cat == nil {
		cat = categorizer.NewCategorizer(nil, logger)
	}
	return &Service{
		generator:   generator,
		categorizer: cat,
		logger:      logger,
		now:         time.Now,
	}
}

// WithTimeout bounds each generator call.
func (s *Service) WithTimeout(d time.Duration) *Service {
	s.timeout = d
	return s
}

// WithClock replaces the clock used for the analysis date.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// Analyze builds the report for payload. When the generator fails the
// returned report still carries the derived fields with FallbackInsights as
// its text, alongside an error wrapping ErrGeneration.
func (s *Service) Analyze(ctx context.Context, payload Payload) (*Report, error) {
	if err := payload.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()

	sum := summary.Summarize(payload.Transactions, payload.Currency)
	report := &Report{
		Currency:                  sum.Currency,
		Profile:                   sum.Profile,
		CategorizationSuggestions: s.categorizer.Suggest(ctx, payload.Transactions),
		MonthlySpending:           monthlyMap(sum.MonthlySpending),
		TotalIncome:               sum.Totals.Income,
		TotalExpenses:             sum.Totals.Expenses,
		SavingsRate:               savingsRate(sum.Totals),
	}
	log := s.logger.WithFields(
		logging.F(logging.FieldCount, len(payload.Transactions)),
		logging.F(logging.FieldCurrency, sum.Currency))

	if s.generator == nil {
		report.Insights = FallbackInsights
		return report, ErrGeneratorUnavailable
	}

	genCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.generator.Generate(genCtx, BuildPrompt(payload, sum, s.now()))
	if err != nil {
		log.WithError(err).Error("Failed to generate insights")
		report.Insights = FallbackInsights
		return report, errors.Join(ErrGeneration, err)
	}
	if strings.TrimSpace(text) == "" {
		log.Warn("Generator returned an empty response")
		text = BlankResponseInsights
	}
	report.Insights = text

	log.Info("Generated insights", logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))
	return report, nil
}

func monthlyMap(periods []summary.PeriodTotal) map[string]float64 {
	out := make(map[string]float64, len(periods))
	for _, p := range periods {
		out[p.Period] = p.Amount
	}
	return out
}

func savingsRate(t summary.Totals) string {
	if t.Income <= 0 {
		return "0"
	}
	return fmt.Sprintf("%.1f", t.SavingsRate)
}
