// Package report renders summaries and insight reports for the command line.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/logging"
	"casha/finance-advisor/internal/summary"

	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"
)

// ReportGenerator renders reports in various formats.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &ReportGenerator{logger: logger.WithField("component", "ReportGenerator")}
}

// GenerateReport renders any report value as json or yaml.
func (g *ReportGenerator) GenerateReport(report interface{}, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return g.generateJSONReport(report)
	case FormatYAML, "yml":
		return g.generateYAMLReport(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

// GenerateSummary renders a summary report. Besides json and yaml it
// supports a plain text layout labelled for the given width.
func (g *ReportGenerator) GenerateSummary(r *summary.Report, format string, width summary.WidthClass) ([]byte, error) {
	if r == nil {
		return nil, fmt.Errorf("summary report cannot be nil")
	}
	if strings.ToLower(format) == FormatText || format == "" {
		return g.generateTextSummary(r, width)
	}
	return g.GenerateReport(r, format)
}

func (g *ReportGenerator) generateJSONReport(report interface{}) ([]byte, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *ReportGenerator) generateYAMLReport(report interface{}) ([]byte, error) {
	out, err := yaml.Marshal(report)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}

func (g *ReportGenerator) generateTextSummary(r *summary.Report, width summary.WidthClass) ([]byte, error) {
	var buf bytes.Buffer
	money := func(v float64) string { return currency.FormatCurrency(v, r.Currency) }

	fmt.Fprintf(&buf, "Currency:      %s\n", r.Currency)
	fmt.Fprintf(&buf, "Transactions:  %d\n", r.Totals.Count)
	fmt.Fprintf(&buf, "Income:        %s\n", r.Formatted.Income)
	fmt.Fprintf(&buf, "Expenses:      %s\n", r.Formatted.Expenses)
	fmt.Fprintf(&buf, "Net:           %s\n", r.Formatted.Net)
	fmt.Fprintf(&buf, "Savings rate:  %.1f%% (%s)\n", r.Totals.SavingsRate, r.SavingsStatus)
	fmt.Fprintf(&buf, "Profile:       %s\n", r.Profile)

	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	if len(r.Categories) > 0 {
		fmt.Fprintln(tw, "\nCategory\tAmount\tCount\tLabel")
		for _, c := range r.TopCategories(summary.CategoryLimit) {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", c.Category, money(c.Amount), c.Count,
				summary.SliceLabel(c.Category, c.Percentage, width))
		}
	}
	if len(r.MonthlySpending) > 0 {
		fmt.Fprintln(tw, "\nMonth\tActivity")
		for _, m := range r.MonthlySpending {
			fmt.Fprintf(tw, "%s\t%s\n", m.Period, money(m.Amount))
		}
	}
	if len(r.HighSpendingDays) > 0 {
		fmt.Fprintln(tw, "\nHigh-spending day\tExpenses")
		for _, d := range r.HighSpendingDays {
			fmt.Fprintf(tw, "%s\t%s\n", d.Period, money(d.Amount))
		}
	}
	if err := tw.Flush(); err != nil {
		return nil, fmt.Errorf("failed to render text report: %w", err)
	}
	return buf.Bytes(), nil
}
