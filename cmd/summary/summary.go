// Package summary handles the summary command
package summary

import (
	"fmt"

	"casha/finance-advisor/cmd/root"
	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/parsererror"
	"casha/finance-advisor/internal/report"
	"casha/finance-advisor/internal/summary"
	"casha/finance-advisor/internal/validation"

	"github.com/spf13/cobra"
)

var (
	// Width selects the chart label style.
	Width string
	// Format selects text, json or yaml output.
	Format string
)

// Cmd represents the summary command
var Cmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize income, expenses and spending patterns",
	Long: `Summarize a transaction export: totals, savings rate, spending profile,
category breakdown, monthly activity and high-spending days.

Example:
  casha summary -i export.csv
  casha summary -i export.xlsx --format yaml -o summary.yaml`,
	RunE: summaryFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Width, "width", "w", "wide", "Category label width: narrow, medium or wide")
	Cmd.Flags().StringVarP(&Format, "format", "f", report.FormatText, "Output format: text, json or yaml")
}

func summaryFunc(cmd *cobra.Command, args []string) error {
	width, err := summary.ParseWidthClass(Width)
	if err != nil {
		return err
	}
	if err := validation.IsValidOutputFormat(Format, report.FormatText, report.FormatJSON, report.FormatYAML); err != nil {
		return err
	}
	result, err := root.ParseInput()
	if err != nil {
		return fmt.Errorf("%s: %w", parsererror.UserMessage(err), err)
	}

	var code currency.Code
	if root.SharedFlags.Currency != "" {
		code, _ = currency.ParseCode(root.SharedFlags.Currency)
	}
	r := summary.Summarize(result.Transactions, code)

	out, err := report.NewReportGenerator(root.Log).GenerateSummary(r, Format, width)
	if err != nil {
		return err
	}
	return root.WriteOutput(cmd.OutOrStdout(), out)
}
