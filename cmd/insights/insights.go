// Package insights handles the insights command
package insights

import (
	"errors"
	"fmt"

	"casha/finance-advisor/cmd/root"
	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/insight"
	"casha/finance-advisor/internal/parsererror"
	"casha/finance-advisor/internal/report"
	"casha/finance-advisor/internal/validation"

	"github.com/spf13/cobra"
)

// Format selects json or yaml output.
var Format string

// Cmd represents the insights command
var Cmd = &cobra.Command{
	Use:   "insights",
	Short: "Generate AI spending insights using Gemini model",
	Long: `Analyze a transaction export with Gemini and print the advice together
with the figures it is based on and category suggestions for rows without one.

Requires ai.enabled and GEMINI_API_KEY. Without them the report carries a
fallback message.

Example:
  GEMINI_API_KEY=... casha insights -i export.csv --ai-enabled`,
	RunE: insightsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Format, "format", "f", report.FormatJSON, "Output format: json or yaml")
}

func insightsFunc(cmd *cobra.Command, args []string) error {
	if err := validation.IsValidOutputFormat(Format, report.FormatJSON, report.FormatYAML); err != nil {
		return err
	}
	result, err := root.ParseInput()
	if err != nil {
		return fmt.Errorf("%s: %w", parsererror.UserMessage(err), err)
	}

	payload := insight.Payload{Transactions: result.Transactions}
	if root.SharedFlags.Currency != "" {
		payload.Currency, _ = currency.ParseCode(root.SharedFlags.Currency)
	}

	r, err := root.GetContainer().GetInsightService().Analyze(cmd.Context(), payload)
	switch {
	case errors.Is(err, insight.ErrGeneratorUnavailable):
		root.Log.Warn("AI insights are disabled, showing figures only")
	case errors.Is(err, insight.ErrGeneration):
		root.Log.WithError(err).Warn("Insight generation failed")
	case err != nil:
		return err
	}

	out, err := report.NewReportGenerator(root.Log).GenerateReport(r, Format)
	if err != nil {
		return err
	}
	return root.WriteOutput(cmd.OutOrStdout(), append(out, '\n'))
}
