// Package detect handles the detect command
package detect

import (
	"fmt"

	"casha/finance-advisor/cmd/root"
	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/parsererror"
	"casha/finance-advisor/internal/summary"

	"github.com/spf13/cobra"
)

// Cmd represents the detect command
var Cmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect the currency of a transaction export",
	Long: `Detect the most likely currency of a transaction export from the
keywords in its descriptions and the typical magnitude of its amounts.

Example:
  casha detect -i export.csv`,
	RunE: detectFunc,
}

func detectFunc(cmd *cobra.Command, args []string) error {
	result, err := root.ParseInput()
	if err != nil {
		return fmt.Errorf("%s: %w", parsererror.UserMessage(err), err)
	}

	code := summary.DetectCurrency(result.Transactions)
	totals := summary.ComputeTotals(result.Transactions)
	out := fmt.Sprintf("Detected currency: %s\nAmounts read as:   %s\nNet position:      %s\n",
		code, result.Hint, currency.FormatCurrency(totals.Net, code))
	return root.WriteOutput(cmd.OutOrStdout(), []byte(out))
}
