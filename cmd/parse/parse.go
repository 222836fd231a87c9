// Package parse handles the parse command
package parse

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"casha/finance-advisor/cmd/root"
	"casha/finance-advisor/internal/ingest"
	"casha/finance-advisor/internal/parsererror"
	"casha/finance-advisor/internal/validation"

	"github.com/spf13/cobra"
)

// Format selects the output encoding; empty means derive it from --output.
var Format string

// Cmd represents the parse command
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a CSV or XLSX export into normalized transactions",
	Long: `Parse a transaction export and write the normalized transactions as CSV or JSON.

The input needs a header row followed by date, description, amount and
category columns. Amounts may carry currency symbols, codes and either
thousands convention.

Example:
  casha parse -i statement.xlsx -o statement.csv
  casha parse -i export.csv --currency IDR --format json`,
	RunE: parseFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Format, "format", "f", "", "Output format: csv or json (default: from output extension, else csv)")
}

func parseFunc(cmd *cobra.Command, args []string) error {
	format := outputFormat(Format, root.SharedFlags.Output)
	if err := validation.IsValidOutputFormat(format, "csv", "json"); err != nil {
		return err
	}
	result, err := root.ParseInput()
	if err != nil {
		return fmt.Errorf("%s: %w", parsererror.UserMessage(err), err)
	}

	var buf bytes.Buffer
	switch format {
	case "json":
		err = ingest.WriteJSON(&buf, result.Transactions)
	case "csv":
		delim := root.GetContainer().GetParser().Options().Delimiter
		err = ingest.WriteCSV(&buf, result.Transactions, delim)
	}
	if err != nil {
		return err
	}
	return root.WriteOutput(cmd.OutOrStdout(), buf.Bytes())
}

func outputFormat(flag, output string) string {
	if flag != "" {
		return strings.ToLower(flag)
	}
	if strings.EqualFold(filepath.Ext(output), ".json") {
		return "json"
	}
	return "csv"
}
