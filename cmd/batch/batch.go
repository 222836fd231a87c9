// Package batch handles batch processing of files
package batch

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"casha/finance-advisor/cmd/root"
	"casha/finance-advisor/internal/fileutils"
	"casha/finance-advisor/internal/ingest"
	"casha/finance-advisor/internal/logging"
	"casha/finance-advisor/internal/models"
	"casha/finance-advisor/internal/parsererror"
	"casha/finance-advisor/internal/validation"

	"github.com/spf13/cobra"
)

// Format selects csv or json output files.
var Format string

// supportedExtensions are the inputs picked up from the directory.
var supportedExtensions = []string{".csv", ".txt", ".xlsx", ".xlsm"}

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process files from a directory",
	Long: `Batch process files from an input directory and output them to another directory.

Every CSV and XLSX file in the input directory is parsed independently and
written as a normalized file of the same base name. Files that fail to parse
are reported and skipped.

Example:
  casha batch -i exports/ -o normalized/`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Format, "format", "f", "csv", "Output format: csv or json")
}

// Summary counts the outcome of a batch run.
type Summary struct {
	Converted int
	Failed    int
}

func batchFunc(cmd *cobra.Command, args []string) error {
	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		return fmt.Errorf("input and output directories must be specified")
	}
	if err := validation.IsValidDirectory(inputDir); err != nil {
		return err
	}
	if err := validation.IsValidOutputFormat(Format, "csv", "json"); err != nil {
		return err
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return err
	}

	c := root.GetContainer()
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	summary, err := ConvertDirectory(inputDir, outputDir, strings.ToLower(Format), c.GetParser(), root.Log)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Batch processing completed. %d files converted, %d failed.\n",
		summary.Converted, summary.Failed)
	return nil
}

// ConvertDirectory parses each supported file in inputDir and writes the
// normalized transactions to outputDir.
func ConvertDirectory(inputDir, outputDir, format string, p *ingest.Parser, logger logging.Logger) (Summary, error) {
	var summary Summary
	files, err := fileutils.ListFilesWithExtensions(inputDir, supportedExtensions...)
	if err != nil {
		return summary, err
	}
	if len(files) == 0 {
		logger.Warn("No supported files found in input directory")
		return summary, nil
	}
	logger.Info("Found files for processing", logging.F(logging.FieldCount, len(files)))

	for _, file := range files {
		out := fileutils.OutputPath(file, outputDir, format)
		if err := convertFile(file, out, format, p); err != nil {
			summary.Failed++
			logger.WithError(err).Warn("Skipping file",
				logging.F(logging.FieldFile, filepath.Base(file)),
				logging.F(logging.FieldReason, parsererror.UserMessage(err)))
			continue
		}
		summary.Converted++
		logger.Info("Converted file",
			logging.F(logging.FieldFile, filepath.Base(file)),
			logging.F(logging.FieldOutputFile, out))
	}
	return summary, nil
}

func convertFile(in, out, format string, p *ingest.Parser) error {
	data, err := fileutils.ReadFileLimited(in, p.Options().MaxBytes)
	if err != nil {
		return err
	}
	result, err := p.Parse(filepath.Base(in), data)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if format == "json" {
		err = ingest.WriteJSON(&buf, result.Transactions)
	} else {
		err = ingest.WriteCSV(&buf, result.Transactions, p.Options().Delimiter)
	}
	if err != nil {
		return err
	}
	return fileutils.WriteFile(out, buf.Bytes(), models.PermissionReportFile)
}
