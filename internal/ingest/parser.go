// Package ingest turns uploaded CSV and spreadsheet files into validated
// transaction lists. Parsing is all-or-nothing: callers receive either the
// complete list or an error from parsererror, never a partial result.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"time"

	"casha/finance-advisor/internal/currency"
	"casha/finance-advisor/internal/logging"
	"casha/finance-advisor/internal/models"
	"casha/finance-advisor/internal/parsererror"
)

// DefaultMaxBytes is the upload bound applied when Options leaves it unset.
const DefaultMaxBytes int64 = 10 * 1024 * 1024

// Column positions of the logical schema.
const (
	colDate = iota
	colDescription
	colAmount
	colCategory
	minColumns
)

// Options tunes a Parser.
type Options struct {
	// MaxBytes bounds the input size; zero means DefaultMaxBytes.
	MaxBytes int64
	// Currency is the hint handed to the amount parser. When empty the hint
	// is sniffed from the amount column, falling back to USD.
	Currency currency.Code
	// Delimiter separates CSV fields; zero means a comma.
	Delimiter rune
	// DefaultDescription and DefaultCategory fill blank cells.
	DefaultDescription string
	DefaultCategory    string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		MaxBytes:           DefaultMaxBytes,
		Delimiter:          ',',
		DefaultDescription: models.DefaultDescription,
		DefaultCategory:    models.DefaultCategory,
	}
}

// Result is a successful parse.
type Result struct {
	Transactions []models.Transaction
	Kind         FileKind
	// Hint is the currency convention used to read textual amounts.
	Hint currency.Code
	// DataRows counts non-blank rows after the header; Dropped counts the
	// zero-amount rows among them that were discarded.
	DataRows int
	Dropped  int
}

// Parser decodes and validates transaction files.
type Parser struct {
	opts    Options
	catalog *currency.Catalog
	logger  logging.Logger
}

// NewParser creates a Parser. Zero-valued options take their defaults.
func NewParser(logger logging.Logger, opts Options) *Parser {
	defaults := DefaultOptions()
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = defaults.MaxBytes
	}
	if opts.Delimiter == 0 {
		opts.Delimiter = defaults.Delimiter
	}
	if opts.DefaultDescription == "" {
		opts.DefaultDescription = defaults.DefaultDescription
	}
	if opts.DefaultCategory == "" {
		opts.DefaultCategory = defaults.DefaultCategory
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Parser{opts: opts, catalog: currency.Default(), logger: logger}
}

// Options returns the effective options.
func (p *Parser) Options() Options {
	return p.opts
}

// ParseFile parses data of a known kind into transactions.
func (p *Parser) ParseFile(data []byte, kind FileKind) ([]models.Transaction, error) {
	res, err := p.parse(data, kind)
	if err != nil {
		return nil, err
	}
	return res.Transactions, nil
}

// Parse checks the size bound, works out the file kind from name and
// content, and parses data.
func (p *Parser) Parse(name string, data []byte) (*Result, error) {
	if err := p.checkSize(int64(len(data))); err != nil {
		return nil, err
	}
	kind, err := DetectKind(name, data)
	if err != nil {
		return nil, err
	}
	log := p.logger.WithFields(logging.F(logging.FieldFile, name), logging.F(logging.FieldFileKind, kind))
	res, err := p.parse(data, kind)
	if err != nil {
		log.WithError(err).Warn("Failed to parse transaction file")
		return nil, err
	}
	return res, nil
}

// ParseReader reads at most MaxBytes+1 bytes from r, failing with
// FileTooLarge as soon as the bound is crossed, then behaves like Parse.
func (p *Parser) ParseReader(name string, r io.Reader) (*Result, error) {
	data, err := io.ReadAll(io.LimitReader(r, p.opts.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	return p.Parse(name, data)
}

func (p *Parser) checkSize(size int64) error {
	if size > p.opts.MaxBytes {
		return parsererror.FileTooLarge(size, p.opts.MaxBytes)
	}
	return nil
}

func (p *Parser) parse(data []byte, kind FileKind) (*Result, error) {
	start := time.Now()
	if err := p.checkSize(int64(len(data))); err != nil {
		return nil, err
	}

	rows, err := p.decode(data, kind)
	if err != nil {
		return nil, err
	}
	rows = dropBlankRows(rows)

	if len(rows) < 2 {
		return nil, parsererror.EmptyFile()
	}
	if len(rows[0]) < minColumns {
		return nil, parsererror.InvalidHeader(len(rows[0]))
	}

	dataRows := rows[1:]
	hint := p.resolveHint(dataRows)

	transactions := make([]models.Transaction, 0, len(dataRows))
	dropped := 0
	for i, row := range dataRows {
		rowNum := i + 1
		if len(row) < minColumns {
			return nil, parsererror.IncompleteRow(rowNum, len(row))
		}

		amount, err := p.resolveAmount(row[colAmount], hint)
		if err != nil {
			return nil, parsererror.InvalidAmount(rowNum, row[colAmount].Text, &parsererror.ParseError{
				Parser: string(kind),
				Field:  "amount",
				Value:  row[colAmount].Text,
				Err:    err,
			})
		}
		if amount == 0 {
			dropped++
			p.logger.Debug("Dropping zero-amount row", logging.F(logging.FieldRow, rowNum))
			continue
		}

		tx, err := models.NewTransactionBuilder().
			WithDefaults(p.opts.DefaultDescription, p.opts.DefaultCategory).
			WithRow(rowNum).
			WithDate(row[colDate].Text).
			WithDescription(row[colDescription].Text).
			WithAmount(amount).
			WithCategory(row[colCategory].Text).
			Build()
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}
		transactions = append(transactions, tx)
	}

	if len(transactions) == 0 {
		return nil, parsererror.NoValidRows()
	}

	p.logger.Info("Parsed transaction file",
		logging.F(logging.FieldFileKind, kind),
		logging.F(logging.FieldCount, len(transactions)),
		logging.F(logging.FieldDropped, dropped),
		logging.F(logging.FieldCurrency, hint),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return &Result{
		Transactions: transactions,
		Kind:         kind,
		Hint:         hint,
		DataRows:     len(dataRows),
		Dropped:      dropped,
	}, nil
}

func (p *Parser) decode(data []byte, kind FileKind) ([][]Cell, error) {
	switch kind {
	case KindCSV:
		rows, err := decodeCSV(data, p.opts.Delimiter)
		if err != nil {
			return nil, &parsererror.IngestError{Kind: parsererror.KindUnsupportedFileType, Msg: "unreadable CSV", Err: err}
		}
		return rows, nil
	case KindSpreadsheet:
		return decodeSpreadsheet(data)
	default:
		return nil, parsererror.UnsupportedFileType(string(kind))
	}
}

// resolveAmount treats a blank cell as a placeholder zero and any other
// unparsable content as an error.
func (p *Parser) resolveAmount(c Cell, hint currency.Code) (float64, error) {
	if c.Blank() {
		return 0, nil
	}
	v, err := p.catalog.ParseAmountValue(c.Value(), hint)
	if errors.Is(err, currency.ErrEmptyAmount) {
		return 0, nil
	}
	return v, err
}

func (p *Parser) resolveHint(rows [][]Cell) currency.Code {
	if p.opts.Currency != "" {
		return p.opts.Currency
	}
	cells := make([]string, 0, len(rows))
	for _, row := range rows {
		if len(row) > colAmount && !row[colAmount].Numeric {
			cells = append(cells, row[colAmount].Text)
		}
	}
	if code, ok := p.catalog.SniffHint(cells); ok {
		return code
	}
	return currency.DefaultCode
}

func dropBlankRows(rows [][]Cell) [][]Cell {
	out := rows[:0:0]
	for _, row := range rows {
		for _, c := range row {
			if !c.Blank() {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// ParseFile parses data with default options and no logging.
func ParseFile(data []byte, kind FileKind) ([]models.Transaction, error) {
	return NewParser(nil, DefaultOptions()).ParseFile(data, kind)
}
