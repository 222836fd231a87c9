// Package parsererror defines the errors raised while ingesting transaction
// files and their translation into messages shown to the user.
package parsererror

import (
	"errors"
	"fmt"
)

// Kind classifies an ingestion failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindEmptyFile
	KindInvalidHeader
	KindIncompleteRow
	KindInvalidAmount
	KindNoValidRows
	KindUnsupportedFileType
	KindFileTooLarge
)

var kindNames = map[Kind]string{
	KindUnknown:             "Unknown",
	KindEmptyFile:           "EmptyFile",
	KindInvalidHeader:       "InvalidHeader",
	KindIncompleteRow:       "IncompleteRow",
	KindInvalidAmount:       "InvalidAmount",
	KindNoValidRows:         "NoValidRows",
	KindUnsupportedFileType: "UnsupportedFileType",
	KindFileTooLarge:        "FileTooLarge",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Sentinels, one per kind, for use with errors.Is.
var (
	ErrEmptyFile           = errors.New("file must contain a header row and at least one data row")
	ErrInvalidHeader       = errors.New("header must have at least 4 columns: date, description, amount, category")
	ErrIncompleteRow       = errors.New("row has fewer than 4 columns")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrNoValidRows         = errors.New("no valid transactions found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file is too large")
)

var kindSentinels = map[Kind]error{
	KindEmptyFile:           ErrEmptyFile,
	KindInvalidHeader:       ErrInvalidHeader,
	KindIncompleteRow:       ErrIncompleteRow,
	KindInvalidAmount:       ErrInvalidAmount,
	KindNoValidRows:         ErrNoValidRows,
	KindUnsupportedFileType: ErrUnsupportedFileType,
	KindFileTooLarge:        ErrFileTooLarge,
}

// IngestError is a failure of the tabular file parser. Row is the 1-based
// data row (the header is not counted) and is zero when not applicable.
type IngestError struct {
	Kind  Kind
	Row   int
	Value string
	Msg   string
	Err   error
}

func (e *IngestError) Error() string {
	msg := e.Msg
	if msg == "" {
		if s, ok := kindSentinels[e.Kind]; ok {
			msg = s.Error()
		} else {
			msg = e.Kind.String()
		}
	}
	switch {
	case e.Row > 0 && e.Value != "":
		msg = fmt.Sprintf("row %d: %s %q", e.Row, msg, e.Value)
	case e.Row > 0:
		msg = fmt.Sprintf("row %d: %s", e.Row, msg)
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *IngestError) Unwrap() []error {
	var errs []error
	if s, ok := kindSentinels[e.Kind]; ok {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// New creates an IngestError of the given kind.
func New(kind Kind, msg string) *IngestError {
	return &IngestError{Kind: kind, Msg: msg}
}

// EmptyFile reports a document with fewer than two rows.
func EmptyFile() *IngestError { return &IngestError{Kind: KindEmptyFile} }

// InvalidHeader reports a header row with fewer than four columns.
func InvalidHeader(columns int) *IngestError {
	return &IngestError{Kind: KindInvalidHeader, Msg: fmt.Sprintf("%s (found %d)", ErrInvalidHeader, columns)}
}

// IncompleteRow reports a data row with fewer than four cells.
func IncompleteRow(row, cells int) *IngestError {
	return &IngestError{Kind: KindIncompleteRow, Row: row, Msg: fmt.Sprintf("%s (found %d)", ErrIncompleteRow, cells)}
}

// InvalidAmount reports an amount cell that could not be parsed.
func InvalidAmount(row int, raw string, cause error) *IngestError {
	return &IngestError{Kind: KindInvalidAmount, Row: row, Value: raw, Err: cause}
}

// NoValidRows reports that filtering left nothing.
func NoValidRows() *IngestError { return &IngestError{Kind: KindNoValidRows} }

// UnsupportedFileType reports input that is neither CSV nor a workbook.
func UnsupportedFileType(name string) *IngestError {
	return &IngestError{Kind: KindUnsupportedFileType, Value: name}
}

// FileTooLarge reports input above the configured size bound.
func FileTooLarge(size, limit int64) *IngestError {
	return &IngestError{
		Kind: KindFileTooLarge,
		Msg:  fmt.Sprintf("%s: %d bytes exceeds the %d byte limit", ErrFileTooLarge, size, limit),
	}
}

// KindOf returns the ingestion kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var ie *IngestError
	if errors.As(err, &ie) {
		return ie.Kind
	}
	for k, s := range kindSentinels {
		if errors.Is(err, s) {
			return k
		}
	}
	return KindUnknown
}

// UserMessage turns any error from the ingestion path into text suitable for
// the person who uploaded the file.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ie *IngestError
	if !errors.As(err, &ie) {
		return "Failed to parse file. Please check the format and try again."
	}
	switch ie.Kind {
	case KindEmptyFile:
		return "File must contain at least a header row and one data row."
	case KindInvalidHeader:
		return "File must have at least 4 columns: date, description, amount, category."
	case KindIncompleteRow:
		return fmt.Sprintf("Row %d has incomplete data. Expected 4 columns.", ie.Row)
	case KindInvalidAmount:
		return fmt.Sprintf("Row %d has an invalid amount: %s", ie.Row, ie.Value)
	case KindNoValidRows:
		return "No valid transactions found in the file."
	case KindUnsupportedFileType:
		return "Please upload a CSV or Excel file."
	case KindFileTooLarge:
		return "File is too large. Please upload a smaller file."
	default:
		return "Failed to parse file. Please check the format and try again."
	}
}

// ParseError represents a failure to parse a single field.
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
