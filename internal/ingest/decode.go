package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"casha/finance-advisor/internal/dateutils"
	"casha/finance-advisor/internal/parsererror"

	"github.com/tealeg/xlsx"
	"golang.org/x/net/html/charset"
)

// Cell is one decoded value. Spreadsheet numbers keep their numeric value so
// the amount column does not round-trip through text.
type Cell struct {
	Text    string
	Number  float64
	Numeric bool
}

// Blank reports whether the cell carries no content.
func (c Cell) Blank() bool {
	return !c.Numeric && strings.TrimSpace(c.Text) == ""
}

// Value returns the number for numeric cells and the text otherwise.
func (c Cell) Value() any {
	if c.Numeric {
		return c.Number
	}
	return c.Text
}

func textCell(s string) Cell {
	return Cell{Text: s}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// toUTF8 strips a UTF-8 byte order mark and converts other encodings
// (UTF-16 with BOM, legacy single-byte code pages) to UTF-8.
func toUTF8(data []byte) ([]byte, string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return data[len(utf8BOM):], "utf-8", nil
	}
	if utf8.Valid(data) {
		return data, "utf-8", nil
	}
	enc, name, _ := charset.DetermineEncoding(data, "text/csv")
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, name, fmt.Errorf("failed to decode %s input: %w", name, err)
	}
	return bytes.TrimPrefix(out, utf8BOM), name, nil
}

// decodeCSV splits text into rows of trimmed cells. Quotes are optional and
// stray quote characters around a cell are removed.
func decodeCSV(data []byte, delimiter rune) ([][]Cell, error) {
	text, _, err := toUTF8(data)
	if err != nil {
		return nil, err
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = delimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.TrimLeadingSpace = true

	var rows [][]Cell
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		row := make([]Cell, len(record))
		for i, field := range record {
			row[i] = textCell(trimCell(field))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func trimCell(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, `"'`)
	return strings.TrimSpace(s)
}

// decodeSpreadsheet reads the first sheet of an xlsx workbook. Rows are
// padded to the sheet width so blank trailing cells are still present.
func decodeSpreadsheet(data []byte) ([][]Cell, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, &parsererror.IngestError{
			Kind: parsererror.KindUnsupportedFileType,
			Msg:  "unreadable spreadsheet",
			Err:  err,
		}
	}
	if len(file.Sheets) == 0 {
		return nil, nil
	}
	sheet := file.Sheets[0]

	rows := make([][]Cell, 0, len(sheet.Rows))
	for _, xr := range sheet.Rows {
		width := sheet.MaxCol
		if xr != nil && len(xr.Cells) > width {
			width = len(xr.Cells)
		}
		row := make([]Cell, width)
		if xr != nil {
			for i, xc := range xr.Cells {
				row[i] = spreadsheetCell(xc, file.Date1904)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func spreadsheetCell(c *xlsx.Cell, date1904 bool) Cell {
	if c == nil {
		return Cell{}
	}
	raw := strings.TrimSpace(c.Value)
	if c.Type() != xlsx.CellTypeNumeric || raw == "" {
		return textCell(raw)
	}
	if isDateFormat(c.NumFmt) {
		if t, err := c.GetTime(date1904); err == nil {
			return textCell(dateutils.ToISODate(t))
		}
	}
	f, err := c.Float()
	if err != nil {
		return textCell(raw)
	}
	return Cell{Text: raw, Number: f, Numeric: true}
}

// isDateFormat recognizes number formats that render a calendar date.
func isDateFormat(numFmt string) bool {
	f := strings.ToLower(numFmt)
	if f == "" || f == "general" {
		return false
	}
	return strings.Contains(f, "yy") || (strings.Contains(f, "d") && strings.Contains(f, "m"))
}
