package ingest

import (
	"bytes"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"casha/finance-advisor/internal/parsererror"
)

// FileKind identifies the container format of an upload.
type FileKind string

const (
	KindCSV         FileKind = "csv"
	KindSpreadsheet FileKind = "spreadsheet"
)

// ParseFileKind accepts the user-facing names of a kind.
func ParseFileKind(s string) (FileKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv", "text/csv":
		return KindCSV, true
	case "spreadsheet", "xlsx", "excel":
		return KindSpreadsheet, true
	}
	return "", false
}

var extensionKinds = map[string]FileKind{
	".csv":  KindCSV,
	".txt":  KindCSV,
	".xlsx": KindSpreadsheet,
	".xlsm": KindSpreadsheet,
}

// rejectedExtensions are formats that are recognizably not tabular uploads
// we can read, whatever their content looks like.
var rejectedExtensions = map[string]bool{
	".xls": true, ".ods": true, ".numbers": true,
	".pdf": true, ".doc": true, ".docx": true,
	".json": true, ".xml": true,
	".png": true, ".jpg": true, ".jpeg": true,
}

var (
	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}
	utf16LE  = []byte{0xFF, 0xFE}
	utf16BE  = []byte{0xFE, 0xFF}
)

// DetectKind decides how to decode an upload from its file name and, when
// the extension is missing or unfamiliar, from its leading bytes. Legacy
// binary workbooks (.xls) and other document formats are rejected.
func DetectKind(name string, data []byte) (FileKind, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if kind, ok := extensionKinds[ext]; ok {
		return kind, nil
	}
	if rejectedExtensions[ext] {
		return "", parsererror.UnsupportedFileType(name)
	}

	switch {
	case len(bytes.TrimSpace(data)) == 0:
		// Let the parser report an empty document.
		return KindCSV, nil
	case bytes.HasPrefix(data, zipMagic):
		return KindSpreadsheet, nil
	case bytes.HasPrefix(data, oleMagic):
		return "", parsererror.UnsupportedFileType(name)
	case bytes.HasPrefix(data, utf16LE), bytes.HasPrefix(data, utf16BE):
		return KindCSV, nil
	case utf8.Valid(sniffWindow(data)) && !bytes.ContainsRune(sniffWindow(data), 0):
		return KindCSV, nil
	}
	return "", parsererror.UnsupportedFileType(name)
}

// sniffWindow returns a prefix of data trimmed back to a rune boundary.
func sniffWindow(data []byte) []byte {
	const n = 512
	if len(data) <= n {
		return data
	}
	w := data[:n]
	for i := 0; i < utf8.UTFMax && len(w) > 0 && !utf8.Valid(w); i++ {
		w = w[:len(w)-1]
	}
	return w
}
