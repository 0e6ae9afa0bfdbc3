// Package importer turns spreadsheets of recorded times into (event, time)
// rows ready to be merged into the catalog.
//
// Sheets follow one layout: row 0 is a header, column 0 holds the event
// name and column 1 the time text.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for files that are neither spreadsheets
// nor CSV.
var ErrUnsupportedFormat = errors.New("unsupported import format")

// Format identifies how a raw table is encoded.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// Row is one imported (event name, time) pair.
type Row struct {
	Name string
	Time string
}

// ParseRows converts a raw table into rows. The header row is skipped and
// rows with a blank or missing name or time are dropped without error.
func ParseRows(table [][]string) []Row {
	rows := make([]Row, 0, len(table))
	for i, record := range table {
		if i == 0 {
			continue
		}
		if len(record) < 2 {
			continue
		}

		name := strings.TrimSpace(record[0])
		time := strings.TrimSpace(record[1])
		if name == "" || time == "" {
			continue
		}
		rows = append(rows, Row{Name: name, Time: time})
	}
	return rows
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return FormatXLSX, nil
	case ".csv", ".txt":
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %s (use .xlsx or .csv)", ErrUnsupportedFormat, filepath.Base(path))
}

// ReadTable decodes the file at path into a raw table of cell values.
func ReadTable(path string) ([][]string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	return DecodeTable(file, format)
}

// DecodeTable decodes r as the given format. Spreadsheets use their first
// sheet.
func DecodeTable(r io.Reader, format Format) ([][]string, error) {
	switch format {
	case FormatXLSX:
		return decodeXLSX(r)
	case FormatCSV:
		return decodeCSV(r)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
}

func decodeXLSX(r io.Reader) ([][]string, error) {
	book, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer func() { _ = book.Close() }()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return [][]string{}, nil
	}

	rows, err := book.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

func decodeCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}
