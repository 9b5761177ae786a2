// Package spreadsheet reads and writes tabular files (CSV and XLSX) as plain string grids.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

// Format identifies a supported file type.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ErrUnsupportedFormat is returned for anything other than .csv or .xlsx.
var ErrUnsupportedFormat = errors.New("unsupported file format, use .csv or .xlsx")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DetectFormat picks the format from the file extension.
func DetectFormat(filename string) (Format, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", ErrUnsupportedFormat
}

// ParseFormat accepts "csv" or "xlsx" in any case.
func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	}
	return "", ErrUnsupportedFormat
}

// Read dispatches on format. Trailing blank rows are dropped.
func Read(format Format, r io.Reader) ([][]string, error) {
	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatCSV:
		rows, err = ReadCSV(r)
	case FormatXLSX:
		rows, err = ReadXLSX(r)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}
	return trimTrailingBlank(rows), nil
}

// ReadCSV parses comma-separated input. A UTF-8 BOM is stripped; input that is not valid
// UTF-8 is decoded as Windows-1252. Rows may have differing field counts. Empty lines are
// kept as single empty-field rows.
func ReadCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: read csv: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		if data, err = charmap.Windows1252.NewDecoder().Bytes(data); err != nil {
			return nil, fmt.Errorf("spreadsheet: decode csv: %w", err)
		}
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	// encoding/csv skips empty lines. They come back as {""} rows so row numbers keep
	// matching the file.
	var (
		rows     [][]string
		nextLine = 1
		offset   int64
	)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("spreadsheet: parse csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		for ; nextLine < line; nextLine++ {
			rows = append(rows, []string{""})
		}
		rows = append(rows, rec)

		end := cr.InputOffset()
		nextLine += bytes.Count(data[offset:end], []byte{'\n'})
		offset = end
	}
	return rows, nil
}

// ReadXLSX returns the rows of the first sheet. excelize omits trailing empty cells, so
// shorter rows are padded to the header width.
func ReadXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("spreadsheet: workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("spreadsheet: read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return rows, nil
	}
	width := len(rows[0])
	for i, row := range rows {
		if len(row) < width {
			padded := make([]string, width)
			copy(padded, row)
			rows[i] = padded
		}
	}
	return rows, nil
}

func trimTrailingBlank(rows [][]string) [][]string {
	for len(rows) > 0 && isBlank(rows[len(rows)-1]) {
		rows = rows[:len(rows)-1]
	}
	return rows
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
