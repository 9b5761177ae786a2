package spreadsheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"

	"github.com/xuri/excelize/v2"
)

// SafeCell neutralises values a spreadsheet would evaluate as a formula.
func SafeCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

var phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ().-]*$`)

// SafePhone leaves ordinary phone numbers such as "+91 98765 43210" untouched and
// neutralises anything else like SafeCell.
func SafePhone(s string) string {
	if phonePattern.MatchString(s) {
		return s
	}
	return SafeCell(s)
}

// WriteCSV writes header and rows. Quoting is left to encoding/csv.
func WriteCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("spreadsheet: write csv header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("spreadsheet: write csv rows: %w", err)
	}
	return nil
}

// WriteXLSX writes a single-sheet workbook with a bold header row.
func WriteXLSX(w io.Writer, sheet string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("spreadsheet: name sheet: %w", err)
	}

	headerRow := make([]any, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &headerRow); err != nil {
		return fmt.Errorf("spreadsheet: write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("spreadsheet: header style: %w", err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("spreadsheet: header style: %w", err)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("spreadsheet: cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			return fmt.Errorf("spreadsheet: write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("spreadsheet: write xlsx: %w", err)
	}
	return nil
}
