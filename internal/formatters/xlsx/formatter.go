// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package xlsx

import (
	"fmt"
	"io"
	"unicode/utf8"

	"tiffpdf-meta/internal/formatters"
	"tiffpdf-meta/internal/records"

	"github.com/xuri/excelize/v2"
)

// defaultSheet is the sheet excelize creates in a new workbook
const defaultSheet = "Sheet1"

// Formatter writes records to an Excel workbook with a single sheet
type Formatter struct{}

// NewFormatter creates a new xlsx formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "xlsx"
}

func (f *Formatter) Description() string {
	return "Excel workbook, one row per record"
}

func (f *Formatter) FileExtension() string {
	return ".xlsx"
}

// SheetName is the worksheet title used for a mode
func SheetName(mode records.Mode) string {
	return mode.FileType() + " Metadata"
}

func (f *Formatter) Format(w io.Writer, mode records.Mode, recs []records.Record, options formatters.FormatterOptions) error {
	book := excelize.NewFile()
	defer book.Close()

	sheet := SheetName(mode)
	if err := book.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	cols := records.Columns(mode)
	widths := make([]int, len(cols))
	header := make([]interface{}, len(cols))
	for i, c := range cols {
		header[i] = c
		widths[i] = utf8.RuneCountInString(c)
	}
	if err := book.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range recs {
		values := r.Values(mode)
		row := make([]interface{}, len(values))
		for j, v := range values {
			row[j] = v
			if n := utf8.RuneCountInString(v); n > widths[j] {
				widths[j] = n
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.decorate(book, sheet, widths, len(recs)); err != nil {
		return err
	}

	if _, err := book.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// decorate bolds and freezes the header, sizes columns and adds a filter
func (f *Formatter) decorate(book *excelize.File, sheet string, widths []int, rows int) error {
	bold, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	if err := book.SetRowStyle(sheet, 1, 1, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, width := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if width > 80 {
			width = 80
		}
		if err := book.SetColWidth(sheet, name, name, float64(width+2)); err != nil {
			return fmt.Errorf("failed to size column %s: %w", name, err)
		}
	}

	if err := book.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(len(widths), rows+1)
	if err != nil {
		return err
	}
	if err := book.AutoFilter(sheet, "A1:"+last, nil); err != nil {
		return fmt.Errorf("failed to add filter: %w", err)
	}
	return nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
