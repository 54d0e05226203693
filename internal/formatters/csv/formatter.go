// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"fmt"
	"io"
	"strings"

	"tiffpdf-meta/internal/formatters"
	"tiffpdf-meta/internal/records"
)

// Formatter implements CSV output formatting
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated values for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(w io.Writer, mode records.Mode, recs []records.Record, options formatters.FormatterOptions) error {
	rows := make([]string, 0, len(recs)+1)
	rows = append(rows, f.joinRow(records.Columns(mode)))
	for _, r := range recs {
		rows = append(rows, f.joinRow(r.Values(mode)))
	}

	_, err := io.WriteString(w, strings.Join(rows, "\n")+"\n")
	return err
}

func (f *Formatter) joinRow(fields []string) string {
	escaped := make([]string, len(fields))
	for i, field := range fields {
		escaped[i] = f.escapeCSVField(field)
	}
	return strings.Join(escaped, ",")
}

// escapeCSVField properly escapes a field for CSV format and prevents CSV injection
func (f *Formatter) escapeCSVField(field string) string {
	field = f.sanitizeFormulaInjection(field)

	if strings.ContainsAny(field, ",\"\n\r") {
		escaped := strings.ReplaceAll(field, "\"", "\"\"")
		return fmt.Sprintf("\"%s\"", escaped)
	}
	return field
}

// sanitizeFormulaInjection neutralizes cells a spreadsheet would evaluate
// as formulas. Filenames are the only user-controlled values.
func (f *Formatter) sanitizeFormulaInjection(field string) string {
	if len(field) == 0 {
		return field
	}

	switch field[0] {
	case '=', '+', '-', '@':
		return "'" + field
	}
	return field
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
