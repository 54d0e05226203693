// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"tiffpdf-meta/internal/formatters"
	"tiffpdf-meta/internal/naming"
	"tiffpdf-meta/internal/records"

	"github.com/fatih/color"
)

// maxCellWidth caps a column so long paths do not wrap every line
const maxCellWidth = 60

// Formatter renders records as an aligned table for terminals
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Aligned table for reading in a terminal"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(w io.Writer, mode records.Mode, recs []records.Record, options formatters.FormatterOptions) error {
	if options.NoColor {
		color.NoColor = true
	}

	cols := f.columns(mode, options)
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = utf8.RuneCountInString(c)
	}
	rows := make([][]string, len(recs))
	for r, rec := range recs {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = truncate(rec.Field(c))
			if n := utf8.RuneCountInString(row[i]); n > widths[i] {
				widths[i] = n
			}
		}
		rows[r] = row
	}

	var b strings.Builder
	f.appendHeaders(&b, cols, widths, options)
	for r, row := range rows {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			padded := pad(cell, widths[i], i == len(row)-1)
			b.WriteString(f.paint(cols[i], cell, padded, recs[r], options))
		}
		b.WriteString("\n")
	}
	f.appendSummary(&b, recs, options)

	_, err := io.WriteString(w, b.String())
	return err
}

// columns drops Full Path from the table unless verbose
func (f *Formatter) columns(mode records.Mode, options formatters.FormatterOptions) []string {
	cols := records.Columns(mode)
	if options.Verbose {
		return cols
	}
	return cols[:len(cols)-1]
}

func (f *Formatter) appendHeaders(b *strings.Builder, cols []string, widths []int, options formatters.FormatterOptions) {
	var header strings.Builder
	total := 0
	for i, c := range cols {
		if i > 0 {
			header.WriteString("  ")
			total += 2
		}
		header.WriteString(pad(c, widths[i], i == len(cols)-1))
		total += widths[i]
	}

	line := header.String() + "\n"
	separator := strings.Repeat("-", total) + "\n"
	if !options.NoColor {
		line = f.colors["white"].Sprint(line)
		separator = f.colors["white"].Sprint(separator)
	}
	b.WriteString(line)
	b.WriteString(separator)
}

// paint colors a padded cell by what it says
func (f *Formatter) paint(column, value, padded string, rec records.Record, options formatters.FormatterOptions) string {
	if options.NoColor {
		return padded
	}
	if rec.IsError() && column != records.ColFilename {
		return f.colors["red"].Sprint(padded)
	}
	switch column {
	case records.ColFilenameValid:
		switch value {
		case naming.Valid.String():
			return f.colors["green"].Sprint(padded)
		case naming.WrongExtension.String():
			return f.colors["yellow"].Sprint(padded)
		default:
			return f.colors["red"].Sprint(padded)
		}
	case records.ColType:
		if value == "PDF Image" {
			return f.colors["cyan"].Sprint(padded)
		}
	}
	return padded
}

func (f *Formatter) appendSummary(b *strings.Builder, recs []records.Record, options formatters.FormatterOptions) {
	failed := 0
	for _, r := range recs {
		if r.IsError() {
			failed++
		}
	}
	summary := fmt.Sprintf("\n%d records", len(recs))
	if failed > 0 {
		summary += fmt.Sprintf(", %d with errors", failed)
		if !options.NoColor {
			summary = f.colors["red"].Sprint(summary)
		}
	}
	b.WriteString(summary + "\n")
}

func truncate(s string) string {
	s = strings.NewReplacer("\n", " ", "\t", " ").Replace(s)
	if utf8.RuneCountInString(s) <= maxCellWidth {
		return s
	}
	runes := []rune(s)
	return "..." + string(runes[len(runes)-maxCellWidth+3:])
}

// pad right-pads s to width; the last column is left unpadded
func pad(s string, width int, last bool) string {
	if last {
		return s
	}
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
