// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package records defines the metadata record produced for every TIFF
// file or PDF page, and the fixed column order each mode exports in.
package records

import (
	"fmt"
	"path/filepath"
	"strings"

	"tiffpdf-meta/internal/naming"
)

// Mode selects which kind of file a batch holds
type Mode string

const (
	ModeTIFF Mode = "tiff"
	ModePDF  Mode = "pdf"
)

// ErrorValue fills every derived field of a record for a file that failed
const ErrorValue = "Error"

// Column names
const (
	ColFileType      = "File Type"
	ColFilename      = "Filename"
	ColFormat        = "Format"
	ColExtension     = "Extension"
	ColPage          = "Page"
	ColType          = "Type"
	ColDPI           = "DPI"
	ColCompression   = "Compression"
	ColColorDepth    = "Color Depth"
	ColFilenameValid = "Filename Valid"
	ColFullPath      = "Full Path"
)

var columns = map[Mode][]string{
	ModeTIFF: {ColFileType, ColFilename, ColFormat, ColExtension, ColDPI, ColCompression, ColColorDepth, ColFilenameValid, ColFullPath},
	ModePDF:  {ColFileType, ColFilename, ColPage, ColType, ColColorDepth, ColDPI, ColCompression, ColFilenameValid, ColFullPath},
}

// Modes lists every supported mode in display order
func Modes() []Mode {
	return []Mode{ModeTIFF, ModePDF}
}

// ParseMode accepts "tiff" or "pdf" in any case
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeTIFF, ModePDF:
		return m, nil
	}
	return "", fmt.Errorf("invalid mode %q: must be tiff or pdf", s)
}

// Kind returns the filename convention that applies to the mode
func (m Mode) Kind() naming.Kind {
	if m == ModePDF {
		return naming.KindPDF
	}
	return naming.KindTIFF
}

// FileType is the label written to the File Type column
func (m Mode) FileType() string {
	if m == ModePDF {
		return "PDF"
	}
	return "TIFF"
}

// Extensions lists the lowercase extensions a directory walk picks up
func (m Mode) Extensions() []string {
	if m == ModePDF {
		return []string{".pdf"}
	}
	return []string{".tif", ".tiff"}
}

// Columns returns the export column order for the mode
func Columns(m Mode) []string {
	return append([]string(nil), columns[m]...)
}

// Record is one row of extracted metadata. TIFF records leave Page and
// Type empty, PDF records leave Format and Extension empty.
type Record struct {
	FileType      string
	Filename      string
	Format        string
	Extension     string
	Page          string
	Type          string
	DPI           string
	Compression   string
	ColorDepth    string
	FilenameValid string
	FullPath      string
}

// Field returns the value stored under a column name
func (r Record) Field(column string) string {
	switch column {
	case ColFileType:
		return r.FileType
	case ColFilename:
		return r.Filename
	case ColFormat:
		return r.Format
	case ColExtension:
		return r.Extension
	case ColPage:
		return r.Page
	case ColType:
		return r.Type
	case ColDPI:
		return r.DPI
	case ColCompression:
		return r.Compression
	case ColColorDepth:
		return r.ColorDepth
	case ColFilenameValid:
		return r.FilenameValid
	case ColFullPath:
		return r.FullPath
	}
	return ""
}

// Values returns the record's fields in the mode's column order
func (r Record) Values(m Mode) []string {
	cols := columns[m]
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = r.Field(c)
	}
	return out
}

// IsError reports whether the record stands in for a failed file
func (r Record) IsError() bool {
	return r.FilenameValid == ErrorValue
}

// ErrorRecord builds the stand-in record for a file that could not be
// processed. The filename and full path are kept; every other column of
// the mode holds ErrorValue.
func ErrorRecord(m Mode, path string) Record {
	r := Record{
		FileType:      ErrorValue,
		Filename:      filepath.Base(path),
		DPI:           ErrorValue,
		Compression:   ErrorValue,
		ColorDepth:    ErrorValue,
		FilenameValid: ErrorValue,
		FullPath:      path,
	}
	if m == ModePDF {
		r.Page = ErrorValue
		r.Type = ErrorValue
	} else {
		r.Format = ErrorValue
		r.Extension = ErrorValue
	}
	return r
}
