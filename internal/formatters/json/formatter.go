// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package json

import (
	"encoding/json"
	"fmt"
	"io"

	"tiffpdf-meta/internal/formatters"
	"tiffpdf-meta/internal/formatters/shared"
	"tiffpdf-meta/internal/records"
)

// Formatter implements JSON output formatting
type Formatter struct{}

// NewFormatter creates a new JSON formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "json"
}

func (f *Formatter) Description() string {
	return "Structured JSON output for programmatic consumption"
}

func (f *Formatter) FileExtension() string {
	return ".json"
}

func (f *Formatter) Format(w io.Writer, mode records.Mode, recs []records.Record, options formatters.FormatterOptions) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(shared.NewDocument(mode, recs)); err != nil {
		return fmt.Errorf("error formatting JSON: %w", err)
	}
	return nil
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
