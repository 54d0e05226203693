// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package yaml

import (
	"fmt"
	"io"

	"tiffpdf-meta/internal/formatters"
	"tiffpdf-meta/internal/formatters/shared"
	"tiffpdf-meta/internal/records"

	"gopkg.in/yaml.v3"
)

// Formatter implements YAML output formatting
type Formatter struct{}

// NewFormatter creates a new YAML formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "yaml"
}

func (f *Formatter) Description() string {
	return "YAML output with the same structure as JSON"
}

func (f *Formatter) FileExtension() string {
	return ".yaml"
}

func (f *Formatter) Format(w io.Writer, mode records.Mode, recs []records.Record, options formatters.FormatterOptions) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(shared.NewDocument(mode, recs)); err != nil {
		return fmt.Errorf("error formatting YAML: %w", err)
	}
	return enc.Close()
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
