// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"tiffpdf-meta/internal/extract"
	"tiffpdf-meta/internal/formatters"
)

// writeOutput renders the result and writes it to outputPath, or to stdout
// when outputPath is empty. The file is only created once rendering
// succeeded.
func writeOutput(stdout io.Writer, outputPath, format string, result *extract.Result, options formatters.FormatterOptions) error {
	var buf bytes.Buffer
	if err := formatters.Export(&buf, format, result.Mode, result.Records, options); err != nil {
		return err
	}

	if outputPath == "" {
		_, err := buf.WriteTo(stdout)
		return err
	}

	cleanOutputPath, err := filepath.Abs(filepath.Clean(outputPath))
	if err != nil {
		return fmt.Errorf("invalid output file path %s: %w", outputPath, err)
	}
	if err := os.MkdirAll(filepath.Dir(cleanOutputPath), 0755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}
	if err := os.WriteFile(cleanOutputPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("error writing to output file: %w", err)
	}
	return nil
}
