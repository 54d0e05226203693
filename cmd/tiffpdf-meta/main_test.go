// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"tiffpdf-meta/internal/testfixtures"
)

type cliRun struct {
	code   int
	stdout string
	stderr string
}

// isolate keeps config discovery away from the developer's own files
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TIFFPDF_META_CONFIG_DIR", filepath.Join(dir, ".config"))
	return dir
}

func runCLI(t *testing.T, args ...string) cliRun {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, environment{stdout: &stdout, stderr: &stderr})
	return cliRun{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestPlainOutput(t *testing.T) {
	tty := environment{stdoutTTY: true}
	assert.False(t, plainOutput(&finalConfiguration{}, tty))
	assert.True(t, plainOutput(&finalConfiguration{output: "report.txt"}, tty))
	assert.True(t, plainOutput(&finalConfiguration{noColor: true}, tty))
	assert.True(t, plainOutput(&finalConfiguration{}, environment{}))
}

func TestTextFileHasNoColorOnTerminal(t *testing.T) {
	dir := isolate(t)
	previous := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = previous })

	tif := testfixtures.WriteFile(t, dir, "9781234567897_00001.tif", testfixtures.RGBTIFF(300, 5))
	output := filepath.Join(dir, "report.txt")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--format", "text", "--output", output, tif}, environment{
		stdout:      &stdout,
		stderr:      &stderr,
		interactive: true,
		stdoutTTY:   true,
	})
	require.Equal(t, 0, code, stderr.String())

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), "9781234567897_00001.tif")
	assert.NotContains(t, string(data), "\x1b[")
}

func TestVersion(t *testing.T) {
	isolate(t)
	res := runCLI(t, "--version")
	assert.Equal(t, 0, res.code)
	assert.True(t, strings.HasPrefix(res.stdout, "tiffpdf-meta "))
	assert.Contains(t, res.stdout, "modes: tiff (.tif, .tiff), pdf (.pdf)")
}

func TestHelp(t *testing.T) {
	isolate(t)
	res := runCLI(t, "--help")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "Output format: csv, json, text, xlsx, yaml")

	res = runCLI(t, "--help", "naming")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "FILENAME CONVENTIONS")

	res = runCLI(t, "--help", "checks")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: unknown help topic 'checks'")
}

func TestTIFFBatchToStdoutCSV(t *testing.T) {
	dir := isolate(t)
	testfixtures.WriteFile(t, dir, filepath.Join("scans", "9781234567897_00001.tif"), testfixtures.RGBTIFF(300, 5))
	testfixtures.WriteFile(t, dir, filepath.Join("scans", "9781234567897_00002.tif"), []byte("broken"))
	testfixtures.WriteFile(t, dir, filepath.Join("scans", "readme.txt"), []byte("ignored"))

	res := runCLI(t, "--mode", "tiff", "--format", "csv", "scans")
	require.Equal(t, 0, res.code, res.stderr)

	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "File Type,Filename,Format"))
	assert.Contains(t, lines[1], "300 x 300,LZW,24-bit Color,Yes")
	assert.True(t, strings.HasPrefix(lines[2], "Error,9781234567897_00002.tif,Error"))

	assert.Contains(t, res.stderr, "Warning: failed to process")
	assert.Contains(t, res.stderr, "Extracted metadata from 2 items")
	assert.Contains(t, res.stderr, "1 of 2 files could not be read")
}

func TestPDFBatchToXLSXFile(t *testing.T) {
	dir := isolate(t)
	pdf := testfixtures.PDF([]float64{0, 0, 612, 792}, testfixtures.PDFPage{}, testfixtures.PDFPage{})
	input := testfixtures.WriteFile(t, dir, "9781234567897.pdf", pdf)
	output := filepath.Join(dir, "out", "pdf_metadata.xlsx")

	res := runCLI(t, "--mode", "pdf", "--file", input, "--output", output, "--quiet")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout)
	assert.Empty(t, res.stderr)

	book, err := excelize.OpenFile(output)
	require.NoError(t, err)
	defer book.Close()
	rows, err := book.GetRows("PDF Metadata")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Page", rows[0][2])
	assert.Equal(t, []string{"1", "2"}, []string{rows[1][2], rows[2][2]})
}

func TestProfileFromConfig(t *testing.T) {
	dir := isolate(t)
	testfixtures.WriteFile(t, dir, filepath.Join("books", "nested", "9781234567897.pdf"),
		testfixtures.PDF([]float64{0, 0, 100, 100}, testfixtures.PDFPage{}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiffpdf-meta.yaml"), []byte(`
profiles:
  books:
    mode: pdf
    format: json
    recursive: true
    description: Every PDF under a tree
`), 0600))

	res := runCLI(t, "--list-profiles")
	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "  - books: Every PDF under a tree")
	assert.Contains(t, res.stdout, "  - pdf-report:")

	res = runCLI(t, "--profile", "books", "--quiet", "books")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, `"mode": "pdf"`)
	assert.Contains(t, res.stdout, `"Page": "1"`)

	res = runCLI(t, "--profile", "missing", "books")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Error: profile 'missing' not found")
}

func TestCLIErrors(t *testing.T) {
	dir := isolate(t)
	tif := testfixtures.WriteFile(t, dir, "a.tif", testfixtures.RGBTIFF(72, 1))

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no inputs", []string{"--mode", "tiff"}, "at least one file"},
		{"bad mode", []string{"--mode", "jpeg", tif}, "invalid mode"},
		{"bad format", []string{"--format", "docx", tif}, "unsupported format 'docx'"},
		{"xlsx to stdout", []string{"--format", "xlsx", tif}, "xlsx output requires --output"},
		{"missing path", []string{filepath.Join(dir, "nope.tif")}, "path does not exist"},
		{"no matching files", []string{"--mode", "pdf", dir}, "no PDF files found"},
		{"unknown flag", []string{"--colour"}, "flag provided but not defined"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, tt.args...)
			assert.Equal(t, 1, res.code)
			assert.Contains(t, res.stderr, "Error: ")
			assert.Contains(t, res.stderr, tt.want)
		})
	}
}

func TestDebugTracesSteps(t *testing.T) {
	dir := isolate(t)
	tif := testfixtures.WriteFile(t, dir, "a.tif", testfixtures.RGBTIFF(72, 1))

	res := runCLI(t, "--debug", "--format", "json", tif)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stderr, `"operation":"run_batch"`)
	assert.Contains(t, res.stdout, `"DPI": "72 x 72"`)
}
