// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"tiffpdf-meta/internal/formatters"

	"github.com/fatih/color"
)

// Topics accepted by "--help <topic>"
var Topics = []string{"formats", "naming"}

// System manages help content for the application
type System struct {
	out     io.Writer
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a new help system writing to out
func NewSystem(out io.Writer, noColor bool) *System {
	// Disable colors if requested
	if noColor {
		color.NoColor = true
	}

	return &System{
		out:     out,
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":    color.New(color.FgWhite, color.Bold),
			"header":   color.New(color.FgBlue, color.Bold),
			"emphasis": color.New(color.FgWhite, color.Bold),
			"example":  color.New(color.FgMagenta),
		},
	}
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.colors["title"].Fprintln(h.out, "TIFF/PDF Metadata Extractor")
	fmt.Fprintln(h.out, "===========================")
	fmt.Fprintln(h.out)
	h.colors["header"].Fprintln(h.out, "USAGE:")
	fmt.Fprintln(h.out, "  tiffpdf-meta --mode tiff|pdf [options] <file|dir|glob>...")
	fmt.Fprintln(h.out)

	h.colors["header"].Fprintln(h.out, "OPTIONS:")

	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  --mode\t<mode>\tFile type to process: tiff or pdf (default: tiff)")
	fmt.Fprintln(w, "  --file\t<path>\tFile, directory or glob to process (repeatable; positional arguments work too)")
	fmt.Fprintln(w, "  --recursive\t\tDescend into subdirectories")
	fmt.Fprintf(w, "  --format\t<format>\tOutput format: %s (default: from --output extension, else text)\n", strings.Join(formatters.List(), ", "))
	fmt.Fprintln(w, "  --output\t<path>\tPath to output file (if not specified, output to stdout)")
	fmt.Fprintln(w, "  --config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  --profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  --list-profiles\t\tList available profiles in config file")
	fmt.Fprintln(w, "  --verbose\t\tInclude the Full Path column in text output")
	fmt.Fprintln(w, "  --no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  --quiet\t\tSuppress progress and status output")
	fmt.Fprintln(w, "  --debug\t\tLog every extraction step and timing")
	fmt.Fprintln(w, "  --version\t\tShow version information")
	fmt.Fprintln(w, "  --help\t\tShow this help message")
	fmt.Fprintf(w, "  --help <topic>\t\tShow help for a topic: %s\n", strings.Join(Topics, ", "))
	w.Flush()
	fmt.Fprintln(h.out)

	h.colors["header"].Fprintln(h.out, "EXAMPLES:")
	for _, example := range []string{
		"tiffpdf-meta --mode tiff --recursive scans/ --output tiff_metadata.xlsx",
		"tiffpdf-meta --mode pdf '*.pdf' --format csv",
		"tiffpdf-meta --profile pdf-report books/",
	} {
		fmt.Fprint(h.out, "  ")
		h.colors["example"].Fprintln(h.out, example)
	}
}

// ShowTopic displays help for one topic and reports whether it exists
func (h *System) ShowTopic(topic string) bool {
	switch strings.ToLower(topic) {
	case "formats":
		h.showFormats()
	case "naming":
		h.showNaming()
	default:
		return false
	}
	return true
}

func (h *System) showFormats() {
	h.colors["header"].Fprintln(h.out, "OUTPUT FORMATS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	for _, info := range formatters.DefaultRegistry.Infos() {
		fmt.Fprintf(w, "  %s\t%s\t%s\n", info.Name, info.Extension, info.Description)
	}
	w.Flush()
}

func (h *System) showNaming() {
	h.colors["header"].Fprintln(h.out, "FILENAME CONVENTIONS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  tiff\t<13-digit ISBN>_<5-digit sequence>.tif\te.g. 9781234567897_00001.tif")
	fmt.Fprintln(w, "  pdf\t<13-digit ISBN>.pdf\te.g. 9781234567897.pdf")
	w.Flush()
	fmt.Fprintln(h.out)
	fmt.Fprint(h.out, "  Filename Valid is ")
	h.colors["emphasis"].Fprint(h.out, "Yes")
	fmt.Fprint(h.out, " for a match, ")
	h.colors["emphasis"].Fprint(h.out, "Wrong extension")
	fmt.Fprintln(h.out, " when only the extension differs, and No otherwise.")
	fmt.Fprintln(h.out, "  Matching ignores case. A .tiff scan reports Wrong extension.")
}
