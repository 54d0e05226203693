// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package formatters

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"tiffpdf-meta/internal/records"
)

// ErrNoRecords is returned when asked to export an empty result
var ErrNoRecords = errors.New("no metadata to export")

// FormatterOptions defines configuration options for formatters
type FormatterOptions struct {
	NoColor bool // Whether to disable colored output
	Verbose bool // Whether the text table includes the Full Path column
}

// Formatter interface defines methods that all output formatters must implement
type Formatter interface {
	// Format writes the records of one batch to w
	Format(w io.Writer, mode records.Mode, recs []records.Record, options FormatterOptions) error

	// Name returns the name of the formatter (e.g., "xlsx", "text", "csv")
	Name() string

	// Description returns a brief description of what this formatter outputs
	Description() string

	// FileExtension returns the recommended file extension for this format (e.g., ".xlsx", ".csv")
	FileExtension() string
}

// Registry holds all registered formatters
type Registry struct {
	formatters map[string]Formatter
}

// NewRegistry creates a new formatter registry
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]Formatter),
	}
}

// Register adds a formatter to the registry
func (r *Registry) Register(formatter Formatter) {
	r.formatters[formatter.Name()] = formatter
}

// Get retrieves a formatter by name
func (r *Registry) Get(name string) (Formatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns all registered formatter names in sorted order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForExtension finds the formatter whose file extension matches path
func (r *Registry) ForExtension(path string) (Formatter, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" {
		return nil, false
	}
	for _, name := range r.List() {
		if f := r.formatters[name]; f.FileExtension() == ext {
			return f, true
		}
	}
	return nil, false
}

// Export writes recs with the named formatter. An empty record list is
// refused with ErrNoRecords.
func (r *Registry) Export(w io.Writer, format string, mode records.Mode, recs []records.Record, options FormatterOptions) error {
	if len(recs) == 0 {
		return ErrNoRecords
	}
	formatter, exists := r.Get(format)
	if !exists {
		return fmt.Errorf("unsupported format '%s'. Available formats: %s", format, strings.Join(r.List(), ", "))
	}
	return formatter.Format(w, mode, recs, options)
}

// FormatInfo provides metadata about a formatter for help output
type FormatInfo struct {
	Name        string
	Description string
	Extension   string
}

// Infos describes every registered formatter, sorted by name
func (r *Registry) Infos() []FormatInfo {
	var infos []FormatInfo
	for _, name := range r.List() {
		f := r.formatters[name]
		infos = append(infos, FormatInfo{Name: f.Name(), Description: f.Description(), Extension: f.FileExtension()})
	}
	return infos
}

// DefaultRegistry is the global formatter registry
var DefaultRegistry = NewRegistry()

// Register is a convenience function to register a formatter with the default registry
func Register(formatter Formatter) {
	DefaultRegistry.Register(formatter)
}

// Get is a convenience function to get a formatter from the default registry
func Get(name string) (Formatter, bool) {
	return DefaultRegistry.Get(name)
}

// List is a convenience function to list all formatters in the default registry
func List() []string {
	return DefaultRegistry.List()
}

// Export is a convenience function to export through the default registry
func Export(w io.Writer, format string, mode records.Mode, recs []records.Record, options FormatterOptions) error {
	return DefaultRegistry.Export(w, format, mode, recs, options)
}

// ResolveFormat picks the output format. An explicit format wins, then
// the output file's extension; stdout defaults to "text".
func ResolveFormat(requested, outputPath string) (string, error) {
	if requested != "" {
		if _, ok := Get(requested); !ok {
			return "", fmt.Errorf("unsupported format '%s'. Available formats: %s", requested, strings.Join(List(), ", "))
		}
		return requested, nil
	}
	if outputPath != "" {
		if f, ok := DefaultRegistry.ForExtension(outputPath); ok {
			return f.Name(), nil
		}
	}
	return "text", nil
}
