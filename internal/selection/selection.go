// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package selection turns command line inputs (files, directories and
// glob patterns) into the ordered list of files a batch processes.
package selection

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"tiffpdf-meta/internal/records"
)

// Options control how inputs are expanded
type Options struct {
	Mode      records.Mode
	Recursive bool
}

// Skipped is an input or walked path that was left out of the batch
type Skipped struct {
	Path   string
	Reason string
}

// Selection is the ordered, de-duplicated list of absolute file paths
type Selection struct {
	Files   []string
	Skipped []Skipped
}

// Collect expands inputs in the order given. Explicit files are kept
// whatever their extension; directory walks and glob matches are limited
// to the extensions of the mode. An input that names nothing is an error.
func Collect(inputs []string, opts Options) (*Selection, error) {
	sel := &Selection{}
	seen := make(map[string]bool)

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = filepath.Clean(path)
		}
		if seen[abs] {
			sel.Skipped = append(sel.Skipped, Skipped{Path: abs, Reason: "selected more than once"})
			return
		}
		seen[abs] = true
		sel.Files = append(sel.Files, abs)
	}

	for _, input := range inputs {
		input = expandHome(strings.TrimSpace(input))
		if input == "" {
			continue
		}

		info, err := os.Stat(input)
		switch {
		case err == nil && info.Mode().IsRegular():
			add(input)
		case err == nil && info.IsDir():
			if err := walk(input, opts, sel, add); err != nil {
				return nil, err
			}
		case err == nil:
			sel.Skipped = append(sel.Skipped, Skipped{Path: input, Reason: "not a regular file"})
		case isPattern(input):
			if err := glob(input, opts, sel, add); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("path does not exist or is not accessible: %w", err)
		}
	}
	return sel, nil
}

func walk(root string, opts Options, sel *Selection, add func(string)) error {
	root = filepath.Clean(root)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			sel.Skipped = append(sel.Skipped, Skipped{Path: path, Reason: err.Error()})
			return nil
		}
		if d.IsDir() {
			if path != root && !opts.Recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !MatchesMode(path, opts.Mode) {
			return nil
		}
		add(path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("error accessing directory: %w", err)
	}
	return nil
}

func glob(pattern string, opts Options, sel *Selection, add func(string)) error {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("invalid glob pattern: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no files match pattern: %s", pattern)
	}
	slices.Sort(matches)

	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if !MatchesMode(match, opts.Mode) {
			sel.Skipped = append(sel.Skipped, Skipped{Path: match, Reason: fmt.Sprintf("not a %s file", opts.Mode.FileType())})
			continue
		}
		add(match)
	}
	return nil
}

// MatchesMode reports whether path carries one of the mode's extensions
func MatchesMode(path string, mode records.Mode) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(mode.Extensions(), ext)
}

func isPattern(s string) bool {
	return strings.ContainsAny(s, "*?") || (strings.Contains(s, "[") && strings.Contains(s, "]"))
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
