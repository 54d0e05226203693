// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"strings"

	"tiffpdf-meta/internal/records"
)

// Build identity, overridden with -ldflags "-X tiffpdf-meta/internal/version.Version=..."
var (
	Version   = "0.0.0-development"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Info is the --version line: build identity, toolchain and the file
// types this build extracts
func Info() string {
	return fmt.Sprintf("tiffpdf-meta %s (commit: %s, built: %s, go: %s, platform: %s/%s)\nmodes: %s",
		Version, GitCommit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH, Supported())
}

// Supported describes each mode with the extensions a directory walk
// picks up for it, e.g. "tiff (.tif, .tiff), pdf (.pdf)"
func Supported() string {
	modes := records.Modes()
	parts := make([]string, len(modes))
	for i, m := range modes {
		parts[i] = fmt.Sprintf("%s (%s)", m, strings.Join(m.Extensions(), ", "))
	}
	return strings.Join(parts, ", ")
}
