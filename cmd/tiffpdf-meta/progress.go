// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"path/filepath"

	"tiffpdf-meta/internal/extract"

	"github.com/schollz/progressbar/v3"
)

// progressDisplay draws a progress bar on stderr while a batch runs.
// A nil *progressDisplay is valid and draws nothing.
type progressDisplay struct {
	bar *progressbar.ProgressBar
}

func newProgressDisplay(w io.Writer, total int) *progressDisplay {
	bar := progressbar.NewOptions(
		total,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Extracting"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetItsString("files"),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &progressDisplay{bar: bar}
}

// callback adapts the display to the extractor's progress hook
func (p *progressDisplay) callback() extract.ProgressCallback {
	if p == nil {
		return nil
	}
	return func(completed, total int, currentFile string, status extract.ItemStatus) {
		if status == extract.ItemProcessing {
			p.bar.Describe(fmt.Sprintf("Extracting %s", filepath.Base(currentFile)))
			return
		}
		_ = p.bar.Set(completed)
	}
}

func (p *progressDisplay) finish() {
	if p == nil {
		return
	}
	_ = p.bar.Finish()
}
