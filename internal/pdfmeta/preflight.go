// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdfmeta

import (
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Preflighter runs a relaxed structural validation over PDF files. Its
// findings are advisory and never change extracted metadata.
type Preflighter struct {
	conf *model.Configuration
}

// NewPreflighter returns a Preflighter using relaxed validation
func NewPreflighter() *Preflighter {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Preflighter{conf: conf}
}

// Check validates the file at path and compares its page count with the
// one the extractor saw. A nil error means no findings.
func (p *Preflighter) Check(path string, extractedPages int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("preflight aborted: %v", r)
		}
	}()

	if err := api.ValidateFile(path, p.conf); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	ctx, err := api.ReadContextFile(path)
	if err != nil {
		return fmt.Errorf("failed to read PDF context: %w", err)
	}
	if extractedPages >= 0 && ctx.PageCount != extractedPages {
		return fmt.Errorf("page count mismatch: document declares %d pages, extracted %d", ctx.PageCount, extractedPages)
	}
	return nil
}
