// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package extract runs a batch of TIFF or PDF files through the matching
// normalizer, one file at a time, and collects one record per TIFF file or
// PDF page. A file that fails yields an error record and the batch moves on.
package extract

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tiffpdf-meta/internal/naming"
	"tiffpdf-meta/internal/observability"
	"tiffpdf-meta/internal/pdfmeta"
	"tiffpdf-meta/internal/records"
	"tiffpdf-meta/internal/tiffmeta"
)

// Batch is the input of a run: the active mode and the files in the
// order they were selected
type Batch struct {
	Mode  records.Mode
	Files []string
}

// State of an Extractor
type State string

const (
	StateIdle       State = "idle"
	StateExtracting State = "extracting"
)

// ItemStatus is reported for each file as it moves through the batch
type ItemStatus string

const (
	ItemProcessing ItemStatus = "processing"
	ItemSucceeded  ItemStatus = "success"
	ItemFailed     ItemStatus = "failed"
)

// ProgressCallback is called when a file starts and again when it finishes.
// completed counts files finished so far.
type ProgressCallback func(completed, total int, currentFile string, status ItemStatus)

// Options tune a run
type Options struct {
	Observer observability.Observer // nil discards operation logs
	Progress ProgressCallback
	// Preflight runs an advisory structural check on every PDF that was
	// read successfully. Findings are logged as warnings.
	Preflight bool
}

// Result is everything a run produced. Records keep processing order and
// are the only input to export.
type Result struct {
	Mode      records.Mode
	Records   []records.Record
	Files     int
	Succeeded int
	Failed    int
	Failures  []*FileError
	Duration  time.Duration
}

// Extractor processes batches sequentially
type Extractor struct {
	observer    observability.Observer
	stepper     observability.Stepper
	progress    ProgressCallback
	preflighter *pdfmeta.Preflighter
	state       State
}

// New creates an idle Extractor
func New(opts Options) *Extractor {
	observer := opts.Observer
	if observer == nil {
		observer = observability.NewStandardObserver(observability.ObservabilityOff, io.Discard)
	}
	e := &Extractor{
		observer: observer,
		progress: opts.Progress,
		state:    StateIdle,
	}
	if s, ok := observer.(observability.Stepper); ok {
		e.stepper = s
	}
	if opts.Preflight {
		e.preflighter = pdfmeta.NewPreflighter()
	}
	return e
}

// Run is shorthand for New(opts).Run(batch)
func Run(batch Batch, opts Options) (*Result, error) {
	return New(opts).Run(batch)
}

// State reports whether a batch is in progress
func (e *Extractor) State() State {
	return e.state
}

// Run processes every file of the batch and returns a fresh Result. The
// only error is an unsupported mode; file failures become error records.
func (e *Extractor) Run(batch Batch) (*Result, error) {
	if batch.Mode != records.ModeTIFF && batch.Mode != records.ModePDF {
		return nil, fmt.Errorf("unsupported mode %q", batch.Mode)
	}
	if e.state == StateExtracting {
		return nil, fmt.Errorf("extraction already in progress")
	}

	e.state = StateExtracting
	defer func() { e.state = StateIdle }()

	start := time.Now()
	finishTiming := e.observer.StartTiming("extract", "run_batch", "")

	result := &Result{Mode: batch.Mode, Files: len(batch.Files)}
	total := len(batch.Files)
	for i, path := range batch.Files {
		e.report(i, total, path, ItemProcessing)

		recs, err := e.processFile(batch.Mode, path)
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, err)
			result.Records = append(result.Records, records.ErrorRecord(batch.Mode, path))
			e.observer.Warnf("failed to process %s: %v", path, err.Cause)
			e.report(i+1, total, path, ItemFailed)
			continue
		}

		result.Succeeded++
		result.Records = append(result.Records, recs...)
		e.report(i+1, total, path, ItemSucceeded)
	}
	result.Duration = time.Since(start)

	finishTiming(result.Failed == 0, map[string]interface{}{
		"mode":         string(batch.Mode),
		"files":        result.Files,
		"failed":       result.Failed,
		"record_count": len(result.Records),
	})
	return result, nil
}

func (e *Extractor) report(completed, total int, path string, status ItemStatus) {
	if e.progress != nil {
		e.progress(completed, total, path, status)
	}
}

// processFile turns one file into records. Panics from the parsing
// libraries are converted into a FileError.
func (e *Extractor) processFile(mode records.Mode, path string) (recs []records.Record, fileErr *FileError) {
	finishTiming := e.observer.StartTiming("extract", "process_file", path)
	var finishStep func(bool, string)
	if e.stepper != nil {
		finishStep = e.stepper.StartStep("extract", string(mode), path)
	}

	defer func() {
		if r := recover(); r != nil {
			recs = nil
			fileErr = &FileError{FilePath: path, Mode: mode, ErrorType: ErrorTypePanic, Cause: fmt.Errorf("%v", r)}
		}

		meta := map[string]interface{}{"record_count": len(recs)}
		if fileErr != nil {
			meta["error"] = fileErr.Error()
			meta["error_type"] = string(fileErr.ErrorType)
		}
		finishTiming(fileErr == nil, meta)
		if finishStep != nil {
			finishStep(fileErr == nil, fmt.Sprintf("%d records", len(recs)))
		}
	}()

	var err error
	switch mode {
	case records.ModePDF:
		recs, err = e.pdfRecords(path)
	default:
		recs, err = e.tiffRecords(path)
	}
	if err != nil {
		return nil, newFileError(mode, path, err)
	}
	return recs, nil
}

func (e *Extractor) tiffRecords(path string) ([]records.Record, error) {
	img, err := tiffmeta.Open(path)
	if err != nil {
		return nil, err
	}
	if e.stepper != nil {
		e.stepper.LogDetail("tiffmeta", "pixel mode "+img.Mode)
		e.stepper.LogMetric("tiffmeta", "tags", len(img.Tags))
	}

	name := filepath.Base(path)
	md := img.Describe()
	return []records.Record{{
		FileType:      records.ModeTIFF.FileType(),
		Filename:      name,
		Format:        md.Format,
		Extension:     strings.ToLower(filepath.Ext(path)),
		DPI:           md.DPI,
		Compression:   md.Compression,
		ColorDepth:    md.ColorDepth,
		FilenameValid: naming.Validate(name, naming.KindTIFF).String(),
		FullPath:      path,
	}}, nil
}

func (e *Extractor) pdfRecords(path string) ([]records.Record, error) {
	doc, err := pdfmeta.Open(path)
	if err != nil {
		return nil, err
	}
	if e.stepper != nil {
		e.stepper.LogMetric("pdfmeta", "pages", len(doc.Pages))
	}

	if e.preflighter != nil {
		if err := e.preflighter.Check(path, len(doc.Pages)); err != nil {
			e.observer.Warnf("preflight %s: %v", path, err)
		}
	}

	name := filepath.Base(path)
	valid := naming.Validate(name, naming.KindPDF).String()
	recs := make([]records.Record, 0, len(doc.Pages))
	for _, page := range doc.Pages {
		md := page.Describe()
		if e.stepper != nil && page.Image != nil {
			e.stepper.LogDetail("pdfmeta", fmt.Sprintf("page %d image %s", page.Number, page.Image.Name))
		}
		recs = append(recs, records.Record{
			FileType:      records.ModePDF.FileType(),
			Filename:      name,
			Page:          strconv.Itoa(page.Number),
			Type:          md.Type,
			ColorDepth:    md.ColorDepth,
			DPI:           md.DPI,
			Compression:   md.Compression,
			FilenameValid: valid,
			FullPath:      path,
		})
	}
	return recs, nil
}
