// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// DebugObserver prints an indented trace of extraction steps
type DebugObserver struct {
	*StandardObserver
	depth int
}

// NewDebugObserver creates a debug observer and links it from its
// embedded StandardObserver
func NewDebugObserver(writer io.Writer) *DebugObserver {
	d := &DebugObserver{
		StandardObserver: NewStandardObserver(ObservabilityDebug, writer),
	}
	d.StandardObserver.DebugObserver = d
	return d
}

func (d *DebugObserver) prefix() string {
	return strings.Repeat("  ", d.depth)
}

// StartStep opens a nested step and returns the function closing it
func (d *DebugObserver) StartStep(component, step, filePath string) func(success bool, details string) {
	start := time.Now()
	d.printf("%s🔄 %s: %s (%s)\n", d.prefix(), component, step, filePath)
	d.depth++

	return func(success bool, details string) {
		d.depth--
		status := "✅ %s: %s done (%dms) %s\n"
		if !success {
			status = "❌ %s: %s failed (%dms) %s\n"
		}
		d.printf(d.prefix()+status, component, step, time.Since(start).Milliseconds(), details)
	}
}

// LogDetail prints a detail line inside the current step
func (d *DebugObserver) LogDetail(component, detail string) {
	d.printf("%s   → %s: %s\n", d.prefix(), component, detail)
}

// LogMetric prints a named value inside the current step
func (d *DebugObserver) LogMetric(component, metric string, value interface{}) {
	d.printf("%s   📊 %s: %s = %v\n", d.prefix(), component, metric, value)
}

func (d *DebugObserver) printf(format string, args ...interface{}) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.writer, format, args...)
}
