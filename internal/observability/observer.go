// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// StandardObserver records timed operations as JSON lines and prints
// warnings for the extraction pipeline
type StandardObserver struct {
	level         ObservabilityLevel
	writer        io.Writer
	runID         string
	mu            sync.Mutex
	DebugObserver *DebugObserver // set when running in debug mode
}

type ObservabilityLevel int

const (
	ObservabilityOff     ObservabilityLevel = 0
	ObservabilityMetrics ObservabilityLevel = 1
	ObservabilityDebug   ObservabilityLevel = 2
)

// LevelFor maps the CLI switches onto an observability level. Quiet wins
// over debug.
func LevelFor(debug, quiet bool) ObservabilityLevel {
	switch {
	case quiet:
		return ObservabilityOff
	case debug:
		return ObservabilityDebug
	default:
		return ObservabilityMetrics
	}
}

// NewStandardObserver creates an observer writing to writer. A nil writer
// discards everything.
func NewStandardObserver(level ObservabilityLevel, writer io.Writer) *StandardObserver {
	if writer == nil {
		writer = io.Discard
	}
	return &StandardObserver{
		level:  level,
		writer: writer,
		runID:  "run-" + time.Now().Format("20060102-150405"),
	}
}

// Level returns the configured level
func (o *StandardObserver) Level() ObservabilityLevel {
	return o.level
}

// StartTiming returns a function that completes the operation and logs it
func (o *StandardObserver) StartTiming(component, operation, filePath string) func(success bool, metadata map[string]interface{}) {
	start := time.Now()

	return func(success bool, metadata map[string]interface{}) {
		data := OperationData{
			Component:  component,
			Operation:  operation,
			FilePath:   filePath,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		}
		if msg, ok := metadata["error"].(string); ok {
			data.Error = msg
			delete(metadata, "error")
		}
		if n, ok := metadata["record_count"].(int); ok {
			data.RecordCount = n
			delete(metadata, "record_count")
		}
		if len(data.Metadata) == 0 {
			data.Metadata = nil
		}
		o.LogOperation(data)
	}
}

// LogOperation writes one JSON line per operation in debug mode
func (o *StandardObserver) LogOperation(data OperationData) {
	if o.level != ObservabilityDebug {
		return
	}
	data.RunID = o.runID

	o.mu.Lock()
	defer o.mu.Unlock()
	// Trace lines are best effort and never fail the batch
	_ = json.NewEncoder(o.writer).Encode(data)
}

// Warnf prints a warning line unless the observer is off
func (o *StandardObserver) Warnf(format string, args ...interface{}) {
	if o.level == ObservabilityOff {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	_, _ = fmt.Fprintf(o.writer, "Warning: "+format+"\n", args...)
}

// OperationData is the JSON shape of a logged operation
type OperationData struct {
	Component   string                 `json:"component"`
	Operation   string                 `json:"operation"`
	RunID       string                 `json:"run_id"`
	FilePath    string                 `json:"file_path,omitempty"`
	DurationMs  int64                  `json:"duration_ms"`
	Success     bool                   `json:"success"`
	Error       string                 `json:"error,omitempty"`
	RecordCount int                    `json:"record_count,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
