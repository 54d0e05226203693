// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFor(t *testing.T) {
	assert.Equal(t, ObservabilityMetrics, LevelFor(false, false))
	assert.Equal(t, ObservabilityDebug, LevelFor(true, false))
	assert.Equal(t, ObservabilityOff, LevelFor(true, true))
}

func TestStartTimingWritesJSONInDebug(t *testing.T) {
	var buf bytes.Buffer
	obs := NewStandardObserver(ObservabilityDebug, &buf)

	finish := obs.StartTiming("extract", "process_file", "/scans/a.tif")
	finish(false, map[string]interface{}{"error": "boom", "record_count": 1, "mode": "tiff"})

	var data OperationData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &data))
	assert.Equal(t, "extract", data.Component)
	assert.Equal(t, "process_file", data.Operation)
	assert.Equal(t, "/scans/a.tif", data.FilePath)
	assert.False(t, data.Success)
	assert.Equal(t, "boom", data.Error)
	assert.Equal(t, 1, data.RecordCount)
	assert.Equal(t, map[string]interface{}{"mode": "tiff"}, data.Metadata)
	assert.True(t, strings.HasPrefix(data.RunID, "run-"))
}

func TestStartTimingSilentOutsideDebug(t *testing.T) {
	var buf bytes.Buffer
	obs := NewStandardObserver(ObservabilityMetrics, &buf)
	obs.StartTiming("extract", "run", "")(true, nil)
	assert.Empty(t, buf.String())
}

func TestWarnf(t *testing.T) {
	var buf bytes.Buffer
	NewStandardObserver(ObservabilityMetrics, &buf).Warnf("preflight %s: %d issues", "a.pdf", 2)
	assert.Equal(t, "Warning: preflight a.pdf: 2 issues\n", buf.String())

	buf.Reset()
	NewStandardObserver(ObservabilityOff, &buf).Warnf("ignored")
	assert.Empty(t, buf.String())
}

func TestNilWriterDiscards(t *testing.T) {
	obs := NewStandardObserver(ObservabilityDebug, nil)
	assert.NotPanics(t, func() {
		obs.StartTiming("extract", "run", "")(true, nil)
		obs.Warnf("nothing to see")
	})
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, errors.New("disk full")
}

func TestWriteFailuresDoNotInterrupt(t *testing.T) {
	w := &failingWriter{}
	obs := NewStandardObserver(ObservabilityDebug, w)
	assert.NotPanics(t, func() {
		obs.LogOperation(OperationData{Component: "extract", Operation: "run_batch"})
		obs.Warnf("still running")
	})
	assert.Equal(t, 2, w.calls)
}

func TestDebugObserverSteps(t *testing.T) {
	var buf bytes.Buffer
	d := NewDebugObserver(&buf)
	require.Same(t, d, d.StandardObserver.DebugObserver)

	done := d.StartStep("tiffmeta", "decode", "a.tif")
	d.LogDetail("tiffmeta", "mode RGB")
	d.LogMetric("tiffmeta", "tags", 9)
	done(true, "")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "tiffmeta: decode (a.tif)")
	assert.True(t, strings.HasPrefix(lines[1], "     → tiffmeta: mode RGB"))
	assert.Contains(t, lines[2], "tags = 9")
	assert.Contains(t, lines[3], "decode done")
	assert.False(t, strings.HasPrefix(lines[3], " "))
}
