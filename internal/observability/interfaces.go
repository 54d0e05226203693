// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

// Observer is what the extraction pipeline needs from an observer.
// *StandardObserver and *DebugObserver both satisfy it.
type Observer interface {
	StartTiming(component, operation, filePath string) func(success bool, metadata map[string]interface{})
	Warnf(format string, args ...interface{})
}

// Stepper is implemented by observers that trace nested steps
type Stepper interface {
	StartStep(component, step, filePath string) func(success bool, details string)
	LogDetail(component, detail string)
	LogMetric(component, metric string, value interface{})
}

var (
	_ Observer = (*StandardObserver)(nil)
	_ Observer = (*DebugObserver)(nil)
	_ Stepper  = (*DebugObserver)(nil)
)
