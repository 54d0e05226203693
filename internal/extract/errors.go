// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"tiffpdf-meta/internal/records"
)

// ErrorType classifies why a file produced an error record
type ErrorType string

const (
	ErrorTypeFileAccess ErrorType = "file_access"
	ErrorTypeDecode     ErrorType = "decode_failed"
	ErrorTypePanic      ErrorType = "panic"
)

// FileError describes a file that could not be processed
type FileError struct {
	FilePath  string
	Mode      records.Mode
	ErrorType ErrorType
	Cause     error
}

// Error implements the error interface
func (fe *FileError) Error() string {
	parts := []string{
		fmt.Sprintf("extraction failed for %s", fe.FilePath),
		fmt.Sprintf("mode=%s", fe.Mode),
		fmt.Sprintf("error=%s", fe.ErrorType),
	}
	if fe.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%v", fe.Cause))
	}
	return strings.Join(parts, " ")
}

// Unwrap returns the underlying error
func (fe *FileError) Unwrap() error {
	return fe.Cause
}

// newFileError wraps cause, telling filesystem failures apart from
// content that could not be decoded
func newFileError(mode records.Mode, path string, cause error) *FileError {
	errType := ErrorTypeDecode
	var pathErr *fs.PathError
	if errors.As(cause, &pathErr) {
		errType = ErrorTypeFileAccess
	}
	return &FileError{FilePath: path, Mode: mode, ErrorType: errType, Cause: cause}
}
