// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package naming checks archive filenames against the ISBN-based naming
// convention used for digitized titles.
package naming

import (
	"regexp"
	"strings"
)

// Kind selects which naming convention applies
type Kind string

const (
	KindTIFF Kind = "tiff"
	KindPDF  Kind = "pdf"
)

// Validity is the outcome of a filename check
type Validity string

const (
	Valid          Validity = "Yes"
	WrongExtension Validity = "Wrong extension"
	Invalid        Validity = "No"
)

// convention pairs the full pattern with the prefix that identifies a
// correctly numbered file carrying some other extension
type convention struct {
	full   *regexp.Regexp
	prefix *regexp.Regexp
}

var conventions = map[Kind]convention{
	// ISBN13_#####.tif
	KindTIFF: {
		full:   regexp.MustCompile(`^\d{13}_\d{5}\.tif$`),
		prefix: regexp.MustCompile(`^\d{13}_\d{5}\.`),
	},
	// ISBN13.pdf
	KindPDF: {
		full:   regexp.MustCompile(`^\d{13}\.pdf$`),
		prefix: regexp.MustCompile(`^\d{13}\.`),
	},
}

// Validate classifies filename (a base name, not a path) for the given kind.
// Matching is case-insensitive. Unknown kinds always yield Invalid.
func Validate(filename string, kind Kind) Validity {
	conv, ok := conventions[kind]
	if !ok {
		return Invalid
	}

	name := strings.ToLower(filename)
	if conv.full.MatchString(name) {
		return Valid
	}
	if conv.prefix.MatchString(name) {
		return WrongExtension
	}
	return Invalid
}

// String returns the display value used in exported records
func (v Validity) String() string {
	return string(v)
}
