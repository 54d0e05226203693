// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package tiffmeta decodes the first image directory of a TIFF file and
// normalizes its resolution, compression and color depth into display
// strings.
package tiffmeta

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/rwcarlsen/goexif/tiff"
)

// Fallback display values
const (
	NotSpecified = "Not specified"
	Unknown      = "Unknown"
)

// FormatTIFF is the format name reported for every decoded image
const FormatTIFF = "TIFF"

// Image is a decoded TIFF image handle
type Image struct {
	Format string
	Mode   string
	Tags   TagSet
}

// Metadata is the normalized view of an image
type Metadata struct {
	Format      string
	DPI         string
	Compression string
	ColorDepth  string
}

// ErrNoDirectory is returned when a TIFF holds no image file directory
var ErrNoDirectory = errors.New("tiff: no image file directory")

// Open decodes the TIFF at path. The file is closed before returning.
func Open(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode reads a TIFF stream and keeps the tags of its first directory
func Decode(r io.Reader) (*Image, error) {
	t, err := tiff.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tiff: %w", err)
	}
	if len(t.Dirs) == 0 {
		return nil, ErrNoDirectory
	}

	tags := NewTagSet(t.Dirs[0])
	return &Image{
		Format: FormatTIFF,
		Mode:   DeriveMode(tags),
		Tags:   tags,
	}, nil
}

// Describe derives every normalized field of the image
func (img *Image) Describe() Metadata {
	return Metadata{
		Format:      img.Format,
		DPI:         img.DPI(),
		Compression: img.Compression(),
		ColorDepth:  img.ColorDepth(),
	}
}

// DPI returns the resolution as "{x} x {y}". An explicit resolution in
// inches or centimeters wins, raw tag values come second.
func (img *Image) DPI() string {
	return guard(NotSpecified, func() string {
		if x, y, ok := explicitResolution(img.Tags); ok {
			if dx, dy := roundHalfEven(x), roundHalfEven(y); dx > 0 && dy > 0 {
				return fmt.Sprintf("%d x %d", dx, dy)
			}
		}

		x, okX := img.Tags.Number(TagXResolution)
		y, okY := img.Tags.Number(TagYResolution)
		if !okX || !okY {
			return NotSpecified
		}
		dx, dy := roundHalfEven(x), roundHalfEven(y)
		if dx <= 0 || dy <= 0 {
			return NotSpecified
		}
		return fmt.Sprintf("%d x %d", dx, dy)
	})
}

// explicitResolution mirrors how decoders publish a resolution pair:
// inches pass through, centimeters are converted, any other unit yields
// no pair. A missing unit is read as inches.
func explicitResolution(tags TagSet) (float64, float64, bool) {
	x, okX := tags.Number(TagXResolution)
	y, okY := tags.Number(TagYResolution)
	if !okX || !okY {
		return 0, 0, false
	}

	unit := int64(2)
	if u, ok := tags.Int(TagResolutionUnit); ok {
		unit = u
	}
	switch unit {
	case 2:
		return x, y, true
	case 3:
		return x * 2.54, y * 2.54, true
	default:
		return 0, 0, false
	}
}

var compressionNames = map[int64]string{
	1:     "Uncompressed",
	2:     "CCITT 1D",
	3:     "Group 3 Fax",
	4:     "Group 4 Fax",
	5:     "LZW",
	6:     "JPEG",
	7:     "PackBits",
	8:     "Deflate",
	32773: "PackBits",
	32946: "Deflate",
}

// Compression maps tag 259 to a readable name
func (img *Image) Compression() string {
	return guard(Unknown, func() string {
		code, ok := img.Tags.Int(TagCompression)
		if !ok {
			return Unknown
		}
		if name, ok := compressionNames[code]; ok {
			return name
		}
		return fmt.Sprintf("Unknown (%d)", code)
	})
}

// ColorDepth combines bits per sample and samples per pixel with the
// pixel mode
func (img *Image) ColorDepth() string {
	return guard(Unknown, func() string {
		bits := int64(0)
		if v, ok := img.Tags.Int(TagBitsPerSample); ok {
			bits = v
		}
		samples := int64(1)
		if v, ok := img.Tags.Int(TagSamplesPerPixel); ok {
			samples = v
		}
		return describeDepth(bits*samples, img.Mode)
	})
}

func describeDepth(total int64, mode string) string {
	if total > 0 {
		switch mode {
		case "1":
			return "1-bit (Bilevel)"
		case "L", "P":
			return fmt.Sprintf("%d-bit Grayscale", total)
		case "RGB":
			return fmt.Sprintf("%d-bit Color", total)
		case "RGBA":
			return fmt.Sprintf("%d-bit Color with Alpha", total)
		case "CMYK":
			return fmt.Sprintf("%d-bit CMYK", total)
		default:
			return fmt.Sprintf("%d-bit (%s)", total, mode)
		}
	}

	switch mode {
	case "1":
		return "1-bit (Bilevel)"
	case "L", "P":
		return "8-bit Grayscale"
	case "RGB":
		return "24-bit Color"
	case "RGBA":
		return "32-bit Color with Alpha"
	case "CMYK":
		return "32-bit CMYK"
	default:
		return fmt.Sprintf("Unknown (%s)", mode)
	}
}

// guard runs derive and substitutes fallback if it panics
func guard(fallback string, derive func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = fallback
		}
	}()
	return derive()
}

// roundHalfEven rounds ties to the nearest even integer
func roundHalfEven(v float64) int64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int64(math.RoundToEven(v))
}
