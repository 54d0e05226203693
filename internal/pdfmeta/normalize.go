// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package pdfmeta

import (
	"fmt"
	"math"
	"strings"
)

// Page type labels
const (
	TypePDF      = "PDF"
	TypePDFImage = "PDF Image"
)

// Unknown is the fallback for any field that cannot be derived
const Unknown = "Unknown"

// Metadata is the normalized view of a page
type Metadata struct {
	Type        string
	ColorDepth  string
	DPI         string
	Compression string
}

// Describe derives the normalized fields of a page. Pages without an
// image report Unknown for every field.
func (p Page) Describe() Metadata {
	if p.Image == nil {
		return Metadata{Type: TypePDF, ColorDepth: Unknown, DPI: Unknown, Compression: Unknown}
	}
	return Metadata{
		Type:        TypePDFImage,
		ColorDepth:  ColorDepth(p.Image),
		DPI:         DPI(p.Image, p.MediaBox),
		Compression: Compression(p.Image),
	}
}

var components = map[string]int64{
	"/DeviceRGB":  3,
	"/DeviceGray": 1,
	"/DeviceCMYK": 4,
	"/Indexed":    1,
}

var spaceLabels = map[string]string{
	"/DeviceRGB":  "RGB",
	"/DeviceGray": "Grayscale",
	"/DeviceCMYK": "CMYK",
}

// ColorDepth renders bits per component and color space as a depth label
func ColorDepth(img *Image) string {
	return guard(func() string {
		space := img.ColorSpace
		if space == "" {
			space = Unknown
		}
		bpc := img.BitsPerComponent
		n := components[space]

		switch {
		case bpc > 0 && n > 0:
			label, ok := spaceLabels[space]
			if space == "/Indexed" {
				label, ok = "Indexed", true
			}
			if !ok {
				label = "(" + space + ")"
			}
			return fmt.Sprintf("%d-bit %s", bpc*n, label)
		case bpc > 0:
			label, ok := spaceLabels[space]
			if !ok {
				label = "(" + space + ")"
			}
			return fmt.Sprintf("%d-bit/component %s", bpc, label)
		case space != Unknown:
			return strings.ReplaceAll(space, "/", "")
		}
		return Unknown
	})
}

// DPI divides the image's pixel size by the printed size of its bounding
// box. Without a usable box the page's media box stands in, which assumes
// the image covers the whole page and is only an approximation.
func DPI(img *Image, mediaBox []float64) string {
	return guard(func() string {
		if img.Width <= 0 || img.Height <= 0 {
			return Unknown
		}
		if dpi, ok := dpiForBox(img.Width, img.Height, img.BBox); ok {
			return dpi
		}
		if dpi, ok := dpiForBox(img.Width, img.Height, mediaBox); ok {
			return dpi
		}
		return Unknown
	})
}

func dpiForBox(width, height float64, box []float64) (string, bool) {
	if len(box) != 4 {
		return "", false
	}
	w := math.Abs(box[2] - box[0])
	h := math.Abs(box[3] - box[1])
	if w <= 0 || h <= 0 {
		return "", false
	}
	x := math.RoundToEven(width / (w / 72))
	y := math.RoundToEven(height / (h / 72))
	return fmt.Sprintf("%d x %d", int64(x), int64(y)), true
}

var filterLabels = map[string]string{
	"/FlateDecode":     "Flate",
	"/DCTDecode":       "JPEG",
	"/JPXDecode":       "JPEG2000",
	"/CCITTFaxDecode":  "CCITT",
	"/LZWDecode":       "LZW",
	"/ASCIIHexDecode":  "ASCIIHex",
	"/ASCII85Decode":   "ASCII85",
	"/RunLengthDecode": "RunLength",
}

// Compression joins the image's filters with friendly names. Filters
// without a friendly name keep their raw form.
func Compression(img *Image) string {
	return guard(func() string {
		if !img.HasFilter || len(img.Filters) == 0 {
			return Unknown
		}
		names := make([]string, len(img.Filters))
		for i, f := range img.Filters {
			if label, ok := filterLabels[f]; ok {
				names[i] = label
			} else {
				names[i] = f
			}
		}
		return strings.Join(names, ", ")
	})
}

func guard(derive func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = Unknown
		}
	}()
	return derive()
}
