// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package tiffmeta

// Photometric interpretations
const (
	photoWhiteIsZero = 0
	photoBlackIsZero = 1
	photoRGB         = 2
	photoPalette     = 3
	photoMask        = 4
	photoSeparated   = 5
	photoYCbCr       = 6
	photoCIELab      = 8
)

// DeriveMode names the pixel mode an image decoder would assign to the
// directory, using the same short names ("1", "L", "P", "RGB", "RGBA",
// "CMYK", ...). Layouts no decoder recognizes report "Unknown".
func DeriveMode(tags TagSet) string {
	photometric := int64(photoWhiteIsZero)
	if v, ok := tags.Int(TagPhotometric); ok {
		photometric = v
	}
	samples := int64(1)
	if v, ok := tags.Int(TagSamplesPerPixel); ok {
		samples = v
	}
	bits := int64(1)
	if v, ok := tags.Int(TagBitsPerSample); ok {
		bits = v
	}
	sampleFormat := int64(1)
	if v, ok := tags.Int(TagSampleFormat); ok {
		sampleFormat = v
	}
	extra := tags.Ints(TagExtraSamples)

	switch photometric {
	case photoWhiteIsZero, photoBlackIsZero:
		if samples == 2 {
			return "LA"
		}
		if samples != 1 {
			return Unknown
		}
		switch bits {
		case 1:
			return "1"
		case 2, 4, 8:
			return "L"
		case 16:
			return "I;16"
		case 32:
			if sampleFormat == 3 {
				return "F"
			}
			return "I"
		}
	case photoRGB:
		switch {
		case samples == 3:
			return "RGB"
		case samples >= 4 && len(extra) > 0 && extra[0] == 0:
			return "RGBX"
		case samples >= 4:
			return "RGBA"
		}
	case photoPalette:
		return "P"
	case photoMask:
		return "1"
	case photoSeparated:
		return "CMYK"
	case photoYCbCr:
		if c, ok := tags.Int(TagCompression); ok && (c == 6 || c == 7) {
			return "RGB"
		}
		return "YCbCr"
	case photoCIELab:
		return "LAB"
	}
	return Unknown
}
