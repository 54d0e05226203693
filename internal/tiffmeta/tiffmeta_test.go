// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package tiffmeta

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tiffpdf-meta/internal/testfixtures"
)

func ints(v ...int64) Value { return Value{Ints: v} }

func rational(num, den int64) Value { return Value{Rationals: [][2]int64{{num, den}}} }

func TestDecodeRGB(t *testing.T) {
	img, err := Decode(bytes.NewReader(testfixtures.RGBTIFF(300, 5)))
	require.NoError(t, err)

	assert.Equal(t, "TIFF", img.Format)
	assert.Equal(t, "RGB", img.Mode)

	md := img.Describe()
	assert.Equal(t, "TIFF", md.Format)
	assert.Equal(t, "300 x 300", md.DPI)
	assert.Equal(t, "LZW", md.Compression)
	assert.Equal(t, "24-bit Color", md.ColorDepth)
}

func TestDecodeBilevel(t *testing.T) {
	data := testfixtures.TIFF(
		testfixtures.Long(testfixtures.TagImageWidth, 8),
		testfixtures.Long(testfixtures.TagImageLength, 8),
		testfixtures.Short(testfixtures.TagBitsPerSample, 1),
		testfixtures.Short(testfixtures.TagCompression, 4),
		testfixtures.Short(testfixtures.TagPhotometric, 0),
		testfixtures.Short(testfixtures.TagSamplesPerPixel, 1),
		testfixtures.Rational(testfixtures.TagXResolution, 600, 1),
		testfixtures.Rational(testfixtures.TagYResolution, 400, 1),
	)
	img, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, "1", img.Mode)
	assert.Equal(t, "1-bit (Bilevel)", img.ColorDepth())
	assert.Equal(t, "Group 4 Fax", img.Compression())
	assert.Equal(t, "600 x 400", img.DPI())
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for name, data := range map[string][]byte{
		"empty":      nil,
		"text":       []byte("definitely not a tiff file"),
		"bad marker": []byte("II\x2b\x00\x08\x00\x00\x00"),
		"byte order": []byte("XX\x2a\x00\x08\x00\x00\x00"),
		"short ifd":  []byte("II\x2a\x00\x08\x00\x00\x00\x05"),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(bytes.NewReader(data))
			assert.Error(t, err)
		})
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(t.TempDir() + "/missing.tif")
	assert.Error(t, err)
}

func TestCompression(t *testing.T) {
	tests := []struct {
		name string
		tags TagSet
		want string
	}{
		{"uncompressed", TagSet{TagCompression: ints(1)}, "Uncompressed"},
		{"lzw", TagSet{TagCompression: ints(5)}, "LZW"},
		{"jpeg", TagSet{TagCompression: ints(6)}, "JPEG"},
		{"packbits alias", TagSet{TagCompression: ints(32773)}, "PackBits"},
		{"deflate alias", TagSet{TagCompression: ints(32946)}, "Deflate"},
		{"unmapped", TagSet{TagCompression: ints(9999)}, "Unknown (9999)"},
		{"absent", TagSet{}, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := &Image{Tags: tt.tags}
			assert.Equal(t, tt.want, img.Compression())
		})
	}
}

func TestDPI(t *testing.T) {
	tests := []struct {
		name string
		tags TagSet
		want string
	}{
		{
			name: "inches",
			tags: TagSet{TagXResolution: rational(300, 1), TagYResolution: rational(300, 1), TagResolutionUnit: ints(2)},
			want: "300 x 300",
		},
		{
			name: "unit missing reads as inches",
			tags: TagSet{TagXResolution: rational(72, 1), TagYResolution: rational(96, 1)},
			want: "72 x 96",
		},
		{
			name: "centimeters converted",
			tags: TagSet{TagXResolution: rational(11811, 100), TagYResolution: rational(11811, 100), TagResolutionUnit: ints(3)},
			want: "300 x 300",
		},
		{
			name: "no unit falls back to raw tags",
			tags: TagSet{TagXResolution: rational(150, 1), TagYResolution: rational(150, 1), TagResolutionUnit: ints(1)},
			want: "150 x 150",
		},
		{
			name: "bare numbers",
			tags: TagSet{TagXResolution: ints(200), TagYResolution: ints(200), TagResolutionUnit: ints(1)},
			want: "200 x 200",
		},
		{
			name: "ties round to even",
			tags: TagSet{TagXResolution: rational(601, 2), TagYResolution: rational(603, 2)},
			want: "300 x 302",
		},
		{
			name: "zero denominator",
			tags: TagSet{TagXResolution: rational(300, 0), TagYResolution: rational(300, 1)},
			want: "Not specified",
		},
		{
			name: "one axis missing",
			tags: TagSet{TagXResolution: rational(300, 1)},
			want: "Not specified",
		},
		{
			name: "absent",
			tags: TagSet{},
			want: "Not specified",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := &Image{Tags: tt.tags}
			assert.Equal(t, tt.want, img.DPI())
		})
	}
}

func TestColorDepth(t *testing.T) {
	tests := []struct {
		name string
		mode string
		tags TagSet
		want string
	}{
		{"rgb", "RGB", TagSet{TagBitsPerSample: ints(8, 8, 8), TagSamplesPerPixel: ints(3)}, "24-bit Color"},
		{"bilevel", "1", TagSet{TagBitsPerSample: ints(1), TagSamplesPerPixel: ints(1)}, "1-bit (Bilevel)"},
		{"grayscale", "L", TagSet{TagBitsPerSample: ints(8)}, "8-bit Grayscale"},
		{"palette", "P", TagSet{TagBitsPerSample: ints(4)}, "4-bit Grayscale"},
		{"rgba", "RGBA", TagSet{TagBitsPerSample: ints(8, 8, 8, 8), TagSamplesPerPixel: ints(4)}, "32-bit Color with Alpha"},
		{"cmyk", "CMYK", TagSet{TagBitsPerSample: ints(8), TagSamplesPerPixel: ints(4)}, "32-bit CMYK"},
		{"other mode", "LA", TagSet{TagBitsPerSample: ints(8), TagSamplesPerPixel: ints(2)}, "16-bit (LA)"},
		{"mode only rgb", "RGB", TagSet{}, "24-bit Color"},
		{"mode only gray", "L", TagSet{}, "8-bit Grayscale"},
		{"mode only rgba", "RGBA", TagSet{}, "32-bit Color with Alpha"},
		{"mode only cmyk", "CMYK", TagSet{}, "32-bit CMYK"},
		{"mode only bilevel", "1", TagSet{}, "1-bit (Bilevel)"},
		{"mode only other", "YCbCr", TagSet{}, "Unknown (YCbCr)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := &Image{Mode: tt.mode, Tags: tt.tags}
			first := img.ColorDepth()
			assert.Equal(t, tt.want, first)
			assert.Equal(t, first, img.ColorDepth())
		})
	}
}

func TestDeriveMode(t *testing.T) {
	tests := []struct {
		name string
		tags TagSet
		want string
	}{
		{"bilevel", TagSet{TagPhotometric: ints(0), TagBitsPerSample: ints(1)}, "1"},
		{"default photometric", TagSet{TagBitsPerSample: ints(1)}, "1"},
		{"gray", TagSet{TagPhotometric: ints(1), TagBitsPerSample: ints(8)}, "L"},
		{"gray alpha", TagSet{TagPhotometric: ints(1), TagBitsPerSample: ints(8, 8), TagSamplesPerPixel: ints(2)}, "LA"},
		{"gray 16", TagSet{TagPhotometric: ints(1), TagBitsPerSample: ints(16)}, "I;16"},
		{"float", TagSet{TagPhotometric: ints(1), TagBitsPerSample: ints(32), TagSampleFormat: ints(3)}, "F"},
		{"rgb", TagSet{TagPhotometric: ints(2), TagSamplesPerPixel: ints(3)}, "RGB"},
		{"rgba", TagSet{TagPhotometric: ints(2), TagSamplesPerPixel: ints(4), TagExtraSamples: ints(2)}, "RGBA"},
		{"rgb padded", TagSet{TagPhotometric: ints(2), TagSamplesPerPixel: ints(4), TagExtraSamples: ints(0)}, "RGBX"},
		{"palette", TagSet{TagPhotometric: ints(3)}, "P"},
		{"cmyk", TagSet{TagPhotometric: ints(5), TagSamplesPerPixel: ints(4)}, "CMYK"},
		{"ycbcr jpeg", TagSet{TagPhotometric: ints(6), TagCompression: ints(7)}, "RGB"},
		{"ycbcr", TagSet{TagPhotometric: ints(6)}, "YCbCr"},
		{"lab", TagSet{TagPhotometric: ints(8)}, "LAB"},
		{"unrecognized", TagSet{TagPhotometric: ints(32844)}, "Unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveMode(tt.tags))
		})
	}
}

func TestGuardRecoversPanics(t *testing.T) {
	got := guard("Unknown", func() string {
		var tags []int64
		return string(rune(tags[3]))
	})
	assert.Equal(t, "Unknown", got)
	assert.Equal(t, "ok", guard("Unknown", func() string { return "ok" }))
}
