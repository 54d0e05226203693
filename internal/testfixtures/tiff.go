// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package testfixtures builds small, structurally valid TIFF and PDF
// documents in memory for tests across the module.
package testfixtures

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// TIFF field types
const (
	typeASCII    = 2
	typeShort    = 3
	typeLong     = 4
	typeRational = 5
)

// Common TIFF tag numbers
const (
	TagImageWidth      = 256
	TagImageLength     = 257
	TagBitsPerSample   = 258
	TagCompression     = 259
	TagPhotometric     = 262
	TagSamplesPerPixel = 277
	TagXResolution     = 282
	TagYResolution     = 283
	TagResolutionUnit  = 296
	TagExtraSamples    = 338
	TagSampleFormat    = 339
)

// Entry is one IFD entry. Exactly one value slice should be set.
type Entry struct {
	Tag       uint16
	Shorts    []uint16
	Longs     []uint32
	Rationals [][2]uint32
	ASCII     string
}

// Short builds a SHORT entry
func Short(tag uint16, v ...uint16) Entry { return Entry{Tag: tag, Shorts: v} }

// Long builds a LONG entry
func Long(tag uint16, v ...uint32) Entry { return Entry{Tag: tag, Longs: v} }

// Rational builds a single-value RATIONAL entry
func Rational(tag uint16, num, den uint32) Entry {
	return Entry{Tag: tag, Rationals: [][2]uint32{{num, den}}}
}

// ASCII builds an ASCII entry
func ASCII(tag uint16, s string) Entry { return Entry{Tag: tag, ASCII: s} }

func (e Entry) encode(order binary.ByteOrder) (typ uint16, count uint32, data []byte) {
	var buf bytes.Buffer
	switch {
	case e.Shorts != nil:
		typ, count = typeShort, uint32(len(e.Shorts))
		for _, v := range e.Shorts {
			binary.Write(&buf, order, v)
		}
	case e.Longs != nil:
		typ, count = typeLong, uint32(len(e.Longs))
		for _, v := range e.Longs {
			binary.Write(&buf, order, v)
		}
	case e.Rationals != nil:
		typ, count = typeRational, uint32(len(e.Rationals))
		for _, v := range e.Rationals {
			binary.Write(&buf, order, v[0])
			binary.Write(&buf, order, v[1])
		}
	default:
		typ, count = typeASCII, uint32(len(e.ASCII)+1)
		buf.WriteString(e.ASCII)
		buf.WriteByte(0)
	}
	return typ, count, buf.Bytes()
}

// TIFF encodes a little-endian TIFF with a single IFD holding entries.
// Values wider than four bytes are stored after the IFD.
func TIFF(entries ...Entry) []byte {
	order := binary.LittleEndian
	sorted := append([]Entry(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Tag < sorted[j].Tag })

	const ifdOffset = 8
	dataOffset := uint32(ifdOffset + 2 + 12*len(sorted) + 4)

	var ifd, extra bytes.Buffer
	binary.Write(&ifd, order, uint16(len(sorted)))
	for _, e := range sorted {
		typ, count, data := e.encode(order)
		binary.Write(&ifd, order, e.Tag)
		binary.Write(&ifd, order, typ)
		binary.Write(&ifd, order, count)
		if len(data) <= 4 {
			padded := make([]byte, 4)
			copy(padded, data)
			ifd.Write(padded)
			continue
		}
		binary.Write(&ifd, order, dataOffset+uint32(extra.Len()))
		extra.Write(data)
		if extra.Len()%2 == 1 {
			extra.WriteByte(0)
		}
	}
	binary.Write(&ifd, order, uint32(0))

	var out bytes.Buffer
	out.WriteString("II")
	binary.Write(&out, order, uint16(42))
	binary.Write(&out, order, uint32(ifdOffset))
	out.Write(ifd.Bytes())
	out.Write(extra.Bytes())
	return out.Bytes()
}

// RGBTIFF returns an 8-bit RGB TIFF at the given resolution in dots per inch
func RGBTIFF(dpi uint32, compression uint16) []byte {
	return TIFF(
		Long(TagImageWidth, 16),
		Long(TagImageLength, 16),
		Short(TagBitsPerSample, 8, 8, 8),
		Short(TagCompression, compression),
		Short(TagPhotometric, 2),
		Short(TagSamplesPerPixel, 3),
		Rational(TagXResolution, dpi, 1),
		Rational(TagYResolution, dpi, 1),
		Short(TagResolutionUnit, 2),
	)
}

// WriteFile writes data under dir and returns the full path
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create fixture directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write fixture %s: %v", name, err)
	}
	return path
}
