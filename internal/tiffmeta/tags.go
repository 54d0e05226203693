// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package tiffmeta

import (
	"github.com/rwcarlsen/goexif/tiff"
)

// TIFF tag numbers read by the normalizer
const (
	TagBitsPerSample   uint16 = 258
	TagCompression     uint16 = 259
	TagPhotometric     uint16 = 262
	TagSamplesPerPixel uint16 = 277
	TagXResolution     uint16 = 282
	TagYResolution     uint16 = 283
	TagResolutionUnit  uint16 = 296
	TagExtraSamples    uint16 = 338
	TagSampleFormat    uint16 = 339
)

// Value holds the decoded values of a single tag. Rationals keep their
// numerator and denominator so division can be deferred.
type Value struct {
	Ints      []int64
	Floats    []float64
	Rationals [][2]int64
	Text      string
}

// TagSet maps TIFF tag numbers to their decoded values
type TagSet map[uint16]Value

// NewTagSet copies every readable tag out of an image file directory.
// Tags whose values cannot be converted are skipped.
func NewTagSet(dir *tiff.Dir) TagSet {
	tags := make(TagSet)
	if dir == nil {
		return tags
	}
	for _, tag := range dir.Tags {
		if tag == nil {
			continue
		}
		var v Value
		n := int(tag.Count)
		switch tag.Format() {
		case tiff.IntVal:
			for i := 0; i < n; i++ {
				x, err := tag.Int64(i)
				if err != nil {
					break
				}
				v.Ints = append(v.Ints, x)
			}
		case tiff.RatVal:
			for i := 0; i < n; i++ {
				num, den, err := tag.Rat2(i)
				if err != nil {
					break
				}
				v.Rationals = append(v.Rationals, [2]int64{num, den})
			}
		case tiff.FloatVal:
			for i := 0; i < n; i++ {
				x, err := tag.Float(i)
				if err != nil {
					break
				}
				v.Floats = append(v.Floats, x)
			}
		case tiff.StringVal:
			s, err := tag.StringVal()
			if err != nil {
				continue
			}
			v.Text = s
		default:
			continue
		}
		tags[tag.Id] = v
	}
	return tags
}

// Int returns the first integer value of a tag
func (ts TagSet) Int(id uint16) (int64, bool) {
	v, ok := ts[id]
	if !ok || len(v.Ints) == 0 {
		return 0, false
	}
	return v.Ints[0], true
}

// Ints returns every integer value of a tag
func (ts TagSet) Ints(id uint16) []int64 {
	return ts[id].Ints
}

// Number resolves the first value of a tag as a real number. A rational
// with a zero denominator resolves to 0.
func (ts TagSet) Number(id uint16) (float64, bool) {
	v, ok := ts[id]
	if !ok {
		return 0, false
	}
	switch {
	case len(v.Rationals) > 0:
		r := v.Rationals[0]
		if r[1] == 0 {
			return 0, true
		}
		return float64(r[0]) / float64(r[1]), true
	case len(v.Ints) > 0:
		return float64(v.Ints[0]), true
	case len(v.Floats) > 0:
		return v.Floats[0], true
	}
	return 0, false
}

// Has reports whether the tag is present
func (ts TagSet) Has(id uint16) bool {
	_, ok := ts[id]
	return ok
}
