// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package pdfmeta walks the pages of a PDF document, picks the first
// embedded image on each page and normalizes its color depth, resolution
// and compression into display strings.
package pdfmeta

import (
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
)

// maxTreeDepth bounds the walk up the page tree when resolving inherited
// attributes
const maxTreeDepth = 64

// Document is the page-by-page view of a PDF file
type Document struct {
	Path  string
	Pages []Page
}

// Page holds the geometry and first image of a single page
type Page struct {
	Number   int       // 1-based
	MediaBox []float64 // four numbers, inherited from the page tree when absent
	Image    *Image    // first image XObject, nil when the page has none
}

// Image is the subset of an image XObject dictionary the normalizer reads.
// Names keep their leading slash, e.g. "/DeviceRGB".
type Image struct {
	Name             string
	ColorSpace       string
	BitsPerComponent int64
	Width            float64
	Height           float64
	BBox             []float64
	Filters          []string
	HasFilter        bool
}

// Open reads every page of the PDF at path. The file is closed before
// returning. Structural damage surfaces as an error rather than a panic.
func Open(path string) (doc *Document, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	defer func() {
		if rec := recover(); rec != nil {
			doc = nil
			err = fmt.Errorf("malformed PDF %s: %v", path, rec)
		}
	}()

	r, err := pdf.NewReader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF structure: %w", err)
	}
	return read(path, r)
}

func read(path string, r *pdf.Reader) (*Document, error) {
	doc := &Document{Path: path}
	total := r.NumPage()
	for n := 1; n <= total; n++ {
		p := r.Page(n)
		if p.V.IsNull() {
			return nil, fmt.Errorf("page %d of %d is missing from the page tree", n, total)
		}
		doc.Pages = append(doc.Pages, readPage(n, p))
	}
	return doc, nil
}

func readPage(number int, p pdf.Page) Page {
	page := Page{
		Number:   number,
		MediaBox: numbers(inherited(p.V, "MediaBox"), 4),
	}

	xobjects := p.Resources().Key("XObject")
	// Keys come back sorted by name; the file's dictionary order is not kept
	for _, name := range xobjects.Keys() {
		xo := xobjects.Key(name)
		if xo.Key("Subtype").Name() != "Image" {
			continue
		}
		page.Image = readImage(name, xo)
		break
	}
	return page
}

func readImage(name string, xo pdf.Value) *Image {
	img := &Image{
		Name: name,
		BBox: numbers(xo.Key("BBox"), 4),
	}

	cs := xo.Key("ColorSpace")
	switch cs.Kind() {
	case pdf.Name:
		img.ColorSpace = "/" + cs.Name()
	case pdf.Array:
		if cs.Len() > 0 && cs.Index(0).Kind() == pdf.Name {
			img.ColorSpace = "/" + cs.Index(0).Name()
		}
	}

	if bpc := xo.Key("BitsPerComponent"); bpc.Kind() == pdf.Integer {
		img.BitsPerComponent = bpc.Int64()
	}

	w, h := xo.Key("Width"), xo.Key("Height")
	if isNumber(w) && isNumber(h) {
		img.Width, img.Height = w.Float64(), h.Float64()
	}

	filter := xo.Key("Filter")
	switch filter.Kind() {
	case pdf.Name:
		img.HasFilter = true
		img.Filters = []string{"/" + filter.Name()}
	case pdf.Array:
		img.HasFilter = true
		for i := 0; i < filter.Len(); i++ {
			if f := filter.Index(i); f.Kind() == pdf.Name {
				img.Filters = append(img.Filters, "/"+f.Name())
			}
		}
	}
	return img
}

// inherited looks up key on v, then on each Parent in turn
func inherited(v pdf.Value, key string) pdf.Value {
	for i := 0; i < maxTreeDepth && !v.IsNull(); i++ {
		if x := v.Key(key); !x.IsNull() {
			return x
		}
		v = v.Key("Parent")
	}
	return pdf.Value{}
}

// numbers converts an array of exactly n numbers; anything else is nil
func numbers(v pdf.Value, n int) []float64 {
	if v.Kind() != pdf.Array || v.Len() != n {
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		x := v.Index(i)
		if !isNumber(x) {
			return nil
		}
		out[i] = x.Float64()
	}
	return out
}

func isNumber(v pdf.Value) bool {
	return v.Kind() == pdf.Integer || v.Kind() == pdf.Real
}
