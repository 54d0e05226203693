// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package testfixtures

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// PDFImage describes an image XObject placed in a page's resources
type PDFImage struct {
	Name             string
	ColorSpace       string // PDF name without the slash; empty omits the key
	BitsPerComponent int    // zero omits the key
	Width, Height    int    // zero omits the key
	BBox             []float64
	Filters          []string
}

// PDFPage describes one leaf page. A nil MediaBox inherits from the page tree.
type PDFPage struct {
	MediaBox []float64
	Images   []PDFImage
}

// PDF assembles a classic xref-table PDF. treeMediaBox, when set, is
// placed on the root Pages node for pages to inherit.
func PDF(treeMediaBox []float64, pages ...PDFPage) []byte {
	var objects []string
	add := func(body string) int {
		objects = append(objects, body)
		return len(objects)
	}

	add("") // catalog, filled below
	add("") // page tree, filled below

	var kids []string
	for _, page := range pages {
		var xobjects []string
		for _, img := range page.Images {
			id := add(imageObject(img))
			xobjects = append(xobjects, fmt.Sprintf("/%s %d 0 R", img.Name, id))
		}

		var dict strings.Builder
		dict.WriteString("<< /Type /Page /Parent 2 0 R")
		if page.MediaBox != nil {
			fmt.Fprintf(&dict, " /MediaBox %s", numberArray(page.MediaBox))
		}
		if len(xobjects) > 0 {
			fmt.Fprintf(&dict, " /Resources << /XObject << %s >> >>", strings.Join(xobjects, " "))
		} else {
			dict.WriteString(" /Resources << >>")
		}
		dict.WriteString(" >>")
		id := add(dict.String())
		kids = append(kids, fmt.Sprintf("%d 0 R", id))
	}

	objects[0] = "<< /Type /Catalog /Pages 2 0 R >>"
	tree := fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d", strings.Join(kids, " "), len(pages))
	if treeMediaBox != nil {
		tree += " /MediaBox " + numberArray(treeMediaBox)
	}
	objects[1] = tree + " >>"

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n")
	offsets := make([]int, len(objects))
	for i, body := range objects {
		offsets[i] = out.Len()
		fmt.Fprintf(&out, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}

	xref := out.Len()
	fmt.Fprintf(&out, "xref\n0 %d\n", len(objects)+1)
	out.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&out, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&out, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return out.Bytes()
}

func imageObject(img PDFImage) string {
	var b strings.Builder
	b.WriteString("<< /Type /XObject /Subtype /Image")
	if img.Width > 0 {
		fmt.Fprintf(&b, " /Width %d", img.Width)
	}
	if img.Height > 0 {
		fmt.Fprintf(&b, " /Height %d", img.Height)
	}
	if img.ColorSpace != "" {
		fmt.Fprintf(&b, " /ColorSpace /%s", img.ColorSpace)
	}
	if img.BitsPerComponent > 0 {
		fmt.Fprintf(&b, " /BitsPerComponent %d", img.BitsPerComponent)
	}
	if img.BBox != nil {
		fmt.Fprintf(&b, " /BBox %s", numberArray(img.BBox))
	}
	switch len(img.Filters) {
	case 0:
	case 1:
		fmt.Fprintf(&b, " /Filter /%s", img.Filters[0])
	default:
		names := make([]string, len(img.Filters))
		for i, f := range img.Filters {
			names[i] = "/" + f
		}
		fmt.Fprintf(&b, " /Filter [%s]", strings.Join(names, " "))
	}
	b.WriteString(" /Length 0 >>\nstream\n\nendstream")
	return b.String()
}

func numberArray(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
