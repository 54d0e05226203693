// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package shared

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"tiffpdf-meta/internal/records"
)

// Document is the top-level structure for JSON/YAML output
type Document struct {
	Mode    string `json:"mode" yaml:"mode"`
	Count   int    `json:"count" yaml:"count"`
	Errors  int    `json:"errors" yaml:"errors"`
	Records []Row  `json:"records" yaml:"records"`
}

// Row is a record whose keys keep the mode's column order when encoded
type Row struct {
	Columns []string
	Values  []string
}

// NewDocument converts records into the JSON/YAML document shape
func NewDocument(mode records.Mode, recs []records.Record) Document {
	cols := records.Columns(mode)
	doc := Document{Mode: string(mode), Count: len(recs), Records: make([]Row, 0, len(recs))}
	for _, r := range recs {
		if r.IsError() {
			doc.Errors++
		}
		doc.Records = append(doc.Records, Row{Columns: cols, Values: r.Values(mode)})
	}
	return doc
}

// MarshalJSON writes the row as an object in column order
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range r.Columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.Values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML writes the row as a mapping in column order
func (r Row) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i, col := range r.Columns {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: col},
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: r.Values[i]},
		)
	}
	return node, nil
}
