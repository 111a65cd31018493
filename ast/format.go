// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

import "strings"

// FormatTable is the field-order declaration from a section's "Format:"
// line. Styles and Events lines are parsed positionally against whichever
// FormatTable is currently in effect for their section.
type FormatTable struct {
	Names []string // as declared, each individually trimmed
	index map[string]int
}

// NewFormatTable builds a FormatTable from the comma-split, trimmed field
// names of a Format line.
func NewFormatTable(names []string) *FormatTable {
	ft := &FormatTable{Names: names, index: make(map[string]int, len(names))}
	for i, n := range names {
		ft.index[strings.ToLower(strings.TrimSpace(n))] = i
	}
	return ft
}

// IndexOf returns the position of name (case-insensitive) in the format,
// or (-1, false) if it is not declared.
func (f *FormatTable) IndexOf(name string) (int, bool) {
	if f == nil {
		return -1, false
	}
	i, ok := f.index[strings.ToLower(name)]
	return i, ok
}

// Record is the shared shape of a Style or Event line: a span for the
// whole line and one span per field, aligned to a FormatTable by index.
// Records never own their own FormatTable; the enclosing section does, so
// that every record in the section shares one allocation.
type Record struct {
	Span   Span
	Fields []Span
}

// Field returns the raw source text of the named field, or ("", false) if
// the field is not declared in format or the record has no span for it
// (which happens only for a malformed line that was short on fields and
// was accepted with an [InsufficientFields] issue).
func (r Record) Field(source []byte, format *FormatTable, name string) (string, bool) {
	i, ok := format.IndexOf(name)
	if !ok || i >= len(r.Fields) {
		return "", false
	}
	return string(r.Fields[i].Text(source)), true
}

// FieldSpan returns the Span of the named field, for callers that want to
// edit it in place rather than read it.
func (r Record) FieldSpan(format *FormatTable, name string) (Span, bool) {
	i, ok := format.IndexOf(name)
	if !ok || i >= len(r.Fields) {
		return Span{}, false
	}
	return r.Fields[i], true
}

// recordEqual compares two Records field-by-field text content, each
// resolved against its own source buffer. It ignores both Records' outer
// Span, matching the section-level Equal contract of comparing content
// and not position.
func recordEqual(a Record, source []byte, b Record, otherSource []byte) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i := range a.Fields {
		if string(a.Fields[i].Text(source)) != string(b.Fields[i].Text(otherSource)) {
			return false
		}
	}
	return true
}
