// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ast defines the zero-copy abstract syntax tree produced by
// package parse: every node carries a byte [Span] into the original source
// rather than an owned copy of its text, so source[span.Start:span.End] is
// always exactly the text that was parsed into that node.
package ast

import "fmt"

// Span locates a node in the source: a half-open byte range plus the
// 1-based line and column of Start. End is exclusive.
type Span struct {
	Start, End int
	Line       int
	Column     int
}

// Text returns the exact source bytes covered by the span. Callers that
// need a string should convert explicitly (string(span.Text(source))); the
// AST itself never performs that copy unless asked.
func (s Span) Text(source []byte) []byte {
	if s.Start < 0 || s.End > len(source) || s.Start > s.End {
		return nil
	}
	return source[s.Start:s.End]
}

// Len returns the span's byte length.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether offset falls within [s.Start, s.End).
func (s Span) Contains(offset int) bool { return offset >= s.Start && offset < s.End }

// Overlaps reports whether s and o share any byte.
func (s Span) Overlaps(o Span) bool { return s.Start < o.End && o.Start < s.End }

// Shift returns a copy of s with both bounds moved by delta bytes. It is
// how the incremental parser keeps spans valid for sections that sit
// entirely after an edit without reparsing them.
func (s Span) Shift(delta int) Span {
	s.Start += delta
	s.End += delta
	return s
}

func (s Span) String() string {
	return fmt.Sprintf("%d:%d[%d,%d)", s.Line, s.Column, s.Start, s.End)
}
