// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package token

// Span is a minimal byte range, used by Lines so callers that only need
// line boundaries don't have to pull in package ast. It carries the same
// fields as a [Token] minus Kind.
type Span struct {
	Start, End int
	Line       int
	Column     int
}

// Text returns the source bytes covered by the span.
func (s Span) Text(source []byte) []byte { return source[s.Start:s.End] }

// Line is one line of source, split the same way the Scanner splits
// lines: CR, LF, and CRLF each count as exactly one line terminator.
// Content excludes the terminator.
type Line struct {
	Content Span
	Number  int // 1-based
}

// Lines splits source into lines using the same CR/LF/CRLF rules as the
// Scanner, so the parser's line-oriented section/field logic stays
// consistent with the tokenizer's own notion of a line. A UTF-8 BOM at the
// very start of source is skipped, matching New.
func Lines(source []byte) []Line {
	pos := 0
	if len(source) >= 3 && source[0] == 0xEF && source[1] == 0xBB && source[2] == 0xBF {
		pos = 3
	}
	var lines []Line
	lineNo := 1
	start := pos
	for pos < len(source) {
		if nl, size := newlineAt(source, pos); nl {
			lines = append(lines, Line{
				Content: Span{Start: start, End: pos, Line: lineNo, Column: 1},
				Number:  lineNo,
			})
			pos += size
			lineNo++
			start = pos
			continue
		}
		pos++
	}
	if start < len(source) {
		lines = append(lines, Line{
			Content: Span{Start: start, End: len(source), Line: lineNo, Column: 1},
			Number:  lineNo,
		})
	}
	return lines
}
