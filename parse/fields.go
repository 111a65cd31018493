// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import "github.com/asslib/ass/ast"

// topLevelCommas returns the byte offsets, relative to line, of every comma
// that sits outside any parenthesized group. Parenthesis nesting is
// tracked globally across the whole line; this is what keeps a `\move(x1,
// y1,x2,y2,t1,t2)` override tag inside a Text field from being mistaken
// for field separators.
func topLevelCommas(line []byte) []int {
	var commas []int
	depth := 0
	for i, c := range line {
		switch c {
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				commas = append(commas, i)
			}
		}
	}
	return commas
}

// lastTopLevelComma scans line from right to left, tracking parenthesis
// depth, and returns the offset of the left-most comma seen at depth 0 (or
// -1 if none). Scanning back-to-front while continually overwriting the
// answer as each depth-0 comma is found is equivalent to "the first
// top-level comma reading left to right" — which is what correctly
// separates a short, rarely-parenthesized Effect field from a Text field
// that commonly contains its own unparenthesized commas and
// parenthesized-comma override tags.
func lastTopLevelComma(line []byte) int {
	depth := 0
	found := -1
	for i := len(line) - 1; i >= 0; i-- {
		switch line[i] {
		case ')':
			depth++
		case '(':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				found = i
			}
		}
	}
	return found
}

// splitRecordFields splits a Style or Event data line (the portion after
// the "Style:"/"Dialogue:" keyword, not including it) into exactly
// `count` field spans against a declared format of that length, applying
// spec 4.B's field-count-mismatch rules: pad with empty spans and emit
// InsufficientFields when short; join everything from the count-1'th
// field onward (respecting parenthesis depth when picking that joining
// comma) when long. base is the absolute byte offset of line[0] in the
// source, used to produce absolute spans.
func splitRecordFields(line []byte, base int, lineNo int, count int) ([]ast.Span, *ast.Issue) {
	if count <= 0 {
		return nil, nil
	}
	commas := topLevelCommas(line)
	actual := len(commas) + 1

	mk := func(start, end int) ast.Span {
		return ast.Span{Start: base + start, End: base + end, Line: lineNo, Column: start + 1}
	}

	if actual == count {
		return splitAtCommas(line, base, lineNo, commas), nil
	}

	if actual < count {
		fields := splitAtCommas(line, base, lineNo, commas)
		for len(fields) < count {
			fields = append(fields, mk(len(line), len(line)))
		}
		issue := &ast.Issue{
			Severity: ast.Warning,
			Kind:     ast.InsufficientFields,
			Message:  "line has fewer fields than the declared format",
			Span:     mk(0, len(line)),
		}
		return fields, issue
	}

	// actual > count: the first count-2 commas delimit ordinary scalar
	// fields; everything from there to the end of the line is the
	// combined (second-to-last field, last field) pair, which we split on
	// exactly one more comma chosen by parenthesis depth.
	fixedCommas := commas
	if count-2 < len(fixedCommas) {
		fixedCommas = fixedCommas[:count-2]
	}
	fields := make([]ast.Span, 0, count)
	prev := 0
	for _, c := range fixedCommas {
		fields = append(fields, mk(prev, c))
		prev = c + 1
	}
	remainder := line[prev:]
	sep := lastTopLevelComma(remainder)
	if sep < 0 {
		// No further delimiter found (should not happen when actual >
		// count, but fall back to treating the whole remainder as the
		// final field rather than panicking on a malformed line).
		fields = append(fields, mk(prev, len(line)))
		for len(fields) < count {
			fields = append(fields, mk(len(line), len(line)))
		}
		return fields, nil
	}
	fields = append(fields, mk(prev, prev+sep))
	fields = append(fields, mk(prev+sep+1, len(line)))
	return fields, nil
}

func splitAtCommas(line []byte, base, lineNo int, commas []int) []ast.Span {
	fields := make([]ast.Span, 0, len(commas)+1)
	prev := 0
	for _, c := range commas {
		fields = append(fields, ast.Span{Start: base + prev, End: base + c, Line: lineNo, Column: prev + 1})
		prev = c + 1
	}
	fields = append(fields, ast.Span{Start: base + prev, End: base + len(line), Line: lineNo, Column: prev + 1})
	return fields
}
