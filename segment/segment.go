// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package segment walks an event's Text field left-to-right, applying
// override tags as it goes, and emits a sequence of [Segment] values:
// maximal runs of plain text over which the resolved [tags.State] is
// constant. It is an explicit, restartable walk rather than the
// coroutine-style tag iteration some renderers use — every Segment
// carries its own State snapshot, so a caller can resume shaping from
// any point without replaying earlier tags.
package segment

import (
	"strings"

	"github.com/asslib/ass/tags"
)

// WrapStyle mirrors the Script Info "WrapStyle" header: it controls
// whether a literal `\n` in an event's Text field is a hard line break.
// `\N` is always a hard break regardless of WrapStyle.
type WrapStyle int

const (
	WrapSmart          WrapStyle = 0
	WrapEndOfLine      WrapStyle = 1
	WrapNone           WrapStyle = 2
	WrapSmartLowerWide WrapStyle = 3
)

// Segment is a maximal run of plain text with constant resolved tag
// state. Start and End are byte offsets into the original Text field.
// EndsLine is set when the text immediately following the segment was a
// hard line break (`\N`, or `\n` under [WrapNone]) rather than another
// override block or the end of the field.
type Segment struct {
	Text     string
	Start    int
	End      int
	Tags     tags.State
	EndsLine bool
}

// Walk segments text, starting from base (the style-resolved state
// before any override tag in text has applied) and using resolve to look
// up named styles for `\r[name]`. It returns the segments in order and
// every Issue the tag processor raised along the way.
func Walk(text string, base tags.State, resolve tags.StyleResolver, wrap WrapStyle) ([]Segment, []tags.Issue) {
	var segs []Segment
	var issues []tags.Issue
	state := base.Clone()

	i := 0
	segStart := 0
	var buf strings.Builder

	flush := func(endsLine bool) {
		if buf.Len() == 0 && !endsLine {
			return
		}
		segs = append(segs, Segment{
			Text:     buf.String(),
			Start:    segStart,
			End:      i,
			Tags:     state.Clone(),
			EndsLine: endsLine,
		})
		buf.Reset()
		segStart = i
	}

	for i < len(text) {
		if text[i] == '{' {
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				// Unterminated block: the rest of the text is literal.
				buf.WriteString(text[i:])
				i = len(text)
				break
			}
			end += i
			flush(false)
			body := text[i+1 : end]
			var tagIssues []tags.Issue
			state, tagIssues = tags.Process(state, body, resolve)
			issues = append(issues, tagIssues...)
			i = end + 1
			segStart = i
			continue
		}
		if strings.HasPrefix(text[i:], `\N`) {
			flush(true)
			i += 2
			continue
		}
		if wrap == WrapNone && strings.HasPrefix(text[i:], `\n`) {
			flush(true)
			i += 2
			continue
		}
		buf.WriteByte(text[i])
		i++
	}
	flush(false)
	return segs, issues
}

// Lines groups segs into logical lines, splitting immediately after every
// segment with EndsLine set. A trailing line with no closing break is
// still returned as the final group.
func Lines(segs []Segment) [][]Segment {
	var lines [][]Segment
	var cur []Segment
	for _, s := range segs {
		cur = append(cur, s)
		if s.EndsLine {
			lines = append(lines, cur)
			cur = nil
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}
