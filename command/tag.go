// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"strings"

	"github.com/asslib/ass/asserr"
	"github.com/asslib/ass/ast"
	"github.com/asslib/ass/script"
	"github.com/asslib/ass/tags"
)

// block is one `{...}` override block found in an event's Text field,
// relative to the start of that field.
type block struct {
	start, end int // end is exclusive, braces included
}

// findBlocks locates every `{...}` block in text. ASS override blocks do
// not nest, so the first `}` after a `{` always closes it; an unterminated
// `{` (no matching `}`) is not a block and is left as literal text.
func findBlocks(text string) []block {
	var out []block
	i := 0
	for i < len(text) {
		open := strings.IndexByte(text[i:], '{')
		if open < 0 {
			break
		}
		open += i
		close := strings.IndexByte(text[open:], '}')
		if close < 0 {
			break
		}
		close += open
		out = append(out, block{start: open, end: close + 1})
		i = close + 1
	}
	return out
}

func eventTextSpan(doc *script.Document, index int) (*ast.EventsSection, ast.Event, ast.Span, error) {
	events, ev, err := eventAt(doc, index)
	if err != nil {
		return nil, ast.Event{}, ast.Span{}, err
	}
	span, ok := fieldSpan(ev.Record, events.Format, "Text")
	if !ok {
		return nil, ast.Event{}, ast.Span{}, asserr.New(asserr.CommandFailed, "event has no Text field")
	}
	return events, ev, span, nil
}

// TagInsert inserts a tag string at byte offset At within the event's
// Text field, auto-wrapping it in `{}` unless InsertRaw is set (for
// callers building a block body piecewise that will wrap it themselves).
type TagInsert struct {
	EventIndex int
	At         int
	Tag        string
	InsertRaw  bool

	insertedAt  int
	insertedLen int
}

func (c *TagInsert) Execute(doc *script.Document) (Result, error) {
	_, _, span, err := eventTextSpan(doc, c.EventIndex)
	if err != nil {
		return Result{}, err
	}
	if c.At < 0 || c.At > span.Len() {
		return Result{}, asserr.New(asserr.PositionOutOfBounds, "offset %d beyond text field of length %d", c.At, span.Len())
	}
	text := c.Tag
	if !c.InsertRaw {
		text = "{" + c.Tag + "}"
	}
	at := span.Start + c.At
	if err := doc.ReplaceRange(at, at, text); err != nil {
		return Result{}, err
	}
	c.insertedAt, c.insertedLen = at, len(text)
	return Result{Success: true, ModifiedRange: Range{Start: at, End: at + len(text)}, ContentChanged: true}, nil
}

// Invert removes exactly the bytes TagInsert added.
func (c *TagInsert) Invert() Command { return &Delete{Start: c.insertedAt, End: c.insertedAt + c.insertedLen} }

// TagWrap inserts OpenTag (wrapped in `{}`) before offset Start and
// CloseTag (wrapped in `{}`) at offset End, both within the event's Text
// field — e.g. wrapping a selection in `{\b1}...{\b0}`.
type TagWrap struct {
	EventIndex     int
	Start, End     int
	OpenTag        string
	CloseTag       string

	batch *Batch
}

func (c *TagWrap) Execute(doc *script.Document) (Result, error) {
	_, _, span, err := eventTextSpan(doc, c.EventIndex)
	if err != nil {
		return Result{}, err
	}
	if c.Start < 0 || c.End < c.Start || c.End > span.Len() {
		return Result{}, asserr.New(asserr.InvalidRange, "range [%d,%d) outside text field of length %d", c.Start, c.End, span.Len())
	}
	closeIns := &Insert{At: span.Start + c.End, Text: "{" + c.CloseTag + "}"}
	if _, err := closeIns.Execute(doc); err != nil {
		return Result{}, err
	}
	openIns := &Insert{At: span.Start + c.Start, Text: "{" + c.OpenTag + "}"}
	if _, err := openIns.Execute(doc); err != nil {
		return Result{}, err
	}
	c.batch = &Batch{Cmds: []Undoable{closeIns, openIns}}
	return Result{
		Success:        true,
		ModifiedRange:  Range{Start: span.Start + c.Start, End: span.Start + c.End + len(openIns.Text) + len(closeIns.Text)},
		ContentChanged: true,
	}, nil
}

// Invert removes both tags TagWrap inserted.
func (c *TagWrap) Invert() Command { return c.batch.Invert() }

// TagRemove deletes tags from every override block in the event's Text
// field: if All, every block is removed outright; otherwise only tags
// named Pattern are dropped from each block (the block itself is removed
// if that empties it).
type TagRemove struct {
	EventIndex int
	Pattern    string
	All        bool

	batch *Batch
}

func (c *TagRemove) Execute(doc *script.Document) (Result, error) {
	return runBlockRewrite(doc, c.EventIndex, &c.batch, func(_ int, body string) (string, bool) {
		if c.All {
			return "", true
		}
		parsed, _ := tags.ParseBlock(body)
		var kept strings.Builder
		changed := false
		for _, t := range parsed {
			if t.Name == c.Pattern {
				changed = true
				continue
			}
			kept.WriteString(t.Raw)
		}
		return kept.String(), changed
	})
}

// Invert restores every block TagRemove touched to its original text.
func (c *TagRemove) Invert() Command { return c.batch.Invert() }

// TagReplace rewrites every occurrence of tags named Pattern in the
// event's override blocks, replacing each matched tag's raw text with
// Replacement verbatim (Replacement is itself a raw tag string, e.g.
// `\b0`).
type TagReplace struct {
	EventIndex  int
	Pattern     string
	Replacement string

	batch *Batch
}

func (c *TagReplace) Execute(doc *script.Document) (Result, error) {
	return runBlockRewrite(doc, c.EventIndex, &c.batch, func(_ int, body string) (string, bool) {
		parsed, _ := tags.ParseBlock(body)
		var out strings.Builder
		changed := false
		for _, t := range parsed {
			if t.Name == c.Pattern {
				out.WriteString(c.Replacement)
				changed = true
				continue
			}
			out.WriteString(t.Raw)
		}
		return out.String(), changed
	})
}

// Invert restores every block TagReplace touched to its original text.
func (c *TagReplace) Invert() Command { return c.batch.Invert() }

// runBlockRewrite is the shared engine behind TagRemove and TagReplace
// (the karaoke commands run their own block loops): it locates every
// `{...}` block in the event's
// Text field, lets rewrite decide the new block body (and whether
// anything changed) given the block's left-to-right index, and replaces
// blocks right-to-left so earlier blocks' offsets stay valid. An empty
// new body removes the block (braces included) rather than leaving `{}`.
func runBlockRewrite(doc *script.Document, eventIndex int, batchOut **Batch, rewrite func(blockIndex int, body string) (newBody string, changed bool)) (Result, error) {
	_, _, span, err := eventTextSpan(doc, eventIndex)
	if err != nil {
		return Result{}, err
	}
	text := string(span.Text(doc.Source()))
	blocks := findBlocks(text)
	batch := &Batch{}
	var merged Result
	merged.Success = true
	first := true
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		body := text[b.start+1 : b.end-1]
		newBody, changed := rewrite(i, body)
		if !changed {
			continue
		}
		absStart, absEnd := span.Start+b.start, span.Start+b.end
		newText := "{" + newBody + "}"
		if newBody == "" {
			newText = ""
		}
		r := &Replace{Start: absStart, End: absEnd, New: newText}
		res, err := r.Execute(doc)
		if err != nil {
			return Result{}, err
		}
		batch.Cmds = append(batch.Cmds, r)
		if first || res.ModifiedRange.Start < merged.ModifiedRange.Start {
			merged.ModifiedRange.Start = res.ModifiedRange.Start
		}
		if res.ModifiedRange.End > merged.ModifiedRange.End {
			merged.ModifiedRange.End = res.ModifiedRange.End
		}
		first = false
		merged.ContentChanged = true
	}
	*batchOut = batch
	if len(batch.Cmds) == 0 {
		merged.Message = "no matching tags"
	}
	return merged, nil
}

// TagParse returns the structured tags of every override block in the
// event's Text field, in order. It is read-only and not undoable.
type TagParse struct {
	EventIndex int
}

// Parse runs the parse and returns the blocks' tags plus any lexing
// issues, without touching the document.
func (c TagParse) Parse(doc *script.Document) ([][]tags.Tag, []tags.Issue, error) {
	_, _, span, err := eventTextSpan(doc, c.EventIndex)
	if err != nil {
		return nil, nil, err
	}
	text := string(span.Text(doc.Source()))
	var allTags [][]tags.Tag
	var allIssues []tags.Issue
	for _, b := range findBlocks(text) {
		body := text[b.start+1 : b.end-1]
		parsed, issues := tags.ParseBlock(body)
		allTags = append(allTags, parsed)
		allIssues = append(allIssues, issues...)
	}
	return allTags, allIssues, nil
}
