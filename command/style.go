// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"sort"
	"strings"

	"github.com/asslib/ass/asserr"
	"github.com/asslib/ass/ast"
	"github.com/asslib/ass/script"
)

func boundaryEnd(doc *script.Document, t ast.SectionType) (int, bool) {
	for _, b := range doc.Script().SectionBoundaries() {
		if b.Section.Type() == t {
			return b.End, true
		}
	}
	return 0, false
}

// StyleCreate appends a new "Style: <fields>" line. fields is the
// comma-joined field list in the order of the Styles section's current
// Format.
type StyleCreate struct {
	Fields string

	inserted Range
}

func (c *StyleCreate) Execute(doc *script.Document) (Result, error) {
	at, ok := boundaryEnd(doc, ast.StylesType)
	if !ok {
		return Result{}, asserr.New(asserr.SectionNotFound, "document has no Styles section")
	}
	line := "Style: " + c.Fields + "\n"
	if err := doc.AddStyle(c.Fields); err != nil {
		return Result{}, err
	}
	c.inserted = Range{Start: at, End: at + len(line)}
	return Result{Success: true, ModifiedRange: c.inserted, NewCursor: c.inserted.End, ContentChanged: true}, nil
}

// Invert removes the line StyleCreate just added.
func (c *StyleCreate) Invert() Command { return &Delete{Start: c.inserted.Start, End: c.inserted.End} }

// StyleDelete removes the style at Index (0-based, in document order).
type StyleDelete struct {
	Index int

	removedAt   int
	removedText string
}

func (c *StyleDelete) Execute(doc *script.Document) (Result, error) {
	styles := doc.Script().Styles()
	if styles == nil {
		return Result{}, asserr.New(asserr.SectionNotFound, "document has no Styles section")
	}
	if c.Index < 0 || c.Index >= len(styles.Styles) {
		return Result{}, asserr.New(asserr.IndexOutOfBounds, "style index %d out of bounds (%d styles)", c.Index, len(styles.Styles))
	}
	rec := styles.Styles[c.Index].Record
	r := lineRange(doc.Source(), rec.Span)
	c.removedText = sourceSlice(doc.Source(), r)
	c.removedAt = r.Start
	if err := doc.ReplaceRange(r.Start, r.End, ""); err != nil {
		return Result{}, err
	}
	return Result{Success: true, ModifiedRange: Range{Start: c.removedAt, End: c.removedAt}, NewCursor: c.removedAt, ContentChanged: true}, nil
}

// Invert reinserts the exact line StyleDelete removed.
func (c *StyleDelete) Invert() Command { return &Insert{At: c.removedAt, Text: c.removedText} }

// StyleClone duplicates the style at Index under NewName, appending the
// clone at the end of the Styles section.
type StyleClone struct {
	Index   int
	NewName string

	inserted Range
}

func (c *StyleClone) Execute(doc *script.Document) (Result, error) {
	styles := doc.Script().Styles()
	if styles == nil {
		return Result{}, asserr.New(asserr.SectionNotFound, "document has no Styles section")
	}
	if c.Index < 0 || c.Index >= len(styles.Styles) {
		return Result{}, asserr.New(asserr.IndexOutOfBounds, "style index %d out of bounds (%d styles)", c.Index, len(styles.Styles))
	}
	src := doc.Source()
	st := styles.Styles[c.Index]
	fields := make([]string, len(st.Fields))
	for i, f := range st.Fields {
		fields[i] = string(f.Text(src))
	}
	if nameIdx, ok := styles.Format.IndexOf("Name"); ok && nameIdx < len(fields) {
		fields[nameIdx] = c.NewName
	}
	at, _ := boundaryEnd(doc, ast.StylesType)
	joined := strings.Join(fields, ",")
	line := "Style: " + joined + "\n"
	if err := doc.AddStyle(joined); err != nil {
		return Result{}, err
	}
	c.inserted = Range{Start: at, End: at + len(line)}
	return Result{Success: true, ModifiedRange: c.inserted, NewCursor: c.inserted.End, ContentChanged: true}, nil
}

// Invert removes the cloned line.
func (c *StyleClone) Invert() Command { return &Delete{Start: c.inserted.Start, End: c.inserted.End} }

// StyleEdit applies per-field deltas to the style at Index. Fields maps
// field name (per the Styles section's Format) to its new raw value.
type StyleEdit struct {
	Index  int
	Fields map[string]string

	batch *Batch
}

func (c *StyleEdit) Execute(doc *script.Document) (Result, error) {
	names := make([]string, 0, len(c.Fields))
	for name := range c.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	batch := &Batch{}
	var merged Result
	merged.Success = true
	for i, name := range names {
		styles := doc.Script().Styles()
		if styles == nil {
			return Result{}, asserr.New(asserr.SectionNotFound, "document has no Styles section")
		}
		if c.Index < 0 || c.Index >= len(styles.Styles) {
			return Result{}, asserr.New(asserr.IndexOutOfBounds, "style index %d out of bounds (%d styles)", c.Index, len(styles.Styles))
		}
		rec := styles.Styles[c.Index].Record
		span, ok := fieldSpan(rec, styles.Format, name)
		if !ok {
			return Result{}, asserr.New(asserr.CommandFailed, "style has no field %q", name)
		}
		r := &Replace{Start: span.Start, End: span.End, New: c.Fields[name]}
		res, err := r.Execute(doc)
		if err != nil {
			return Result{}, err
		}
		batch.Cmds = append(batch.Cmds, r)
		if i == 0 || res.ModifiedRange.Start < merged.ModifiedRange.Start {
			merged.ModifiedRange.Start = res.ModifiedRange.Start
		}
		if res.ModifiedRange.End > merged.ModifiedRange.End {
			merged.ModifiedRange.End = res.ModifiedRange.End
		}
		merged.ContentChanged = true
	}
	c.batch = batch
	return merged, nil
}

// Invert restores every field StyleEdit overwrote to its captured value.
func (c *StyleEdit) Invert() Command { return c.batch.Invert() }

// StyleApply rewrites the Style field of every event whose current style
// name matches From (or every event, if From == ""), optionally narrowed
// to events whose Text contains TextFilter.
type StyleApply struct {
	From       string
	To         string
	TextFilter string

	batch *Batch
}

func (c *StyleApply) Execute(doc *script.Document) (Result, error) {
	events := doc.Script().Events()
	if events == nil {
		return Result{}, asserr.New(asserr.SectionNotFound, "document has no Events section")
	}
	var targets []int
	for i, ev := range events.Events {
		if c.From != "" && ev.StyleName(doc.Source(), events.Format) != c.From {
			continue
		}
		if c.TextFilter != "" && !strings.Contains(ev.Text(doc.Source(), events.Format), c.TextFilter) {
			continue
		}
		targets = append(targets, i)
	}
	if len(targets) == 0 {
		return Result{Success: true, Message: "no matching events"}, nil
	}
	batch := &Batch{}
	var merged Result
	merged.Success = true
	first := true
	// Apply from the last event backward so earlier targets' offsets are
	// unaffected by edits made to later ones.
	for i := len(targets) - 1; i >= 0; i-- {
		events := doc.Script().Events()
		ev := events.Events[targets[i]]
		span, ok := fieldSpan(ev.Record, events.Format, "Style")
		if !ok {
			continue
		}
		r := &Replace{Start: span.Start, End: span.End, New: c.To}
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
	c.batch = batch
	return merged, nil
}

// Invert restores the original Style field text of every event StyleApply
// touched.
func (c *StyleApply) Invert() Command { return c.batch.Invert() }
