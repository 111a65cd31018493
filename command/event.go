// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"strings"

	"github.com/asslib/ass/asserr"
	"github.com/asslib/ass/ast"
	"github.com/asslib/ass/script"
)

func eventAt(doc *script.Document, index int) (*ast.EventsSection, ast.Event, error) {
	events := doc.Script().Events()
	if events == nil {
		return nil, ast.Event{}, asserr.New(asserr.SectionNotFound, "document has no Events section")
	}
	if index < 0 || index >= len(events.Events) {
		return nil, ast.Event{}, asserr.New(asserr.IndexOutOfBounds, "event index %d out of bounds (%d events)", index, len(events.Events))
	}
	return events, events.Events[index], nil
}

// EventTimingAdjust shifts the Start and/or End fields of the event at
// Index by the given centisecond offsets.
type EventTimingAdjust struct {
	Index         int
	StartOffsetCs int
	EndOffsetCs   int

	batch *Batch
}

func (c *EventTimingAdjust) Execute(doc *script.Document) (Result, error) {
	events, ev, err := eventAt(doc, c.Index)
	if err != nil {
		return Result{}, err
	}
	startSpan, _ := fieldSpan(ev.Record, events.Format, "Start")
	endSpan, _ := fieldSpan(ev.Record, events.Format, "End")
	batch := &Batch{}
	var merged Result
	merged.Success = true
	apply := func(span ast.Span, offsetCs int) error {
		if offsetCs == 0 {
			return nil
		}
		cur, ok := ast.ParseTimeCs(string(span.Text(doc.Source())))
		if !ok {
			return asserr.New(asserr.CommandFailed, "malformed time field")
		}
		next := cur + offsetCs
		if next < 0 {
			next = 0
		}
		r := &Replace{Start: span.Start, End: span.End, New: ast.FormatTimeCs(next)}
		res, err := r.Execute(doc)
		if err != nil {
			return err
		}
		batch.Cmds = append(batch.Cmds, r)
		if merged.ModifiedRange.Start == 0 && merged.ModifiedRange.End == 0 {
			merged.ModifiedRange = res.ModifiedRange
		}
		merged.ContentChanged = true
		// Re-fetch the End span since editing Start may have shifted it.
		return nil
	}
	if err := apply(startSpan, c.StartOffsetCs); err != nil {
		return Result{}, err
	}
	events, ev, err = eventAt(doc, c.Index)
	if err != nil {
		return Result{}, err
	}
	endSpan, _ = fieldSpan(ev.Record, events.Format, "End")
	if err := apply(endSpan, c.EndOffsetCs); err != nil {
		return Result{}, err
	}
	c.batch = batch
	return merged, nil
}

// Invert restores the event's original Start/End fields.
func (c *EventTimingAdjust) Invert() Command { return c.batch.Invert() }

// EventToggleType flips the event at Index between Dialogue and Comment
// (the two line types the original's "toggle" targets).
type EventToggleType struct {
	Index int

	at       int
	oldToken string
}

func (c *EventToggleType) Execute(doc *script.Document) (Result, error) {
	_, ev, err := eventAt(doc, c.Index)
	if err != nil {
		return Result{}, err
	}
	next := ast.Dialogue
	if ev.Type == ast.Dialogue {
		next = ast.Comment
	}
	lineStart := ev.Record.Span.Start
	colon := strings.IndexByte(string(doc.Source()[lineStart:ev.Record.Span.End]), ':')
	if colon < 0 {
		return Result{}, asserr.New(asserr.CommandFailed, "event line has no type keyword")
	}
	c.at, c.oldToken = lineStart, ev.Type.String()
	if err := doc.ReplaceRange(lineStart, lineStart+colon, next.String()); err != nil {
		return Result{}, err
	}
	return Result{Success: true, ModifiedRange: Range{Start: c.at, End: c.at + len(next.String())}, ContentChanged: true}, nil
}

// Invert flips the event's type keyword back.
func (c *EventToggleType) Invert() Command {
	return &replaceToken{at: c.at, old: c.oldToken}
}

// replaceToken is EventToggleType's inverse: it is only ever Executed (by
// [History.Undo]), never itself inverted, so it need not implement
// Undoable.
type replaceToken struct {
	at  int
	old string
}

func (c *replaceToken) Execute(doc *script.Document) (Result, error) {
	events := doc.Script().Events()
	if events == nil {
		return Result{}, asserr.New(asserr.SectionNotFound, "document has no Events section")
	}
	var end int
	for _, ev := range events.Events {
		if ev.Record.Span.Start == c.at {
			colon := strings.IndexByte(string(doc.Source()[c.at:ev.Record.Span.End]), ':')
			end = c.at + colon
			break
		}
	}
	if err := doc.ReplaceRange(c.at, end, c.old); err != nil {
		return Result{}, err
	}
	return Result{Success: true, ModifiedRange: Range{Start: c.at, End: c.at + len(c.old)}, ContentChanged: true}, nil
}

// EventEffectMode is the operation EventEffect performs on an event's
// Effect field.
type EventEffectMode int

const (
	EffectSet EventEffectMode = iota
	EffectClear
	EffectAppend
	EffectPrepend
)

// EventEffect mutates the Effect field of the event at Index.
type EventEffect struct {
	Index int
	Mode  EventEffectMode
	Value string

	span ast.Span
	old  string
}

func (c *EventEffect) Execute(doc *script.Document) (Result, error) {
	events, ev, err := eventAt(doc, c.Index)
	if err != nil {
		return Result{}, err
	}
	span, ok := fieldSpan(ev.Record, events.Format, "Effect")
	if !ok {
		return Result{}, asserr.New(asserr.CommandFailed, "event has no Effect field")
	}
	c.span = span
	c.old = string(span.Text(doc.Source()))
	var next string
	switch c.Mode {
	case EffectSet:
		next = c.Value
	case EffectClear:
		next = ""
	case EffectAppend:
		next = c.old + c.Value
	case EffectPrepend:
		next = c.Value + c.old
	}
	if err := doc.ReplaceRange(span.Start, span.End, next); err != nil {
		return Result{}, err
	}
	return Result{Success: true, ModifiedRange: Range{Start: span.Start, End: span.Start + len(next)}, ContentChanged: true}, nil
}

// Invert restores the event's original Effect field text.
func (c *EventEffect) Invert() Command {
	return &EventEffect{Index: c.Index, Mode: EffectSet, Value: c.old}
}

// EventSplit splits the event at Index into two consecutive events at
// AtCs (an absolute centisecond time strictly between its Start and End),
// duplicating its other fields onto both halves.
type EventSplit struct {
	Index int
	AtCs  int

	insertedAt  int
	insertedLen int
	oldEndSpan  ast.Span
	oldEndText  string
	newEndLen   int
}

func (c *EventSplit) Execute(doc *script.Document) (Result, error) {
	events, ev, err := eventAt(doc, c.Index)
	if err != nil {
		return Result{}, err
	}
	startSpan, _ := fieldSpan(ev.Record, events.Format, "Start")
	endSpan, _ := fieldSpan(ev.Record, events.Format, "End")
	startCs, ok1 := ast.ParseTimeCs(string(startSpan.Text(doc.Source())))
	endCs, ok2 := ast.ParseTimeCs(string(endSpan.Text(doc.Source())))
	if !ok1 || !ok2 {
		return Result{}, asserr.New(asserr.CommandFailed, "malformed time field")
	}
	if c.AtCs <= startCs || c.AtCs >= endCs {
		return Result{}, asserr.New(asserr.CommandFailed, "split time %d outside event bounds [%d,%d)", c.AtCs, startCs, endCs)
	}
	fields := make([]string, len(ev.Fields))
	for i, f := range ev.Fields {
		fields[i] = string(f.Text(doc.Source()))
	}
	startIdx, _ := events.Format.IndexOf("Start")
	endIdx, _ := events.Format.IndexOf("End")

	// Shrink the original event's End to the split point.
	c.oldEndSpan, c.oldEndText = endSpan, string(endSpan.Text(doc.Source()))
	newEndText := ast.FormatTimeCs(c.AtCs)
	c.newEndLen = len(newEndText)
	if err := doc.ReplaceRange(endSpan.Start, endSpan.End, newEndText); err != nil {
		return Result{}, err
	}

	// Build the second half starting at the split point.
	secondFields := append([]string(nil), fields...)
	secondFields[startIdx] = ast.FormatTimeCs(c.AtCs)
	secondFields[endIdx] = ast.FormatTimeCs(endCs)
	line := ev.Type.String() + ": " + strings.Join(secondFields, ",") + "\n"

	eventsNow := doc.Script().Events()
	evNow := eventsNow.Events[c.Index]
	insertAt := lineRange(doc.Source(), evNow.Record.Span).End
	if err := doc.ReplaceRange(insertAt, insertAt, line); err != nil {
		return Result{}, err
	}
	c.insertedAt, c.insertedLen = insertAt, len(line)
	return Result{Success: true, ModifiedRange: Range{Start: startSpan.Start, End: insertAt + len(line)}, ContentChanged: true}, nil
}

// Invert removes the second half EventSplit created and restores the
// first half's original End field.
func (c *EventSplit) Invert() Command {
	return &Batch{Cmds: []Undoable{
		&Delete{Start: c.insertedAt, End: c.insertedAt + c.insertedLen},
		&Replace{Start: c.oldEndSpan.Start, End: c.oldEndSpan.Start + c.newEndLen, New: c.oldEndText},
	}}
}

// EventMerge merges two consecutive events (FirstIndex, FirstIndex+1) into
// one spanning FirstIndex's Start and the second event's End, concatenating
// their Text fields with a line break.
type EventMerge struct {
	FirstIndex int

	firstLine  Range
	secondLine Range
	firstText  string
	secondText string
}

func (c *EventMerge) Execute(doc *script.Document) (Result, error) {
	events := doc.Script().Events()
	if events == nil {
		return Result{}, asserr.New(asserr.SectionNotFound, "document has no Events section")
	}
	if c.FirstIndex < 0 || c.FirstIndex+1 >= len(events.Events) {
		return Result{}, asserr.New(asserr.IndexOutOfBounds, "merge requires two consecutive events at index %d", c.FirstIndex)
	}
	first := events.Events[c.FirstIndex]
	second := events.Events[c.FirstIndex+1]

	endIdx, _ := events.Format.IndexOf("End")
	textIdx, _ := events.Format.IndexOf("Text")
	fields := make([]string, len(first.Fields))
	for i, f := range first.Fields {
		fields[i] = string(f.Text(doc.Source()))
	}
	secondEndText := string(second.Fields[endIdx].Text(doc.Source()))
	secondText := string(second.Fields[textIdx].Text(doc.Source()))
	fields[endIdx] = secondEndText
	fields[textIdx] = fields[textIdx] + "\\N" + secondText

	c.firstLine = lineRange(doc.Source(), first.Record.Span)
	c.secondLine = lineRange(doc.Source(), second.Record.Span)
	c.firstText = sourceSlice(doc.Source(), c.firstLine)
	c.secondText = sourceSlice(doc.Source(), c.secondLine)

	mergedLine := first.Type.String() + ": " + strings.Join(fields, ",") + "\n"
	// Delete the second line first so the first line's offsets stay valid.
	if err := doc.ReplaceRange(c.secondLine.Start, c.secondLine.End, ""); err != nil {
		return Result{}, err
	}
	if err := doc.ReplaceRange(c.firstLine.Start, c.firstLine.End, mergedLine); err != nil {
		return Result{}, err
	}
	return Result{Success: true, ModifiedRange: Range{Start: c.firstLine.Start, End: c.firstLine.Start + len(mergedLine)}, ContentChanged: true}, nil
}

// Invert restores both original event lines.
func (c *EventMerge) Invert() Command {
	return &replaceMergedPair{
		at:         c.firstLine.Start,
		firstText:  c.firstText,
		secondText: c.secondText,
	}
}

// replaceMergedPair is EventMerge's inverse: it is only ever Executed (by
// [History.Undo]) and never itself inverted — [History.Redo] re-runs the
// original EventMerge rather than inverting this — so it need not
// implement Undoable.
type replaceMergedPair struct {
	at                    int
	firstText, secondText string
}

func (c *replaceMergedPair) Execute(doc *script.Document) (Result, error) {
	events := doc.Script().Events()
	if events == nil {
		return Result{}, asserr.New(asserr.SectionNotFound, "document has no Events section")
	}
	var ev ast.Event
	found := false
	for _, e := range events.Events {
		if e.Record.Span.Start == c.at {
			ev, found = e, true
			break
		}
	}
	if !found {
		return Result{}, asserr.New(asserr.CommandFailed, "no event at offset %d to un-merge", c.at)
	}
	mergedRange := lineRange(doc.Source(), ev.Record.Span)
	if err := doc.ReplaceRange(mergedRange.Start, mergedRange.End, c.firstText+c.secondText); err != nil {
		return Result{}, err
	}
	return Result{Success: true, ModifiedRange: Range{Start: c.at, End: c.at + len(c.firstText) + len(c.secondText)}, ContentChanged: true}, nil
}
