// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package script provides the mutable façade over a parsed [ast.Script]: an
// owned source buffer, a structural mutation API, and an optional change
// tracker. No [ast.Span] returned by a Document's current Script outlives
// the next mutation — every mutation reparses the buffer it owns.
package script

import (
	"bytes"
	"strings"

	"github.com/asslib/ass/asserr"
	"github.com/asslib/ass/ast"
	"github.com/asslib/ass/extmgr"
	"github.com/asslib/ass/parse"
	"github.com/asslib/ass/token"
)

// Option configures a new Document.
type Option func(*options)

type options struct {
	extensions   *extmgr.Manager
	trackChanges bool
}

// WithExtensions registers a section-extension manager so unknown sections
// active in it are retained as generic sections rather than dropped.
func WithExtensions(m *extmgr.Manager) Option {
	return func(o *options) { o.extensions = m }
}

// WithChangeTracking enables the Document's change log.
func WithChangeTracking() Option {
	return func(o *options) { o.trackChanges = true }
}

// Document owns a mutable copy of an ASS source buffer and keeps a parsed
// [ast.Script] derived from it in sync across edits.
type Document struct {
	source  []byte
	current *ast.Script
	tracker *ChangeTracker
	opts    options
}

// New parses source and returns a Document that owns a private copy of it.
func New(source []byte, opts ...Option) *Document {
	d := &Document{source: append([]byte(nil), source...)}
	for _, opt := range opts {
		opt(&d.opts)
	}
	if d.opts.trackChanges {
		d.tracker = &ChangeTracker{}
	}
	d.reparse()
	return d
}

func (d *Document) reparse() {
	var popts []parse.Option
	if d.opts.extensions != nil {
		popts = append(popts, parse.WithExtensions(d.opts.extensions))
	}
	d.current = parse.Parse(d.source, popts...)
}

// Script returns the Document's current parsed state. The returned value
// (and every span it transitively holds) is only valid until the next
// mutating call on this Document.
func (d *Document) Script() *ast.Script { return d.current }

// Source returns the Document's current source buffer. Callers must not
// modify the returned slice.
func (d *Document) Source() []byte { return d.source }

// Tracker returns the Document's change tracker, or nil if change tracking
// was not requested via WithChangeTracking.
func (d *Document) Tracker() *ChangeTracker { return d.tracker }

func (d *Document) splice(offset, deleteLen int, insert string) {
	next := make([]byte, 0, len(d.source)-deleteLen+len(insert))
	next = append(next, d.source[:offset]...)
	next = append(next, insert...)
	next = append(next, d.source[offset+deleteLen:]...)
	d.source = next
	d.reparse()
}

func (d *Document) boundaryFor(sec ast.Section) (ast.Boundary, bool) {
	for _, b := range d.current.SectionBoundaries() {
		if b.Section == sec {
			return b, true
		}
	}
	return ast.Boundary{}, false
}

func findLine(source []byte, offset int) (token.Line, bool) {
	lines := token.Lines(source)
	for _, l := range lines {
		if offset >= l.Content.Start && offset <= l.Content.End {
			return l, true
		}
	}
	return token.Line{}, false
}

// UpdateLineAtOffset replaces the entire line containing offset with
// newLine (excluding the line terminator, which is preserved).
func (d *Document) UpdateLineAtOffset(offset int, newLine string) error {
	if offset < 0 || offset > len(d.source) {
		return asserr.New(asserr.PositionOutOfBounds, "offset %d beyond document of length %d", offset, len(d.source))
	}
	line, ok := findLine(d.source, offset)
	if !ok {
		return asserr.New(asserr.PositionOutOfBounds, "no line at offset %d", offset)
	}
	old := string(line.Content.Text(d.source))
	d.splice(line.Content.Start, line.Content.Len(), newLine)
	d.tracker.record(Change{Kind: Modified, Offset: line.Content.Start, Line: line.Number, Old: old, New: newLine})
	return nil
}

// ReplaceRange replaces the byte range [start,end) of the source with text,
// validating that the range falls within the current document, and reparses.
// It is the primitive the command package's Text commands (Insert, Delete,
// Replace) build on: Insert is ReplaceRange(at, at, text), Delete is
// ReplaceRange(start, end, "").
func (d *Document) ReplaceRange(start, end int, text string) error {
	if start < 0 || end < start || end > len(d.source) {
		return asserr.NewInvalidRange(start, end, len(d.source))
	}
	old := string(d.source[start:end])
	d.splice(start, end-start, text)
	d.tracker.record(Change{Kind: Modified, Offset: start, Old: old, New: text})
	return nil
}

// AddStyle appends a "Style: <fields>" line to the end of the Styles
// section's body.
func (d *Document) AddStyle(fields string) error {
	styles := d.current.Styles()
	if styles == nil {
		return asserr.New(asserr.SectionNotFound, "document has no Styles section")
	}
	b, ok := d.boundaryFor(styles)
	if !ok {
		return asserr.New(asserr.SectionNotFound, "document has no Styles section")
	}
	line := "Style: " + fields + "\n"
	d.splice(b.End, 0, line)
	d.tracker.record(Change{Kind: Added, Offset: b.End, Content: line})
	return nil
}

// AddEvent appends an event line of the given type to the end of the
// Events section's body.
func (d *Document) AddEvent(eventType ast.EventType, fields string) error {
	events := d.current.Events()
	if events == nil {
		return asserr.New(asserr.SectionNotFound, "document has no Events section")
	}
	b, ok := d.boundaryFor(events)
	if !ok {
		return asserr.New(asserr.SectionNotFound, "document has no Events section")
	}
	line := eventType.String() + ": " + fields + "\n"
	d.splice(b.End, 0, line)
	d.tracker.record(Change{Kind: Added, Offset: b.End, Content: line})
	return nil
}

// RemoveSection deletes the first section of the given type, header and
// body included.
func (d *Document) RemoveSection(t ast.SectionType) error {
	boundaries := d.current.SectionBoundaries()
	idx := -1
	for i, b := range boundaries {
		if b.Section.Type() == t {
			idx = i
			break
		}
	}
	if idx < 0 {
		return asserr.New(asserr.SectionNotFound, "no section of type %s", t)
	}
	b := boundaries[idx]
	d.splice(b.Start, b.End-b.Start, "")
	d.tracker.record(Change{Kind: SectionRemoved, SectionType: t, Index: idx})
	return nil
}

func (d *Document) findFormatLine(b ast.Boundary) (token.Line, bool) {
	for _, l := range token.Lines(d.source) {
		if l.Content.Start < b.Start || l.Content.Start >= b.End {
			continue
		}
		content := bytes.TrimSpace(l.Content.Text(d.source))
		colon := bytes.IndexByte(content, ':')
		if colon < 0 {
			continue
		}
		if bytes.EqualFold(bytes.TrimSpace(content[:colon]), []byte("Format")) {
			return l, true
		}
	}
	return token.Line{}, false
}

func (d *Document) setFormat(sec ast.Section, missingKind asserr.Kind, names []string) error {
	b, ok := d.boundaryFor(sec)
	if !ok {
		return asserr.New(missingKind, "section not found")
	}
	newLine := "Format: " + strings.Join(names, ", ")
	if line, ok := d.findFormatLine(b); ok {
		old := string(line.Content.Text(d.source))
		d.splice(line.Content.Start, line.Content.Len(), newLine)
		d.tracker.record(Change{Kind: Modified, Offset: line.Content.Start, Line: line.Number, Old: old, New: newLine})
		return nil
	}
	d.splice(b.Start, 0, newLine+"\n")
	d.tracker.record(Change{Kind: Added, Offset: b.Start, Content: newLine})
	return nil
}

// SetStylesFormat rewrites (or, if absent, inserts) the Styles section's
// Format line.
func (d *Document) SetStylesFormat(names []string) error {
	styles := d.current.Styles()
	if styles == nil {
		return asserr.New(asserr.SectionNotFound, "document has no Styles section")
	}
	return d.setFormat(styles, asserr.SectionNotFound, names)
}

// SetEventsFormat rewrites (or, if absent, inserts) the Events section's
// Format line.
func (d *Document) SetEventsFormat(names []string) error {
	events := d.current.Events()
	if events == nil {
		return asserr.New(asserr.SectionNotFound, "document has no Events section")
	}
	return d.setFormat(events, asserr.SectionNotFound, names)
}

// Mutation is one step of an atomic batch; see Atomic.
type Mutation func(*Document) error

// Atomic applies every mutation to a private clone of the Document and
// only commits the clone's source, parsed script, and tracker entries back
// onto d if all of them succeed. On any failure d is left byte-for-byte
// unchanged and the returned error has kind [asserr.ValidationError].
func (d *Document) Atomic(mutations ...Mutation) error {
	clone := &Document{source: append([]byte(nil), d.source...), opts: d.opts}
	if d.tracker != nil {
		clone.tracker = &ChangeTracker{}
	}
	clone.reparse()

	for i, m := range mutations {
		if err := m(clone); err != nil {
			return asserr.Wrap(asserr.ValidationError, err, "atomic batch failed at step %d", i)
		}
	}

	d.source = clone.source
	d.current = clone.current
	if d.tracker != nil {
		d.tracker.entries = append(d.tracker.entries, clone.tracker.entries...)
	}
	return nil
}
