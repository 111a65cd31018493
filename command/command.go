// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package command implements the structured edit layer: every mutation to
// a [script.Document] flows through a Command that reports what it
// touched and, for undoable commands, how to invert itself. [History]
// keeps the bounded undo/redo stack built from those inverses.
package command

import (
	"bytes"

	"github.com/asslib/ass/ast"
	"github.com/asslib/ass/script"
)

// Range is a half-open byte range into a Document's source.
type Range struct {
	Start, End int
}

// Result reports what a Command did, per spec 4.F's
// "CommandResult { success, modified_range, new_cursor, message,
// content_changed }".
type Result struct {
	Success        bool
	ModifiedRange  Range
	NewCursor      int
	Message        string
	ContentChanged bool
}

// Command is the unit of structured edit. Execute applies the command to
// doc and reports the outcome.
type Command interface {
	Execute(doc *script.Document) (Result, error)
}

// Undoable is a Command that, once Execute has run, can produce its own
// inverse from the state it captured during execution.
type Undoable interface {
	Command
	Invert() Command
}

// lineRange extends a Record/KV span to include its trailing line
// terminator (\r\n, \r, or \n, whichever is present), so deleting it
// removes the whole line rather than leaving a blank one behind.
func lineRange(source []byte, span ast.Span) Range {
	end := span.End
	if end < len(source) && source[end] == '\r' {
		end++
	}
	if end < len(source) && source[end] == '\n' {
		end++
	}
	return Range{Start: span.Start, End: end}
}

func fieldSpan(record ast.Record, format *ast.FormatTable, name string) (ast.Span, bool) {
	return record.FieldSpan(format, name)
}

func sourceSlice(source []byte, r Range) string {
	if r.Start < 0 || r.End > len(source) || r.Start > r.End {
		return ""
	}
	return string(bytes.Clone(source[r.Start:r.End]))
}

// Batch runs a fixed sequence of Undoable commands as one undo-stack
// entry, in order: exactly what Style/Event/Tag commands that touch more
// than one byte range (per-field edits, multi-event renames, paired tag
// insertion) need, without each of them re-deriving its own inverse
// replay logic.
type Batch struct {
	Cmds []Undoable
}

func (b *Batch) Execute(doc *script.Document) (Result, error) {
	var merged Result
	merged.Success = true
	for i, c := range b.Cmds {
		res, err := c.Execute(doc)
		if err != nil {
			return res, err
		}
		if i == 0 || res.ModifiedRange.Start < merged.ModifiedRange.Start {
			merged.ModifiedRange.Start = res.ModifiedRange.Start
		}
		if res.ModifiedRange.End > merged.ModifiedRange.End {
			merged.ModifiedRange.End = res.ModifiedRange.End
		}
		merged.NewCursor = res.NewCursor
		merged.ContentChanged = merged.ContentChanged || res.ContentChanged
	}
	return merged, nil
}

// Invert returns a Batch running each command's inverse in reverse order,
// so later edits (whose offsets may depend on earlier ones having already
// happened) are undone before the edits they depended on.
func (b *Batch) Invert() Command {
	inv := make([]Undoable, len(b.Cmds))
	for i, c := range b.Cmds {
		inv[len(b.Cmds)-1-i] = c.Invert().(Undoable)
	}
	return &Batch{Cmds: inv}
}
