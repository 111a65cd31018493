// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import "github.com/asslib/ass/script"

// Insert inserts Text at a byte offset.
type Insert struct {
	At   int
	Text string
}

func (c *Insert) Execute(doc *script.Document) (Result, error) {
	if err := doc.ReplaceRange(c.At, c.At, c.Text); err != nil {
		return Result{}, err
	}
	return Result{
		Success:        true,
		ModifiedRange:  Range{Start: c.At, End: c.At + len(c.Text)},
		NewCursor:      c.At + len(c.Text),
		ContentChanged: true,
	}, nil
}

// Invert undoes an Insert by deleting exactly the bytes it inserted.
func (c *Insert) Invert() Command {
	return &Delete{Start: c.At, End: c.At + len(c.Text)}
}

// Delete removes the byte range [Start,End).
type Delete struct {
	Start, End int
	removed    string
}

func (c *Delete) Execute(doc *script.Document) (Result, error) {
	c.removed = sourceSlice(doc.Source(), Range{Start: c.Start, End: c.End})
	if err := doc.ReplaceRange(c.Start, c.End, ""); err != nil {
		return Result{}, err
	}
	return Result{
		Success:        true,
		ModifiedRange:  Range{Start: c.Start, End: c.Start},
		NewCursor:      c.Start,
		ContentChanged: true,
	}, nil
}

// Invert undoes a Delete by reinserting the text it captured on Execute.
func (c *Delete) Invert() Command {
	return &Insert{At: c.Start, Text: c.removed}
}

// Replace replaces the byte range [Start,End) with New.
type Replace struct {
	Start, End int
	New        string
	old        string
}

func (c *Replace) Execute(doc *script.Document) (Result, error) {
	c.old = sourceSlice(doc.Source(), Range{Start: c.Start, End: c.End})
	if err := doc.ReplaceRange(c.Start, c.End, c.New); err != nil {
		return Result{}, err
	}
	return Result{
		Success:        true,
		ModifiedRange:  Range{Start: c.Start, End: c.Start + len(c.New)},
		NewCursor:      c.Start + len(c.New),
		ContentChanged: true,
	}, nil
}

// Invert undoes a Replace by restoring the text it captured on Execute.
func (c *Replace) Invert() Command {
	return &Replace{Start: c.Start, End: c.Start + len(c.New), New: c.old}
}
