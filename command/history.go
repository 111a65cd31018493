// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package command

import (
	"github.com/asslib/ass/asserr"
	"github.com/asslib/ass/script"
)

// History is a bounded undo/redo stack of executed [Undoable] commands,
// grounded on the original editor's document-level undo stack. limit <= 0
// means unbounded.
type History struct {
	limit int
	undo  []Undoable
	redo  []Undoable
}

// NewHistory returns a History that retains at most limit undo entries,
// evicting the oldest once full. limit <= 0 means unbounded.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Do executes cmd against doc, and on success pushes it onto the undo
// stack and clears the redo stack, matching the usual editor convention
// that any new edit invalidates previously undone redo history.
func (h *History) Do(doc *script.Document, cmd Undoable) (Result, error) {
	res, err := cmd.Execute(doc)
	if err != nil {
		return res, err
	}
	h.redo = nil
	h.undo = append(h.undo, cmd)
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	return res, nil
}

// Undo pops the most recent command, executes its inverse against doc, and
// pushes the original command onto the redo stack.
func (h *History) Undo(doc *script.Document) (Result, error) {
	if len(h.undo) == 0 {
		return Result{}, asserr.New(asserr.NothingToUndo, "undo stack is empty")
	}
	cmd := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	inverse := cmd.Invert()
	res, err := inverse.Execute(doc)
	if err != nil {
		h.undo = append(h.undo, cmd)
		return res, err
	}
	h.redo = append(h.redo, cmd)
	return res, nil
}

// Redo re-executes the most recently undone command.
func (h *History) Redo(doc *script.Document) (Result, error) {
	if len(h.redo) == 0 {
		return Result{}, asserr.New(asserr.NothingToRedo, "redo stack is empty")
	}
	cmd := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	res, err := cmd.Execute(doc)
	if err != nil {
		h.redo = append(h.redo, cmd)
		return res, err
	}
	h.undo = append(h.undo, cmd)
	if h.limit > 0 && len(h.undo) > h.limit {
		h.undo = h.undo[len(h.undo)-h.limit:]
	}
	return res, nil
}

// CanUndo reports whether Undo has anything to do.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether Redo has anything to do.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }
