// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package script

import "github.com/asslib/ass/ast"

// ChangeKind tags the variant of a [Change] log entry.
type ChangeKind int

const (
	Added ChangeKind = iota
	Removed
	Modified
	SectionAdded
	SectionRemoved
)

func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Modified:
		return "modified"
	case SectionAdded:
		return "section added"
	case SectionRemoved:
		return "section removed"
	default:
		return "unknown"
	}
}

// Change is one entry in a [ChangeTracker]'s log. Which fields are
// meaningful depends on Kind: Added uses Offset/Content; Removed uses
// Offset/Line/SectionType; Modified uses Offset/Line/Old/New;
// SectionAdded/SectionRemoved use SectionType/Index.
type Change struct {
	Kind        ChangeKind
	Offset      int
	Line        int
	Content     string
	Old, New    string
	SectionType ast.SectionType
	Index       int
}

// ChangeTracker records a Document's mutation history in order. A nil
// *ChangeTracker is valid and records nothing, so Document can carry one
// unconditionally and skip tracking by leaving it nil.
type ChangeTracker struct {
	entries []Change
}

func (c *ChangeTracker) record(ch Change) {
	if c == nil {
		return
	}
	c.entries = append(c.entries, ch)
}

// Entries returns a copy of the recorded log, oldest first.
func (c *ChangeTracker) Entries() []Change {
	if c == nil {
		return nil
	}
	out := make([]Change, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len reports how many changes have been recorded.
func (c *ChangeTracker) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Reset clears the log without otherwise touching the Document.
func (c *ChangeTracker) Reset() {
	if c == nil {
		return
	}
	c.entries = nil
}
