// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package incremental reparses only the sections touched by a text edit
// instead of the whole document, and computes a structural delta between
// the before and after states. ASS sections are coarse, so section
// boundaries plus byte spans are sufficient; this deliberately does not do
// tree-diffing.
package incremental

import (
	"github.com/asslib/ass/ast"
	"github.com/asslib/ass/parse"
)

// Change is a single text-range edit: the half-open byte range [Start,
// End) in the old source is replaced by NewText.
type Change struct {
	Start, End int
	NewText    string
}

func (c Change) delta() int { return len(c.NewText) - (c.End - c.Start) }

func (c Change) affects(b ast.Boundary) bool {
	if c.Start < b.End && c.End > b.Start {
		return true
	}
	// An insertion exactly at a section's end boundary is an append into
	// that section (e.g. a new Dialogue line), not an edit of whatever
	// follows it.
	if c.Start == c.End && c.Start == b.End {
		return true
	}
	return false
}

// DeltaKind tags one entry of a [Delta].
type DeltaKind int

const (
	SectionAdded DeltaKind = iota
	SectionModified
	SectionRemoved
)

func (k DeltaKind) String() string {
	switch k {
	case SectionAdded:
		return "added"
	case SectionModified:
		return "modified"
	case SectionRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// DeltaEntry records how one section position changed between two parses.
type DeltaEntry struct {
	Kind  DeltaKind
	Index int
	Type  ast.SectionType
}

// Delta is the structural diff between an old and new Script.
type Delta []DeltaEntry

// Apply reparses only the sections change could have touched:
//  1. sections entirely before change.Start are reused unshifted — their
//     bytes, and therefore their spans, are identical in the new source;
//  2. sections whose span overlaps change, or that change appends to at
//     their end, are reparsed from a slice of the new source;
//  3. sections entirely after change.End are reused with every span
//     shifted by len(change.NewText)-(change.End-change.Start).
//
// Old issues are partitioned the same way: issues whose span starts
// before change.Start are kept as-is, ones at or after change.End are
// shifted, and any issue inside the reparsed window is replaced by
// whatever the windowed reparse produced.
func Apply(oldScript *ast.Script, change Change, opts ...parse.Option) *ast.Script {
	newSource := splice(oldScript.Source, change)
	delta := change.delta()
	boundaries := oldScript.SectionBoundaries()

	var before, after []ast.Section
	firstAffected, lastAffected := -1, -1
	pastAffected := false
	for i, b := range boundaries {
		if change.affects(b) {
			if firstAffected == -1 {
				firstAffected = i
			}
			lastAffected = i
			pastAffected = true
			continue
		}
		if !pastAffected {
			before = append(before, b.Section)
		} else {
			after = append(after, shiftSection(b.Section, delta))
		}
	}

	if firstAffected == -1 {
		// No section overlaps or abuts the edit (e.g. the edit lands in a
		// gap between sections, or the document has no sections at all).
		// Every existing section is unaffected; shift whichever ones sit
		// after the edit and keep the rest as-is.
		sections := make([]ast.Section, len(oldScript.Sections))
		for i, sec := range oldScript.Sections {
			start := sec.Span().Start
			if start >= change.End {
				sections[i] = shiftSection(sec, delta)
			} else {
				sections[i] = sec
			}
		}
		script := &ast.Script{Source: newSource, Sections: sections, Issues: shiftIssues(oldScript.Issues, change, delta)}
		script.Version = parse.DetectVersion(newSource, script)
		return script
	}

	windowStart := boundaries[firstAffected].Start
	var windowEnd int
	if lastAffected+1 < len(boundaries) {
		windowEnd = boundaries[lastAffected+1].Start + delta
	} else {
		windowEnd = len(newSource)
	}

	reparsed := parse.Parse(newSource[windowStart:windowEnd], opts...)
	affected := make([]ast.Section, len(reparsed.Sections))
	for i, sec := range reparsed.Sections {
		affected[i] = shiftSection(sec, windowStart)
	}

	sections := make([]ast.Section, 0, len(before)+len(affected)+len(after))
	sections = append(sections, before...)
	sections = append(sections, affected...)
	sections = append(sections, after...)

	oldWindow := Change{Start: windowStart, End: boundaries[lastAffected].End}
	issues := shiftIssues(oldScript.Issues, oldWindow, delta)
	for _, iss := range reparsed.Issues {
		iss.Span = iss.Span.Shift(windowStart)
		issues = append(issues, iss)
	}

	script := &ast.Script{Source: newSource, Sections: sections, Issues: issues}
	script.Version = parse.DetectVersion(newSource, script)
	return script
}

// shiftIssues keeps issues outside [change.Start, change.End), shifting
// the ones at or after change.End by delta and dropping any whose span
// starts inside the range. Apply passes the old reparsed window as the
// range, so the dropped issues are superseded by the windowed reparse's
// own issues.
func shiftIssues(issues []ast.Issue, change Change, delta int) []ast.Issue {
	out := make([]ast.Issue, 0, len(issues))
	for _, iss := range issues {
		switch {
		case iss.Span.Start < change.Start:
			out = append(out, iss)
		case iss.Span.Start >= change.End:
			iss.Span = iss.Span.Shift(delta)
			out = append(out, iss)
		}
	}
	return out
}

func splice(source []byte, c Change) []byte {
	out := make([]byte, 0, len(source)-(c.End-c.Start)+len(c.NewText))
	out = append(out, source[:c.Start]...)
	out = append(out, c.NewText...)
	out = append(out, source[c.End:]...)
	return out
}

// ComputeDelta classifies each section position in oldScript and
// newScript as Added, Modified, or Removed by matching section types
// pairwise in document order, then diffing contents with
// [ast.Section.Equal] (which ignores span fields).
func ComputeDelta(oldScript, newScript *ast.Script) Delta {
	old := oldScript.Sections
	next := newScript.Sections

	var delta Delta
	i, j := 0, 0
	for i < len(old) && j < len(next) {
		if old[i].Type() == next[j].Type() {
			if !old[i].Equal(oldScript.Source, next[j], newScript.Source) {
				delta = append(delta, DeltaEntry{Kind: SectionModified, Index: j, Type: next[j].Type()})
			}
			i++
			j++
			continue
		}
		// Types diverge at this cursor. Treat it as an insertion when the
		// new section's type doesn't occur anywhere later in old;
		// otherwise the old section at this cursor was removed. A true
		// reorder of section types is reported as a remove+add pair
		// rather than a move; the spec does not model moves.
		if !typeAppearsFrom(old, i, next[j].Type()) {
			delta = append(delta, DeltaEntry{Kind: SectionAdded, Index: j, Type: next[j].Type()})
			j++
			continue
		}
		delta = append(delta, DeltaEntry{Kind: SectionRemoved, Index: i, Type: old[i].Type()})
		i++
	}
	for ; j < len(next); j++ {
		delta = append(delta, DeltaEntry{Kind: SectionAdded, Index: j, Type: next[j].Type()})
	}
	for ; i < len(old); i++ {
		delta = append(delta, DeltaEntry{Kind: SectionRemoved, Index: i, Type: old[i].Type()})
	}
	return delta
}

func typeAppearsFrom(sections []ast.Section, from int, t ast.SectionType) bool {
	for _, s := range sections[from:] {
		if s.Type() == t {
			return true
		}
	}
	return false
}
