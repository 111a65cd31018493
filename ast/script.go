// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

// Version is the detected script dialect, per the ScriptType field of
// Script Info.
type Version int

const (
	// AssV4 is `ScriptType: v4.00+`, or the default when ScriptType is
	// absent.
	AssV4 Version = iota
	// SsaV4 is the legacy `ScriptType: v4.00`.
	SsaV4
)

func (v Version) String() string {
	if v == SsaV4 {
		return "SSA v4.00"
	}
	return "ASS v4.00+"
}

// Script is the immutable result of a parse: the full source buffer, the
// ordered sections found in it, and any issues encountered along the way.
// A Script never outlives the source slice it borrows from; package script
// provides the mutable façade that keeps that true across edits.
type Script struct {
	Source   []byte
	Sections []Section
	Issues   []Issue
	Version  Version
}

// SectionsOfType returns every section of the given type, in document
// order.
func (s *Script) SectionsOfType(t SectionType) []Section {
	var out []Section
	for _, sec := range s.Sections {
		if sec.Type() == t {
			out = append(out, sec)
		}
	}
	return out
}

// FirstOfType returns the first section of the given type, or nil.
func (s *Script) FirstOfType(t SectionType) Section {
	for _, sec := range s.Sections {
		if sec.Type() == t {
			return sec
		}
	}
	return nil
}

// ScriptInfo is a convenience accessor for the (first) Script Info
// section.
func (s *Script) ScriptInfo() *ScriptInfoSection {
	if sec := s.FirstOfType(ScriptInfoType); sec != nil {
		return sec.(*ScriptInfoSection)
	}
	return nil
}

// Styles is a convenience accessor for the (first) Styles section.
func (s *Script) Styles() *StylesSection {
	if sec := s.FirstOfType(StylesType); sec != nil {
		return sec.(*StylesSection)
	}
	return nil
}

// Events is a convenience accessor for the (first) Events section.
func (s *Script) Events() *EventsSection {
	if sec := s.FirstOfType(EventsType); sec != nil {
		return sec.(*EventsSection)
	}
	return nil
}

// SectionRange returns the byte range covering all sections of the given
// type — from the first such section's header to the end of the last —
// or (0, 0, false) if none exist. When sections of one type are not
// contiguous (a script that interleaves, say, two [Events] blocks), the
// range spans the gap too; callers that need per-section ranges should use
// SectionBoundaries instead.
func (s *Script) SectionRange(t SectionType) (start, end int, ok bool) {
	start, end = -1, -1
	for _, sec := range s.Sections {
		if sec.Type() != t {
			continue
		}
		if start == -1 {
			start = sec.Span().Start
		}
		end = sectionEnd(s, sec)
	}
	if start == -1 {
		return 0, 0, false
	}
	return start, end, true
}

// SectionAt returns the section whose span contains the given byte
// offset, or nil. A section's effective end (for this purpose) extends to
// the byte before the next section's header, so offsets inside a
// section's body (not just its header line) resolve correctly.
func (s *Script) SectionAt(offset int) Section {
	for i, sec := range s.Sections {
		start := sec.Span().Start
		end := len(s.Source)
		if i+1 < len(s.Sections) {
			end = s.Sections[i+1].Span().Start
		}
		if offset >= start && offset < end {
			return sec
		}
	}
	return nil
}

// Boundary pairs a section with its full body range: from its header to
// the byte before the next section's header (or EOF for the last
// section).
type Boundary struct {
	Section    Section
	Start, End int
}

// SectionBoundaries returns the body range of every section, in document
// order.
func (s *Script) SectionBoundaries() []Boundary {
	out := make([]Boundary, len(s.Sections))
	for i, sec := range s.Sections {
		end := len(s.Source)
		if i+1 < len(s.Sections) {
			end = s.Sections[i+1].Span().Start
		}
		out[i] = Boundary{Section: sec, Start: sec.Span().Start, End: end}
	}
	return out
}

func sectionEnd(s *Script, sec Section) int {
	for i, cand := range s.Sections {
		if cand == sec {
			if i+1 < len(s.Sections) {
				return s.Sections[i+1].Span().Start
			}
			return len(s.Source)
		}
	}
	return sec.Span().End
}
