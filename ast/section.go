// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

// SectionType distinguishes the variants a [Section] can be. ASS sections
// are a small closed set plus an open extension point (Generic), so this
// is a sum type realized the Go way: a tag plus an interface, rather than
// a class hierarchy.
type SectionType int

const (
	ScriptInfoType SectionType = iota
	StylesType
	EventsType
	FontsType
	GraphicsType
	GenericType
)

func (t SectionType) String() string {
	switch t {
	case ScriptInfoType:
		return "Script Info"
	case StylesType:
		return "Styles"
	case EventsType:
		return "Events"
	case FontsType:
		return "Fonts"
	case GraphicsType:
		return "Graphics"
	case GenericType:
		return "Generic"
	default:
		return "Unknown"
	}
}

// Section is implemented by every kind of top-level section. Equal
// compares two sections for semantic equality, deliberately ignoring span
// fields so the change tracker's diffing (spec 4.C) reports a section as
// unchanged purely because it was reparsed at new offsets.
type Section interface {
	Type() SectionType
	// HeaderName is the literal text inside the section's [brackets], for
	// example "V4+ Styles" or "Aegisub Project Garbage".
	HeaderName() string
	Span() Span
	// Equal reports whether other is a Section of the same concrete type
	// with the same semantic content, ignoring all Span fields. source and
	// otherSource are the two sections' respective backing buffers — they
	// may differ, since Equal's main caller compares sections taken from
	// two different parses of two different source buffers.
	Equal(source []byte, other Section, otherSource []byte) bool
}

// KV is one `Key: Value` line of a Script Info section.
type KV struct {
	Key, Value Span
	LineSpan   Span
}

// ScriptInfoSection holds the ordered (key, value) fields of `[Script
// Info]`. Duplicate keys are permitted on parse; semantic lookup (Get) is
// last-write-wins.
type ScriptInfoSection struct {
	Header Span
	Name   string
	Fields []KV
}

func (s *ScriptInfoSection) Type() SectionType { return ScriptInfoType }
func (s *ScriptInfoSection) HeaderName() string { return s.Name }
func (s *ScriptInfoSection) Span() Span         { return s.Header }

// Get returns the value of the last field named key (case-sensitive, per
// the format's own convention of exact key matching), or ("", false).
func (s *ScriptInfoSection) Get(source []byte, key string) (string, bool) {
	found := false
	var val string
	for _, f := range s.Fields {
		if string(f.Key.Text(source)) == key {
			val = string(f.Value.Text(source))
			found = true
		}
	}
	return val, found
}

func (s *ScriptInfoSection) Equal(source []byte, other Section, otherSource []byte) bool {
	o, ok := other.(*ScriptInfoSection)
	if !ok || o.Name != s.Name || len(o.Fields) != len(s.Fields) {
		return false
	}
	// Equality here is structural-by-position; callers that need
	// key-set equality irrespective of duplicates should compare via Get.
	for i := range s.Fields {
		if string(s.Fields[i].Key.Text(source)) != string(o.Fields[i].Key.Text(otherSource)) {
			return false
		}
		if string(s.Fields[i].Value.Text(source)) != string(o.Fields[i].Value.Text(otherSource)) {
			return false
		}
	}
	return true
}

// StylesSection holds the declared field order and the ordered list of
// style records for `[V4+ Styles]` / `[V4 Styles]`.
type StylesSection struct {
	Header Span
	Name   string
	Format *FormatTable
	Styles []Style
}

func (s *StylesSection) Type() SectionType  { return StylesType }
func (s *StylesSection) HeaderName() string { return s.Name }
func (s *StylesSection) Span() Span         { return s.Header }

func (s *StylesSection) Equal(source []byte, other Section, otherSource []byte) bool {
	o, ok := other.(*StylesSection)
	if !ok || len(o.Styles) != len(s.Styles) {
		return false
	}
	if !stringSlicesEqual(s.Format.Names, o.Format.Names) {
		return false
	}
	for i := range s.Styles {
		if !recordEqual(s.Styles[i].Record, source, o.Styles[i].Record, otherSource) {
			return false
		}
	}
	return true
}

// EventsSection holds the declared field order and the ordered list of
// event records for `[Events]`.
type EventsSection struct {
	Header Span
	Name   string
	Format *FormatTable
	Events []Event
}

func (s *EventsSection) Type() SectionType  { return EventsType }
func (s *EventsSection) HeaderName() string { return s.Name }
func (s *EventsSection) Span() Span         { return s.Header }

func (s *EventsSection) Equal(source []byte, other Section, otherSource []byte) bool {
	o, ok := other.(*EventsSection)
	if !ok || len(o.Events) != len(s.Events) || !stringSlicesEqual(s.Format.Names, o.Format.Names) {
		return false
	}
	for i := range s.Events {
		if s.Events[i].Type != o.Events[i].Type {
			return false
		}
		if !recordEqual(s.Events[i].Record, source, o.Events[i].Record, otherSource) {
			return false
		}
	}
	return true
}

// Attachment is one UU-encoded file entry in a Fonts or Graphics section:
// a "fontname:" / filename line followed by data lines.
type Attachment struct {
	FilenameLine Span
	Filename     Span
	DataLines    []Span
	Span         Span
}

// FontsSection holds embedded font attachments.
type FontsSection struct {
	Header      Span
	Name        string
	Attachments []Attachment
}

func (s *FontsSection) Type() SectionType  { return FontsType }
func (s *FontsSection) HeaderName() string { return s.Name }
func (s *FontsSection) Span() Span         { return s.Header }
func (s *FontsSection) Equal(source []byte, other Section, otherSource []byte) bool {
	o, ok := other.(*FontsSection)
	if !ok || len(o.Attachments) != len(s.Attachments) {
		return false
	}
	for i := range s.Attachments {
		if !attachmentEqual(s.Attachments[i], source, o.Attachments[i], otherSource) {
			return false
		}
	}
	return true
}

// GraphicsSection holds embedded graphics attachments.
type GraphicsSection struct {
	Header      Span
	Name        string
	Attachments []Attachment
}

func (s *GraphicsSection) Type() SectionType  { return GraphicsType }
func (s *GraphicsSection) HeaderName() string { return s.Name }
func (s *GraphicsSection) Span() Span         { return s.Header }
func (s *GraphicsSection) Equal(source []byte, other Section, otherSource []byte) bool {
	o, ok := other.(*GraphicsSection)
	if !ok || len(o.Attachments) != len(s.Attachments) {
		return false
	}
	for i := range s.Attachments {
		if !attachmentEqual(s.Attachments[i], source, o.Attachments[i], otherSource) {
			return false
		}
	}
	return true
}

func attachmentEqual(a Attachment, source []byte, b Attachment, otherSource []byte) bool {
	if string(a.Filename.Text(source)) != string(b.Filename.Text(otherSource)) {
		return false
	}
	if len(a.DataLines) != len(b.DataLines) {
		return false
	}
	for i := range a.DataLines {
		if string(a.DataLines[i].Text(source)) != string(b.DataLines[i].Text(otherSource)) {
			return false
		}
	}
	return true
}

// GenericSection preserves the raw lines of a section whose name was not
// one of the standard five but was registered via a section extension
// (spec 4.B). Sections that are neither standard nor registered are not
// kept as a GenericSection; the parser records a parse issue and skips
// them instead.
type GenericSection struct {
	Header Span
	Name   string
	Lines  []Span
}

func (s *GenericSection) Type() SectionType  { return GenericType }
func (s *GenericSection) HeaderName() string { return s.Name }
func (s *GenericSection) Span() Span         { return s.Header }
func (s *GenericSection) Equal(source []byte, other Section, otherSource []byte) bool {
	o, ok := other.(*GenericSection)
	if !ok || o.Name != s.Name || len(o.Lines) != len(s.Lines) {
		return false
	}
	for i := range s.Lines {
		if string(s.Lines[i].Text(source)) != string(o.Lines[i].Text(otherSource)) {
			return false
		}
	}
	return true
}

func stringSlicesEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
