// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ast

// EventType is the line-type tag an Events line begins with.
type EventType int

const (
	Dialogue EventType = iota
	Comment
	Picture
	Sound
	Movie
	Command
)

func (t EventType) String() string {
	switch t {
	case Dialogue:
		return "Dialogue"
	case Comment:
		return "Comment"
	case Picture:
		return "Picture"
	case Sound:
		return "Sound"
	case Movie:
		return "Movie"
	case Command:
		return "Command"
	default:
		return "Unknown"
	}
}

// EventTypeFromKeyword maps the line-leading keyword (without the trailing
// colon) to an EventType. The match is case-sensitive ("Dialogue", not
// "dialogue"); the parser canonicalizes the keyword's case before calling.
// ok is false for an unrecognized keyword, in which case the parser
// records an InvalidEventType issue and skips the line.
func EventTypeFromKeyword(keyword string) (EventType, bool) {
	switch keyword {
	case "Dialogue":
		return Dialogue, true
	case "Comment":
		return Comment, true
	case "Picture":
		return Picture, true
	case "Sound":
		return Sound, true
	case "Movie":
		return Movie, true
	case "Command":
		return Command, true
	default:
		return 0, false
	}
}

// Event is one Events line. Like Style it is a thin wrapper over Record;
// the canonical fields are Layer, Start, End, Style, Name, MarginL,
// MarginR, MarginV (and optionally MarginT/MarginB), Effect, and Text.
type Event struct {
	Record
	Type EventType
}

// Text returns the raw Text field (dialogue interleaved with `{...}`
// override blocks and, in drawing mode, path commands).
func (e Event) Text(source []byte, format *FormatTable) string {
	v, _ := e.Field(source, format, "Text")
	return v
}

// StyleName returns the event's style name, or "" if unset.
func (e Event) StyleName(source []byte, format *FormatTable) string {
	v, _ := e.Field(source, format, "Style")
	return v
}
