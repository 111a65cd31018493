// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package tags

import (
	"strconv"
	"strings"

	"github.com/asslib/ass/style"
)

// PositionMode distinguishes how a run is placed, per the data model's
// "position mode: one of {Static, FixedPoint(x,y), Move(...), Origin(x,y)}".
// Origin does not itself move text; it only relocates the rotation pivot,
// so it is tracked alongside Position rather than replacing it.
type PositionMode int

const (
	PositionStatic PositionMode = iota
	PositionFixedPoint
	PositionMove
)

// Position is the resolved \pos/\move state for a run.
type Position struct {
	Mode           PositionMode
	X, Y           float32
	X2, Y2         float32
	T1Ms, T2Ms     int
	HasMoveTimes   bool
}

// Origin is the \org(x,y) rotation pivot override.
type Origin struct {
	Set  bool
	X, Y float32
}

// FadeMode distinguishes \fad (simple) from \fade (complex three-stage).
type FadeMode int

const (
	FadeNone FadeMode = iota
	FadeSimple
	FadeComplex
)

// Fade is the resolved \fad/\fade state.
type Fade struct {
	Mode                   FadeMode
	InCs, OutCs            int
	A1, A2, A3             int
	T1, T2, T3, T4         int
}

// ClipMode distinguishes no clip, a rectangular clip, and a vector
// (drawing-path) clip.
type ClipMode int

const (
	ClipNone ClipMode = iota
	ClipRect
	ClipVector
)

// Clip is the resolved \clip/\iclip state.
type Clip struct {
	Mode                   ClipMode
	X1, Y1, X2, Y2         float32
	Path                   string
	Inverse                bool
}

// KaraokeStyle is the \k family's highlight style.
type KaraokeStyle int

const (
	KaraokeBasic KaraokeStyle = iota
	KaraokeFill
	KaraokeOutline
	KaraokeSweep
)

// KaraokeEntry is one \k/\kf/\ko/\K syllable, accumulated left-to-right
// per spec 4's "Effect state per run" karaoke field.
type KaraokeEntry struct {
	Style      KaraokeStyle
	DurationCs int
}

// State is the "Effect state per run" of the data model: everything the
// override-tag processor can change, resolved to a concrete value after
// every tag up to a given point in the text has been applied.
type State struct {
	FontName                           string
	FontSize                           float32
	Bold, Italic, Underline, StrikeOut bool
	ScaleX, ScaleY                     float32
	Spacing                            float32
	RotX, RotY, RotZ                   float32
	ShearX, ShearY                     float32

	Primary, Secondary, Outline, Shadow style.Color

	BorderX, BorderY float32
	ShadowX, ShadowY float32
	Blur, EdgeBlur   float32
	Alignment        style.Alignment

	Position   Position
	Origin     Origin
	Fade       Fade
	Karaoke    []KaraokeEntry
	Clip       Clip
	Transforms []Transform

	DrawingMode int
}

// FromResolved seeds a State from a resolved style, the starting point
// every run's tag processing begins from before any override tags in the
// event's text are applied.
func FromResolved(r style.Resolved) State {
	return State{
		FontName:  r.Fontname,
		FontSize:  r.Fontsize,
		Bold:      r.Flags.Has(style.Bold),
		Italic:    r.Flags.Has(style.Italic),
		Underline: r.Flags.Has(style.Underline),
		StrikeOut: r.Flags.Has(style.StrikeOut),
		ScaleX:    r.ScaleX,
		ScaleY:    r.ScaleY,
		Spacing:   r.Spacing,
		RotZ:      r.Angle,
		Primary:   r.Primary,
		Secondary: r.Secondary,
		Outline:   r.Outline,
		Shadow:    r.Back,
		BorderX:   r.OutlineSize,
		BorderY:   r.OutlineSize,
		ShadowX:   r.Shadow,
		ShadowY:   r.Shadow,
		Alignment: r.Alignment,
	}
}

// Clone returns a deep-enough copy: slices (Karaoke, Transforms) are
// copied so mutating the clone never affects the original, matching the
// segmenter's need for one independent State per emitted Segment.
func (s State) Clone() State {
	out := s
	if s.Karaoke != nil {
		out.Karaoke = append([]KaraokeEntry(nil), s.Karaoke...)
	}
	if s.Transforms != nil {
		out.Transforms = append([]Transform(nil), s.Transforms...)
	}
	return out
}

func parseNum(s string, def float32) float32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return def
	}
	return float32(v)
}

func parseIntArg(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return int(v)
}
