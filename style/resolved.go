// Copyright (c) 2026, The ass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package style resolves a Style record plus an Event's overrides and the
// script's PlayRes/LayoutRes geometry into a typed [Resolved] value ready
// for layout and rasterization, grounded on ass-core's resolved-style
// analysis pass.
package style

// Flags is a bitset of the Style boolean fields, chosen over four separate
// bool fields because the override-tag processor toggles them individually
// and a bitset composes more cheaply into [Resolved]'s copy-on-write
// transform deltas.
type Flags uint8

const (
	Bold Flags = 1 << iota
	Italic
	Underline
	StrikeOut
)

// Has reports whether every flag in want is set.
func (f Flags) Has(want Flags) bool { return f&want == want }

// Alignment is a numpad-style anchor: 1-3 bottom, 4-6 middle, 7-9 top;
// within each row 1/4/7 left, 2/5/8 center, 3/6/9 right. Zero is invalid;
// callers normalize with [NormalizeAlignment].
type Alignment int

// NormalizeAlignment maps legacy \a values (which use a different
// numbering: 1-3 left/center/right-bottom become mixed with a 5/6/7/9/10/11
// extended range for middle/top) onto the numpad 1-9 scheme used
// everywhere else: 5/6/7 become 7/8/9 and 9/10/11 become 4/5/6. 1-3, 4
// and 8 pass through unchanged; anything else becomes 2.
func NormalizeAlignment(a int) Alignment {
	switch a {
	case 1, 2, 3:
		return Alignment(a)
	case 5:
		return Alignment(7)
	case 6:
		return Alignment(8)
	case 7:
		return Alignment(9)
	case 9:
		return Alignment(4)
	case 10:
		return Alignment(5)
	case 11:
		return Alignment(6)
	default:
		if a >= 1 && a <= 9 {
			return Alignment(a)
		}
		return Alignment(2)
	}
}

// HorizontalAnchor reports the left/center/right component of an
// alignment: -1 left, 0 center, 1 right.
func (a Alignment) HorizontalAnchor() int {
	switch (int(a) - 1) % 3 {
	case 0:
		return -1
	case 1:
		return 0
	default:
		return 1
	}
}

// VerticalAnchor reports the bottom/middle/top component: -1 bottom, 0
// middle, 1 top.
func (a Alignment) VerticalAnchor() int {
	switch (int(a) - 1) / 3 {
	case 0:
		return -1
	case 1:
		return 0
	default:
		return 1
	}
}

// BorderStyle distinguishes outlined text from an opaque box background.
type BorderStyle int

const (
	BorderOutline BorderStyle = 1
	BorderBox     BorderStyle = 3
)

// Margins is the four-sided margin set, extended with optional top/bottom
// for scripts that declare them (spec's `[margin_t, margin_b]`).
type Margins struct {
	L, R, V float32
	T, B    float32
	HasTB   bool
}

// Resolved is a Style's fields fully parsed into typed form and rescaled
// from LayoutRes into PlayRes, per spec 4.E. It borrows nothing from the
// source: every field is a value type, since resolution happens once per
// (style, event) pair and the result is cheap to keep around independent
// of the AST's lifetime.
type Resolved struct {
	Name     string
	Fontname string
	Fontsize float32

	Primary   Color
	Secondary Color
	Outline   Color
	Back      Color

	Flags Flags

	ScaleX, ScaleY float32 // percent, 100 = unscaled
	Spacing        float32
	Angle          float32 // degrees, Z rotation

	Border      BorderStyle
	OutlineSize float32
	Shadow      float32

	Alignment Alignment
	Margins   Margins
	Encoding  int

	// Complexity is a 0-100 performance-triage score; see ComplexityScore.
	Complexity int
}
